package handlers

import (
	"strconv"

	"solestore/internal/apperrors"
	"solestore/internal/middleware"
	"solestore/internal/models"
	"solestore/internal/repositories"
	"solestore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ShoeHandler handles HTTP requests for the shoe catalog.
type ShoeHandler struct {
	service  *services.ShoeService
	validate *validator.Validate
}

// NewShoeHandler creates a new ShoeHandler.
func NewShoeHandler(service *services.ShoeService) *ShoeHandler {
	return &ShoeHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers catalog reads, which need no token.
func (h *ShoeHandler) RegisterPublicRoutes(router fiber.Router) {
	shoeRoutes := router.Group("/shoes")
	shoeRoutes.Get("/", h.HandleGetShoes)
	shoeRoutes.Get("/:id", h.HandleGetShoeByID)
}

// RegisterAdminRoutes registers catalog writes behind the admin guard.
func (h *ShoeHandler) RegisterAdminRoutes(router fiber.Router) {
	shoeRoutes := router.Group("/shoes", middleware.AdminRequired())
	shoeRoutes.Post("/", h.HandleCreateShoe)
	shoeRoutes.Put("/:id", h.HandleUpdateShoe)
	shoeRoutes.Delete("/:id", h.HandleDeleteShoe)
}

// HandleGetShoes lists shoes with optional filters and pagination.
func (h *ShoeHandler) HandleGetShoes(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	minPrice, _ := strconv.ParseFloat(c.Query("minPrice", "0"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("maxPrice", "0"), 64)

	listing, err := h.service.GetAllShoes(repositories.ShoeFilter{
		Brand:    c.Query("brand"),
		Category: c.Query("category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, listing, "Shoes retrieved successfully")
}

// HandleGetShoeByID returns a single catalog entry.
func (h *ShoeHandler) HandleGetShoeByID(c *fiber.Ctx) error {
	shoe, err := h.service.GetShoeByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, shoe, "Shoe retrieved successfully")
}

// ShoeRequest is the body for catalog writes.
type ShoeRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Brand       string   `json:"brand" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Sizes       []string `json:"sizes" validate:"required,min=1"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock" validate:"gte=0"`
	IsFeatured  bool     `json:"is_featured"`
}

// HandleCreateShoe adds a new shoe to the catalog.
func (h *ShoeHandler) HandleCreateShoe(c *fiber.Ctx) error {
	var req ShoeRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperrors.NewValidation("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, apperrors.NewValidation("Validation failed", validationMessages(err)...))
	}

	shoe := models.Shoe{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Brand:       req.Brand,
		Category:    req.Category,
		Stock:       req.Stock,
		IsFeatured:  req.IsFeatured,
		OwnerID:     currentUserID(c),
	}
	shoe.SetSizes(req.Sizes)
	shoe.SetImages(req.Images)

	if err := h.service.CreateShoe(&shoe); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, shoe, "Shoe added successfully")
}

// HandleUpdateShoe updates an existing catalog entry.
func (h *ShoeHandler) HandleUpdateShoe(c *fiber.Ctx) error {
	shoe, err := h.service.GetShoeByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	var req ShoeRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperrors.NewValidation("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, apperrors.NewValidation("Validation failed", validationMessages(err)...))
	}

	shoe.Name = req.Name
	shoe.Description = req.Description
	shoe.Price = req.Price
	shoe.Brand = req.Brand
	shoe.Category = req.Category
	shoe.Stock = req.Stock
	shoe.IsFeatured = req.IsFeatured
	shoe.SetSizes(req.Sizes)
	shoe.SetImages(req.Images)

	if err := h.service.UpdateShoe(shoe); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, shoe, "Shoe updated successfully")
}

// HandleDeleteShoe removes a shoe from the catalog.
func (h *ShoeHandler) HandleDeleteShoe(c *fiber.Ctx) error {
	if err := h.service.DeleteShoe(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{}, "Shoe deleted successfully")
}
