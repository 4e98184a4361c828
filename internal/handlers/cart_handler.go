package handlers

import (
	"solestore/internal/apperrors"
	"solestore/internal/models"
	"solestore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/add", h.HandleAddItem)
	cartRoutes.Patch("/item/:itemId", h.HandleUpdateItem)
	cartRoutes.Delete("/item/:itemId", h.HandleRemoveItem)
}

// cartResponse always carries the recomputed total alongside the cart.
func cartResponse(cart *models.Cart) fiber.Map {
	return fiber.Map{
		"cart":             cart,
		"cart_total_price": cart.TotalPrice(),
	}
}

// HandleGetCart returns the user's cart, creating one on first access.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, cartResponse(cart), "User cart retrieved successfully.")
}

// AddItemRequest is the body for adding a cart item.
type AddItemRequest struct {
	ShoeID   string `json:"shoe_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
	Size     string `json:"size" validate:"required"`
}

// HandleAddItem adds an item to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperrors.NewValidation("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, apperrors.NewValidation("Shoe ID, quantity, and size are required.", validationMessages(err)...))
	}

	cart, err := h.service.AddItem(currentUserID(c), req.ShoeID, req.Quantity, req.Size)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, cartResponse(cart), "Item added to cart successfully.")
}

// UpdateItemRequest is the body for changing a line item quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// HandleUpdateItem updates the quantity of a cart line item.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperrors.NewValidation("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, apperrors.NewValidation("A valid quantity is required.", validationMessages(err)...))
	}

	cart, err := h.service.UpdateItemQuantity(currentUserID(c), c.Params("itemId"), req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, cartResponse(cart), "Cart item updated successfully.")
}

// HandleRemoveItem removes a line item from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart, err := h.service.RemoveItem(currentUserID(c), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, cartResponse(cart), "Item removed from cart successfully.")
}
