package handlers

import (
	"solestore/internal/apperrors"
	"solestore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for shoe reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers review reads, which need no token.
func (h *ReviewHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/reviews/shoe/:shoeId", h.HandleGetShoeReviews)
}

// RegisterRoutes registers authenticated review routes.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Post("/create/:shoeId", h.HandleCreateReview)
	reviewRoutes.Delete("/:reviewId", h.HandleDeleteReview)
}

// CreateReviewRequest is the body for submitting a review.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required"`
}

// HandleCreateReview submits a review for a purchased shoe.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperrors.NewValidation("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, apperrors.NewValidation("Validation failed", validationMessages(err)...))
	}

	review, err := h.service.CreateReview(currentUserID(c), c.Params("shoeId"), req.Rating, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, review, "Review submitted successfully.")
}

// HandleGetShoeReviews returns all reviews for a shoe.
func (h *ReviewHandler) HandleGetShoeReviews(c *fiber.Ctx) error {
	reviews, err := h.service.GetShoeReviews(c.Params("shoeId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, reviews, "Reviews retrieved successfully.")
}

// HandleDeleteReview removes the user's own review.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	if err := h.service.DeleteReview(c.Params("reviewId"), currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{}, "Review deleted successfully.")
}
