package handlers

import (
	"solestore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles HTTP requests for payment authorization.
type PaymentHandler struct {
	service *services.CheckoutService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *services.CheckoutService) *PaymentHandler {
	return &PaymentHandler{
		service: service,
	}
}

// RegisterRoutes registers the payment routes with the Fiber app.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	paymentRoutes := router.Group("/payment")
	paymentRoutes.Post("/create-intent", h.HandleCreateIntent)
}

// HandleCreateIntent authorizes the current cart total with the
// payment collaborator and returns the opaque client secret the
// browser needs to complete the charge.
func (h *PaymentHandler) HandleCreateIntent(c *fiber.Ctx) error {
	intent, err := h.service.CreatePaymentIntent(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{
		"clientSecret": intent.ClientSecret,
	}, "Payment intent created successfully.")
}
