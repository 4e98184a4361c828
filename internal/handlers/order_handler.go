package handlers

import (
	"errors"
	"log"

	"solestore/internal/apperrors"
	"solestore/internal/models"
	"solestore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(checkout *services.CheckoutService, orders *services.OrderService) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		orders:   orders,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/history", h.HandleGetMyOrders)
	orderRoutes.Get("/:orderId", h.HandleGetOrderByID)
}

// CreateOrderRequest is the confirmation body for placing an order.
type CreateOrderRequest struct {
	ShippingAddress models.ShippingAddress `json:"shipping_address" validate:"required"`
	PaymentMethod   string                 `json:"payment_method" validate:"required"`
	PaymentDetails  struct {
		PaymentID     string `json:"payment_id"`
		PaymentStatus string `json:"payment_status"`
	} `json:"payment_details"`
}

// HandleCreateOrder runs the checkout confirmation flow against the
// user's cart.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperrors.NewValidation("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, apperrors.NewValidation("Shipping address and payment method are required.", validationMessages(err)...))
	}

	order, err := h.checkout.PlaceOrder(currentUserID(c), services.OrderInput{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentID:       req.PaymentDetails.PaymentID,
		PaymentStatus:   req.PaymentDetails.PaymentStatus,
	})
	if err != nil {
		// A committed order with pending reconciliation is still a
		// placed order for the caller; operators are alerted
		// separately.
		var recErr *apperrors.ReconciliationError
		if errors.As(err, &recErr) && order != nil {
			log.Printf("Order %s placed with reconciliation pending", order.ID)
			return respondData(c, fiber.StatusCreated, order, "Order placed successfully.")
		}
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, order, "Order placed successfully.")
}

// HandleGetMyOrders returns the user's order history, newest first.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.orders.GetMyOrders(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, orders, "Orders retrieved successfully.")
}

// HandleGetOrderByID returns one of the user's orders.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.orders.GetOrderByID(c.Params("orderId"), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, order, "Order details retrieved successfully.")
}
