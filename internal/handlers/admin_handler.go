package handlers

import (
	"solestore/internal/apperrors"
	"solestore/internal/middleware"
	"solestore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles store-wide reads for administrators.
type AdminHandler struct {
	admin  *services.AdminService
	orders *services.OrderService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *services.AdminService, orders *services.OrderService) *AdminHandler {
	return &AdminHandler{
		admin:  admin,
		orders: orders,
	}
}

// RegisterRoutes registers the admin routes behind the admin guard.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin", middleware.AdminRequired())
	adminRoutes.Get("/orders", h.HandleGetAllOrders)
	adminRoutes.Get("/users", h.HandleGetAllUsers)
	adminRoutes.Get("/stats", h.HandleGetDashboardStats)
	adminRoutes.Patch("/orders/:orderId/status", h.HandleUpdateOrderStatus)
}

// HandleGetAllOrders returns every order in the system.
func (h *AdminHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.admin.GetAllOrders()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, orders, "All orders retrieved successfully.")
}

// HandleGetAllUsers returns every user in the system.
func (h *AdminHandler) HandleGetAllUsers(c *fiber.Ctx) error {
	users, err := h.admin.GetAllUsers()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, users, "All users retrieved successfully.")
}

// HandleGetDashboardStats returns store-wide activity stats.
func (h *AdminHandler) HandleGetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.admin.GetDashboardStats()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, stats, "Dashboard stats retrieved successfully.")
}

// HandleUpdateOrderStatus moves an order through fulfillment.
func (h *AdminHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperrors.NewValidation("Invalid request body"))
	}
	if req.Status == "" {
		return respondError(c, apperrors.NewValidation("Status is required for order status update."))
	}
	if err := h.orders.UpdateOrderStatus(c.Params("orderId"), req.Status); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{}, "Order status updated successfully")
}
