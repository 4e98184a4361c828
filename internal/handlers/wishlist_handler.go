package handlers

import (
	"solestore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles HTTP requests for the user's wishlist.
type WishlistHandler struct {
	service *services.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		service: service,
	}
}

// RegisterRoutes registers the wishlist routes with the Fiber app.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router) {
	wishlistRoutes := router.Group("/wishlist")
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/toggle/:shoeId", h.HandleToggleItem)
}

// HandleGetWishlist returns the user's wishlisted shoes.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	shoes, err := h.service.GetWishlist(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, shoes, "Wishlist retrieved successfully.")
}

// HandleToggleItem adds or removes a shoe from the wishlist.
func (h *WishlistHandler) HandleToggleItem(c *fiber.Ctx) error {
	wishlisted, err := h.service.ToggleItem(currentUserID(c), c.Params("shoeId"))
	if err != nil {
		return respondError(c, err)
	}
	message := "Item removed from wishlist."
	if wishlisted {
		message = "Item added to wishlist."
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"is_wishlisted": wishlisted}, message)
}
