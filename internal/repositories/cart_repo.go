package repositories

import (
	"solestore/internal/models"
)

// CartRepository defines the interface for cart data access. Carts
// returned by GetByOwner have their line items resolved against the
// catalog so derived totals are never computed from unresolved
// references.
type CartRepository interface {
	GetByOwner(ownerID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	AddItem(cartID string, item *models.CartItem) error
	UpdateItemQuantity(cartID, itemID string, quantity int) error
	RemoveItem(cartID, itemID string) error
	ClearItems(cartID string) error
}
