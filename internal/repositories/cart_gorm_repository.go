package repositories

import (
	"fmt"
	"solestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByOwner retrieves a user's cart with items and shoes resolved.
func (r *GORMCartRepository) GetByOwner(ownerID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items.Shoe").First(&cart, "owner_id = ?", ownerID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cart for owner %s: %w", ownerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for owner %s: %w", ownerID, err)
	}
	return &cart, nil
}

// Create creates a new (usually empty) cart.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if err := r.db.Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// AddItem appends a line item to the cart.
func (r *GORMCartRepository) AddItem(cartID string, item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CartID = cartID
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to add item to cart %s: %w", cartID, err)
	}
	return nil
}

// UpdateItemQuantity sets the quantity of an existing line item.
func (r *GORMCartRepository) UpdateItemQuantity(cartID, itemID string, quantity int) error {
	res := r.db.Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update item %s in cart %s: %w", itemID, cartID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item %s in cart %s: %w", itemID, cartID, ErrNotFound)
	}
	return nil
}

// RemoveItem deletes a line item. Removing an absent item is a no-op.
func (r *GORMCartRepository) RemoveItem(cartID, itemID string) error {
	res := r.db.Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&models.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove item %s from cart %s: %w", itemID, cartID, res.Error)
	}
	return nil
}

// ClearItems removes every line item from the cart.
func (r *GORMCartRepository) ClearItems(cartID string) error {
	res := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to clear cart %s: %w", cartID, res.Error)
	}
	return nil
}
