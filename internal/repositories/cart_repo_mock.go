package repositories

import (
	"errors"
	"fmt"
	"sync"

	"solestore/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
// It resolves line-item shoes against the given ShoeRepository, the
// way the GORM implementation preloads them.
type MockCartRepository struct {
	carts map[string]models.Cart // keyed by cart ID
	shoes ShoeRepository
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository(shoes ShoeRepository) *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
		shoes: shoes,
	}
}

// GetByOwner returns the owner's cart with shoes resolved.
func (r *MockCartRepository) GetByOwner(ownerID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cart := range r.carts {
		if cart.OwnerID != ownerID {
			continue
		}
		resolved := cart
		resolved.Items = make([]models.CartItem, len(cart.Items))
		copy(resolved.Items, cart.Items)
		for i := range resolved.Items {
			shoe, err := r.shoes.GetByID(resolved.Items[i].ShoeID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					continue // shoe removed from catalog; leave unresolved
				}
				return nil, err
			}
			resolved.Items[i].Shoe = shoe
		}
		return &resolved, nil
	}
	return nil, fmt.Errorf("cart for owner %s: %w", ownerID, ErrNotFound)
}

// Create adds a new cart.
func (r *MockCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	r.carts[cart.ID] = *cart
	return nil
}

// AddItem appends a line item to the cart.
func (r *MockCartRepository) AddItem(cartID string, item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return fmt.Errorf("cart with ID %s: %w", cartID, ErrNotFound)
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CartID = cartID
	stored := *item
	stored.Shoe = nil
	cart.Items = append(cart.Items, stored)
	r.carts[cartID] = cart
	return nil
}

// UpdateItemQuantity sets the quantity of an existing line item.
func (r *MockCartRepository) UpdateItemQuantity(cartID, itemID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return fmt.Errorf("cart with ID %s: %w", cartID, ErrNotFound)
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			r.carts[cartID] = cart
			return nil
		}
	}
	return fmt.Errorf("item %s in cart %s: %w", itemID, cartID, ErrNotFound)
}

// RemoveItem deletes a line item. Removing an absent item is a no-op.
func (r *MockCartRepository) RemoveItem(cartID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return fmt.Errorf("cart with ID %s: %w", cartID, ErrNotFound)
	}
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	cart.Items = items
	r.carts[cartID] = cart
	return nil
}

// ClearItems removes every line item from the cart.
func (r *MockCartRepository) ClearItems(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return fmt.Errorf("cart with ID %s: %w", cartID, ErrNotFound)
	}
	cart.Items = nil
	r.carts[cartID] = cart
	return nil
}
