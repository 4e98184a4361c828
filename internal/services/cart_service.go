package services

import (
	"errors"
	"fmt"

	"solestore/internal/apperrors"
	"solestore/internal/models"
	"solestore/internal/repositories"
)

// CartService handles business logic for the per-user shopping cart.
type CartService struct {
	cartRepo repositories.CartRepository
	shoeRepo repositories.ShoeRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, shoeRepo repositories.ShoeRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		shoeRepo: shoeRepo,
	}
}

// GetCart returns the user's cart with shoes resolved, creating an
// empty cart on first access.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByOwner(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	newCart := &models.Cart{OwnerID: userID}
	if err := s.cartRepo.Create(newCart); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return newCart, nil
}

// AddItem adds a (shoe, quantity, size) selection to the user's cart.
// A line item with the same shoe and size has its quantity
// incremented; otherwise a new line item is appended.
func (s *CartService) AddItem(userID, shoeID string, quantity int, size string) (*models.Cart, error) {
	if shoeID == "" || quantity < 1 || size == "" {
		return nil, apperrors.NewValidation("Shoe ID, quantity, and size are required.")
	}

	shoe, err := s.shoeRepo.GetByID(shoeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFound("Shoe not found.")
		}
		return nil, fmt.Errorf("failed to look up shoe: %w", err)
	}
	if shoe.Stock < quantity {
		return nil, &apperrors.InsufficientStockError{
			ShoeName:  shoe.Name,
			Requested: quantity,
			Remaining: shoe.Stock,
		}
	}

	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for _, item := range cart.Items {
		if item.ShoeID == shoeID && item.Size == size {
			if err := s.cartRepo.UpdateItemQuantity(cart.ID, item.ID, item.Quantity+quantity); err != nil {
				return nil, fmt.Errorf("failed to merge cart item: %w", err)
			}
			merged = true
			break
		}
	}
	if !merged {
		item := &models.CartItem{ShoeID: shoeID, Quantity: quantity, Size: size}
		if err := s.cartRepo.AddItem(cart.ID, item); err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	}

	return s.cartRepo.GetByOwner(userID)
}

// UpdateItemQuantity sets the quantity of an existing line item,
// re-checking the shoe's current stock.
func (s *CartService) UpdateItemQuantity(userID, itemID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperrors.NewValidation("A valid quantity is required.")
	}

	cart, err := s.cartRepo.GetByOwner(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFound("Cart not found.")
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var target *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			target = &cart.Items[i]
			break
		}
	}
	if target == nil {
		return nil, apperrors.NewNotFound("Item not found in cart.")
	}

	shoe := target.Shoe
	if shoe == nil {
		shoe, err = s.shoeRepo.GetByID(target.ShoeID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, apperrors.NewNotFound("Shoe not found.")
			}
			return nil, fmt.Errorf("failed to look up shoe: %w", err)
		}
	}
	if shoe.Stock < quantity {
		return nil, &apperrors.InsufficientStockError{
			ShoeName:  shoe.Name,
			Requested: quantity,
			Remaining: shoe.Stock,
		}
	}

	if err := s.cartRepo.UpdateItemQuantity(cart.ID, itemID, quantity); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFound("Item not found in cart.")
		}
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return s.cartRepo.GetByOwner(userID)
}

// RemoveItem removes a line item from the user's cart. Removing an
// item that is already gone is a no-op.
func (s *CartService) RemoveItem(userID, itemID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByOwner(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFound("Cart not found.")
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if err := s.cartRepo.RemoveItem(cart.ID, itemID); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return s.cartRepo.GetByOwner(userID)
}
