package services

import (
	"errors"
	"fmt"

	"solestore/internal/apperrors"
	"solestore/internal/models"
	"solestore/internal/repositories"
)

// WishlistService handles the user's wishlist.
type WishlistService struct {
	userRepo repositories.UserRepository
	shoeRepo repositories.ShoeRepository
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(userRepo repositories.UserRepository, shoeRepo repositories.ShoeRepository) *WishlistService {
	return &WishlistService{
		userRepo: userRepo,
		shoeRepo: shoeRepo,
	}
}

// ToggleItem adds the shoe to the wishlist if absent, removes it if
// present. It returns whether the shoe is wishlisted afterwards.
func (s *WishlistService) ToggleItem(userID, shoeID string) (bool, error) {
	if _, err := s.shoeRepo.GetByID(shoeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, apperrors.NewNotFound("Shoe not found.")
		}
		return false, fmt.Errorf("failed to look up shoe: %w", err)
	}

	wishlisted, err := s.userRepo.IsWishlisted(userID, shoeID)
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}

	if wishlisted {
		if err := s.userRepo.RemoveWishlistItem(userID, shoeID); err != nil {
			return false, fmt.Errorf("failed to remove wishlist item: %w", err)
		}
		return false, nil
	}

	if err := s.userRepo.AddWishlistItem(userID, shoeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, apperrors.NewNotFound("User not found")
		}
		return false, fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return true, nil
}

// GetWishlist retrieves the user's wishlisted shoes.
func (s *WishlistService) GetWishlist(userID string) ([]models.Shoe, error) {
	shoes, err := s.userRepo.GetWishlist(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	if shoes == nil {
		shoes = []models.Shoe{}
	}
	return shoes, nil
}
