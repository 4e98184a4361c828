package services

import (
	"errors"
	"fmt"

	"solestore/internal/apperrors"
	"solestore/internal/models"
	"solestore/internal/repositories"
)

// ShoeService handles business logic related to the shoe catalog.
type ShoeService struct {
	repo repositories.ShoeRepository
}

// NewShoeService creates a new ShoeService.
func NewShoeService(repo repositories.ShoeRepository) *ShoeService {
	return &ShoeService{
		repo: repo,
	}
}

// ShoeListing is a paginated catalog page.
type ShoeListing struct {
	Shoes       []models.Shoe `json:"shoes"`
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
}

// GetAllShoes retrieves shoes matching the filter, paginated.
func (s *ShoeService) GetAllShoes(filter repositories.ShoeFilter) (*ShoeListing, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	shoes, count, err := s.repo.GetAll(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shoes: %w", err)
	}
	totalPages := int((count + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ShoeListing{
		Shoes:       shoes,
		TotalPages:  totalPages,
		CurrentPage: filter.Page,
	}, nil
}

// GetShoeByID retrieves a single shoe by its ID.
func (s *ShoeService) GetShoeByID(id string) (*models.Shoe, error) {
	shoe, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFound("Shoe not found.")
		}
		return nil, fmt.Errorf("failed to get shoe: %w", err)
	}
	return shoe, nil
}

// CreateShoe adds a new shoe to the catalog.
func (s *ShoeService) CreateShoe(shoe *models.Shoe) error {
	if !models.ValidCategories[shoe.Category] {
		return apperrors.NewValidation(fmt.Sprintf("Invalid category: %s", shoe.Category))
	}
	if shoe.Price < 0 || shoe.Stock < 0 {
		return apperrors.NewValidation("Price and stock must be non-negative.")
	}
	if err := s.repo.Create(shoe); err != nil {
		return fmt.Errorf("failed to create shoe: %w", err)
	}
	return nil
}

// UpdateShoe updates an existing catalog entry.
func (s *ShoeService) UpdateShoe(shoe *models.Shoe) error {
	if shoe.Category != "" && !models.ValidCategories[shoe.Category] {
		return apperrors.NewValidation(fmt.Sprintf("Invalid category: %s", shoe.Category))
	}
	if shoe.Price < 0 || shoe.Stock < 0 {
		return apperrors.NewValidation("Price and stock must be non-negative.")
	}
	if err := s.repo.Update(shoe); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFound("Shoe not found.")
		}
		return fmt.Errorf("failed to update shoe: %w", err)
	}
	return nil
}

// DeleteShoe removes a shoe from the catalog.
func (s *ShoeService) DeleteShoe(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFound("Shoe not found.")
		}
		return fmt.Errorf("failed to delete shoe: %w", err)
	}
	return nil
}
