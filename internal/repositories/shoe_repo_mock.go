package repositories

import (
	"fmt"
	"sort"
	"sync"

	"solestore/internal/models"

	"github.com/google/uuid"
)

// MockShoeRepository is an in-memory implementation of ShoeRepository.
type MockShoeRepository struct {
	shoes map[string]models.Shoe
	mu    sync.RWMutex
}

// NewMockShoeRepository creates a new instance of MockShoeRepository.
func NewMockShoeRepository() *MockShoeRepository {
	return &MockShoeRepository{
		shoes: make(map[string]models.Shoe),
	}
}

// GetAll returns shoes matching the filter.
func (r *MockShoeRepository) GetAll(filter ShoeFilter) ([]models.Shoe, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Shoe, 0, len(r.shoes))
	for _, s := range r.shoes {
		if filter.Brand != "" && s.Brand != filter.Brand {
			continue
		}
		if filter.Category != "" && s.Category != filter.Category {
			continue
		}
		if filter.MinPrice > 0 && s.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && s.Price > filter.MaxPrice {
			continue
		}
		matched = append(matched, s)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	count := int64(len(matched))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return []models.Shoe{}, count, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], count, nil
}

// GetByID returns a shoe by its ID.
func (r *MockShoeRepository) GetByID(id string) (*models.Shoe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shoe, ok := r.shoes[id]
	if !ok {
		return nil, fmt.Errorf("shoe with ID %s: %w", id, ErrNotFound)
	}
	return &shoe, nil
}

// Create adds a new shoe.
func (r *MockShoeRepository) Create(shoe *models.Shoe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if shoe.ID == "" {
		shoe.ID = uuid.New().String()
	}
	r.shoes[shoe.ID] = *shoe
	return nil
}

// Update modifies an existing shoe.
func (r *MockShoeRepository) Update(shoe *models.Shoe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.shoes[shoe.ID]
	if !ok {
		return fmt.Errorf("shoe with ID %s: %w", shoe.ID, ErrNotFound)
	}
	r.shoes[shoe.ID] = *shoe
	return nil
}

// Delete removes a shoe by its ID.
func (r *MockShoeRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.shoes[id]
	if !ok {
		return fmt.Errorf("shoe with ID %s: %w", id, ErrNotFound)
	}
	delete(r.shoes, id)
	return nil
}

// DecrementStock mirrors the conditional UPDATE of the GORM
// implementation: the check and the write happen under one lock.
func (r *MockShoeRepository) DecrementStock(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	shoe, ok := r.shoes[id]
	if !ok {
		return fmt.Errorf("shoe with ID %s: %w", id, ErrNotFound)
	}
	if shoe.Stock < quantity {
		return fmt.Errorf("shoe %s has %d in stock, requested %d: %w", id, shoe.Stock, quantity, ErrInsufficientStock)
	}
	shoe.Stock -= quantity
	r.shoes[id] = shoe
	return nil
}

// IncrementStock restores previously reserved stock.
func (r *MockShoeRepository) IncrementStock(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	shoe, ok := r.shoes[id]
	if !ok {
		return fmt.Errorf("shoe with ID %s: %w", id, ErrNotFound)
	}
	shoe.Stock += quantity
	r.shoes[id] = shoe
	return nil
}

// UpdateRatingStats writes back recomputed review aggregates.
func (r *MockShoeRepository) UpdateRatingStats(id string, averageRating float64, numberOfReviews int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	shoe, ok := r.shoes[id]
	if !ok {
		return fmt.Errorf("shoe with ID %s: %w", id, ErrNotFound)
	}
	shoe.AverageRating = averageRating
	shoe.NumberOfReviews = numberOfReviews
	r.shoes[id] = shoe
	return nil
}
