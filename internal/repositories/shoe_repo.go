package repositories

import (
	"solestore/internal/models"
)

// ShoeFilter narrows and pages catalog listings.
type ShoeFilter struct {
	Brand    string
	Category string
	MinPrice float64
	MaxPrice float64
	Page     int
	Limit    int
}

// ShoeRepository defines the interface for shoe data access.
type ShoeRepository interface {
	GetAll(filter ShoeFilter) ([]models.Shoe, int64, error)
	GetByID(id string) (*models.Shoe, error)
	Create(shoe *models.Shoe) error
	Update(shoe *models.Shoe) error
	Delete(id string) error

	// DecrementStock atomically reduces stock by quantity only if the
	// current stock covers it (decrement-if-available). It returns
	// ErrInsufficientStock when the condition fails, so two checkouts
	// racing for the last unit can never drive stock negative.
	DecrementStock(id string, quantity int) error

	// IncrementStock restores stock, used as the compensating step
	// when a later checkout stage fails after reservation.
	IncrementStock(id string, quantity int) error

	// UpdateRatingStats writes back the recomputed review aggregates.
	UpdateRatingStats(id string, averageRating float64, numberOfReviews int) error
}
