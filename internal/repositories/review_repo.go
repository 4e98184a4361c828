package repositories

import (
	"solestore/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id string) (*models.Review, error)
	GetByShoe(shoeID string) ([]models.Review, error)
	FindByUserAndShoe(userID, shoeID string) (*models.Review, error)
	Delete(id string) error

	// AggregateForShoe returns the count and mean rating of all
	// reviews currently referencing the shoe. Zero values when none.
	AggregateForShoe(shoeID string) (count int, average float64, err error)
}
