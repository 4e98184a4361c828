package repositories

import (
	"solestore/internal/models"
)

// OrderRepository defines the interface for order data access. Orders
// are immutable historical records; only their fulfillment status is
// ever updated, and they are never deleted.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByOwner(ownerID string) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	UpdateStatus(id string, status string) error

	// HasDeliveredItem reports whether the user has a delivered order
	// containing the shoe, the purchase gate for reviews.
	HasDeliveredItem(userID, shoeID string) (bool, error)

	Count() (int64, error)
	TotalRevenue() (float64, error)
	Recent(limit int) ([]models.Order, error)
}
