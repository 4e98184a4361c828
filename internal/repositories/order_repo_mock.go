package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"solestore/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders  map[string]models.Order
	created map[string]time.Time
	mu      sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:  make(map[string]models.Order),
		created: make(map[string]time.Time),
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.ID] = *order
	r.created[order.ID] = time.Now()
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// GetByOwner returns a user's orders, newest first.
func (r *MockOrderRepository) GetByOwner(ownerID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, o := range r.orders {
		if o.OwnerID == ownerID {
			orders = append(orders, o)
		}
	}
	r.sortNewestFirst(orders)
	return orders, nil
}

// GetAll returns every order, newest first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, o)
	}
	r.sortNewestFirst(orders)
	return orders, nil
}

// UpdateStatus updates the fulfillment status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	order.OrderStatus = status
	r.orders[id] = order
	return nil
}

// HasDeliveredItem reports whether the user has a delivered order
// containing the shoe.
func (r *MockOrderRepository) HasDeliveredItem(userID, shoeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.OwnerID != userID || o.OrderStatus != models.OrderStatusDelivered {
			continue
		}
		for _, item := range o.Items {
			if item.ShoeID == shoeID {
				return true, nil
			}
		}
	}
	return false, nil
}

// Count returns the total number of orders.
func (r *MockOrderRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}

// TotalRevenue sums the total price across all orders.
func (r *MockOrderRepository) TotalRevenue() (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var revenue float64
	for _, o := range r.orders {
		revenue += o.TotalPrice
	}
	return revenue, nil
}

// Recent returns the most recent orders, newest first.
func (r *MockOrderRepository) Recent(limit int) ([]models.Order, error) {
	orders, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

// sortNewestFirst orders by creation time descending. Callers must
// hold at least a read lock.
func (r *MockOrderRepository) sortNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return r.created[orders[i].ID].After(r.created[orders[j].ID])
	})
}
