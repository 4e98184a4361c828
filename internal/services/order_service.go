package services

import (
	"errors"
	"fmt"

	"solestore/internal/apperrors"
	"solestore/internal/models"
	"solestore/internal/repositories"
)

// OrderService handles reads over the immutable order history and
// fulfillment status updates.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// GetMyOrders retrieves the user's orders, newest first.
func (s *OrderService) GetMyOrders(userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// GetOrderByID retrieves a single order, enforcing ownership.
func (s *OrderService) GetOrderByID(orderID, userID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFound("Order not found.")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order.OwnerID != userID {
		return nil, apperrors.NewForbidden("You are not authorized to view this order.")
	}
	return order, nil
}

// UpdateOrderStatus moves an order through the fulfillment lifecycle.
func (s *OrderService) UpdateOrderStatus(orderID, status string) error {
	if !models.ValidOrderStatuses[status] {
		return apperrors.NewValidation(fmt.Sprintf("Invalid order status: %s", status))
	}
	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFound("Order not found.")
		}
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}
