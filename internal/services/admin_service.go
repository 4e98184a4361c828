package services

import (
	"fmt"

	"solestore/internal/models"
	"solestore/internal/repositories"
)

// AdminService handles store-wide reads for administrators.
type AdminService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository) *AdminService {
	return &AdminService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
	}
}

// DashboardStats summarizes store activity.
type DashboardStats struct {
	TotalUsers   int64          `json:"total_users"`
	TotalOrders  int64          `json:"total_orders"`
	TotalRevenue float64        `json:"total_revenue"`
	RecentOrders []models.Order `json:"recent_orders"`
}

// GetAllOrders retrieves every order in the system, newest first.
func (s *AdminService) GetAllOrders() ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// GetAllUsers retrieves every user. Password hashes are never
// serialized (the model strips them from JSON).
func (s *AdminService) GetAllUsers() ([]models.User, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// GetDashboardStats assembles counts, revenue and the five most
// recent orders.
func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	totalOrders, err := s.orderRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	totalRevenue, err := s.orderRepo.TotalRevenue()
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	recentOrders, err := s.orderRepo.Recent(5)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent orders: %w", err)
	}
	if recentOrders == nil {
		recentOrders = []models.Order{}
	}
	return &DashboardStats{
		TotalUsers:   totalUsers,
		TotalOrders:  totalOrders,
		TotalRevenue: totalRevenue,
		RecentOrders: recentOrders,
	}, nil
}
