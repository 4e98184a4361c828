package repositories

import (
	"fmt"
	"sync"

	"solestore/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
// Wishlist entries are resolved against the given ShoeRepository.
type MockUserRepository struct {
	users    map[string]models.User
	wishlist map[string]map[string]bool // userID -> shoeID set
	shoes    ShoeRepository
	mu       sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository(shoes ShoeRepository) *MockUserRepository {
	return &MockUserRepository{
		users:    make(map[string]models.User),
		wishlist: make(map[string]map[string]bool),
		shoes:    shoes,
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	r.users[user.ID] = *user
	return nil
}

// GetByUsername returns a user by username.
func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user with username %s: %w", username, ErrNotFound)
}

// GetByEmail returns a user by email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
}

// GetByID returns a user by ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return &user, nil
}

// GetAll returns every user.
func (r *MockUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

// Count returns the total number of users.
func (r *MockUserRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// GetWishlist returns the user's wishlisted shoes.
func (r *MockUserRepository) GetWishlist(userID string) ([]models.Shoe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[userID]; !ok {
		return nil, fmt.Errorf("user with ID %s: %w", userID, ErrNotFound)
	}
	shoes := []models.Shoe{}
	for shoeID := range r.wishlist[userID] {
		shoe, err := r.shoes.GetByID(shoeID)
		if err != nil {
			continue
		}
		shoes = append(shoes, *shoe)
	}
	return shoes, nil
}

// AddWishlistItem adds a shoe to the user's wishlist.
func (r *MockUserRepository) AddWishlistItem(userID, shoeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return fmt.Errorf("user with ID %s: %w", userID, ErrNotFound)
	}
	if r.wishlist[userID] == nil {
		r.wishlist[userID] = make(map[string]bool)
	}
	r.wishlist[userID][shoeID] = true
	return nil
}

// RemoveWishlistItem removes a shoe from the user's wishlist.
func (r *MockUserRepository) RemoveWishlistItem(userID, shoeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return fmt.Errorf("user with ID %s: %w", userID, ErrNotFound)
	}
	delete(r.wishlist[userID], shoeID)
	return nil
}

// IsWishlisted reports whether the shoe is in the user's wishlist.
func (r *MockUserRepository) IsWishlisted(userID, shoeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.wishlist[userID][shoeID], nil
}
