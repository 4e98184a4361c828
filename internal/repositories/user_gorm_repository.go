package repositories

import (
	"fmt"
	"solestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with username %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetAll retrieves every user, newest first.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// Count returns the total number of users.
func (r *GORMUserRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// GetWishlist retrieves the user's wishlisted shoes.
func (r *GORMUserRepository) GetWishlist(userID string) ([]models.Shoe, error) {
	user, err := r.GetByID(userID)
	if err != nil {
		return nil, err
	}
	var shoes []models.Shoe
	if err := r.db.Model(user).Association("Wishlist").Find(&shoes); err != nil {
		return nil, fmt.Errorf("failed to get wishlist for user %s: %w", userID, err)
	}
	return shoes, nil
}

// AddWishlistItem adds a shoe to the user's wishlist.
func (r *GORMUserRepository) AddWishlistItem(userID, shoeID string) error {
	user, err := r.GetByID(userID)
	if err != nil {
		return err
	}
	if err := r.db.Model(user).Association("Wishlist").Append(&models.Shoe{ID: shoeID}); err != nil {
		return fmt.Errorf("failed to add shoe %s to wishlist: %w", shoeID, err)
	}
	return nil
}

// RemoveWishlistItem removes a shoe from the user's wishlist.
func (r *GORMUserRepository) RemoveWishlistItem(userID, shoeID string) error {
	user, err := r.GetByID(userID)
	if err != nil {
		return err
	}
	if err := r.db.Model(user).Association("Wishlist").Delete(&models.Shoe{ID: shoeID}); err != nil {
		return fmt.Errorf("failed to remove shoe %s from wishlist: %w", shoeID, err)
	}
	return nil
}

// IsWishlisted reports whether the shoe is in the user's wishlist.
func (r *GORMUserRepository) IsWishlisted(userID, shoeID string) (bool, error) {
	var count int64
	err := r.db.Table("user_wishlist").
		Where("user_id = ? AND shoe_id = ?", userID, shoeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist for user %s: %w", userID, err)
	}
	return count > 0, nil
}
