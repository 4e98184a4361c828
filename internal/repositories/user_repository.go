package repositories

import "solestore/internal/models"

// UserRepository defines the interface for user data access,
// including the user's wishlist association.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetAll() ([]models.User, error)
	Count() (int64, error)

	GetWishlist(userID string) ([]models.Shoe, error)
	AddWishlistItem(userID, shoeID string) error
	RemoveWishlistItem(userID, shoeID string) error
	IsWishlisted(userID, shoeID string) (bool, error)
}
