package models

import "gorm.io/gorm"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a customer of the store.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role       string `json:"role" gorm:"type:varchar(20);default:user"`
	Wishlist   []Shoe `json:"wishlist,omitempty" gorm:"many2many:user_wishlist"`
	gorm.Model `json:"-"`
}
