package models

import "gorm.io/gorm"

// Review is a customer rating for a shoe. One review per (user, shoe).
type Review struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Rating     int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string  `json:"comment" validate:"required"`
	UserID     string  `json:"user_id" gorm:"type:varchar(36);index:idx_review_user_shoe,unique"`
	ShoeID     string  `json:"shoe_id" gorm:"type:varchar(36);index:idx_review_user_shoe,unique"`
	gorm.Model `json:"-"`
}
