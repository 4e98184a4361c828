package models

import (
	"strings"

	"gorm.io/gorm"
)

// Shoe categories accepted by the catalog.
var ValidCategories = map[string]bool{
	"sneakers": true,
	"boots":    true,
	"sandals":  true,
	"formal":   true,
	"casual":   true,
}

// Shoe represents a product in the catalog.
type Shoe struct {
	ID              string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name            string  `json:"name" gorm:"index" validate:"required,min=2,max=100"`
	Description     string  `json:"description" validate:"required,max=2000"`
	Price           float64 `json:"price" validate:"required,gte=0"`
	Brand           string  `json:"brand" validate:"required"`
	Category        string  `json:"category" validate:"required,oneof=sneakers boots sandals formal casual"`
	Sizes           string  `json:"-" gorm:"type:varchar(255)"` // comma-separated, see SizeList
	Images          string  `json:"-" gorm:"type:text"`         // comma-separated URLs
	Stock           int     `json:"stock" validate:"gte=0"`
	OwnerID         string  `json:"owner_id" gorm:"type:varchar(36)"`
	AverageRating   float64 `json:"average_rating" gorm:"default:0"`
	NumberOfReviews int     `json:"number_of_reviews" gorm:"default:0"`
	IsFeatured      bool    `json:"is_featured" gorm:"default:false"`
	gorm.Model      `json:"-"`
}

// SizeList returns the declared sizes as a slice.
func (s *Shoe) SizeList() []string {
	if s.Sizes == "" {
		return nil
	}
	parts := strings.Split(s.Sizes, ",")
	sizes := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			sizes = append(sizes, trimmed)
		}
	}
	return sizes
}

// SetSizes stores the declared sizes from a slice.
func (s *Shoe) SetSizes(sizes []string) {
	cleaned := make([]string, 0, len(sizes))
	for _, sz := range sizes {
		if trimmed := strings.TrimSpace(sz); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	s.Sizes = strings.Join(cleaned, ",")
}

// ImageList returns the image URLs as a slice.
func (s *Shoe) ImageList() []string {
	if s.Images == "" {
		return nil
	}
	return strings.Split(s.Images, ",")
}

// SetImages stores the image URLs from a slice.
func (s *Shoe) SetImages(urls []string) {
	s.Images = strings.Join(urls, ",")
}
