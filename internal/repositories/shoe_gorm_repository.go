package repositories

import (
	"fmt"
	"solestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMShoeRepository is a GORM implementation of ShoeRepository.
type GORMShoeRepository struct {
	db *gorm.DB
}

// NewGORMShoeRepository creates a new instance of GORMShoeRepository.
func NewGORMShoeRepository(db *gorm.DB) *GORMShoeRepository {
	return &GORMShoeRepository{
		db: db,
	}
}

// GetAll retrieves shoes matching the filter, newest first, together
// with the total count before pagination.
func (r *GORMShoeRepository) GetAll(filter ShoeFilter) ([]models.Shoe, int64, error) {
	query := r.db.Model(&models.Shoe{})

	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinPrice > 0 {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count shoes: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	var shoes []models.Shoe
	err := query.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&shoes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get shoes: %w", err)
	}
	return shoes, count, nil
}

// GetByID retrieves a single shoe by its ID from the database.
func (r *GORMShoeRepository) GetByID(id string) (*models.Shoe, error) {
	var shoe models.Shoe
	if err := r.db.First(&shoe, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("shoe with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get shoe by ID %s: %w", id, err)
	}
	return &shoe, nil
}

// Create creates a new shoe in the database.
func (r *GORMShoeRepository) Create(shoe *models.Shoe) error {
	if shoe.ID == "" {
		shoe.ID = uuid.New().String()
	}
	if err := r.db.Create(shoe).Error; err != nil {
		return fmt.Errorf("failed to create shoe: %w", err)
	}
	return nil
}

// Update updates an existing shoe in the database.
func (r *GORMShoeRepository) Update(shoe *models.Shoe) error {
	res := r.db.Save(shoe)
	if res.Error != nil {
		return fmt.Errorf("failed to update shoe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("shoe with ID %s: %w", shoe.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a shoe by its ID from the database.
func (r *GORMShoeRepository) Delete(id string) error {
	res := r.db.Delete(&models.Shoe{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete shoe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("shoe with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// DecrementStock performs a conditional decrement in a single UPDATE.
// The stock >= quantity guard makes the read and write one atomic
// statement, so concurrent checkouts cannot oversell.
func (r *GORMShoeRepository) DecrementStock(id string, quantity int) error {
	res := r.db.Model(&models.Shoe{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement stock for shoe %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		var shoe models.Shoe
		if err := r.db.First(&shoe, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("shoe with ID %s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to decrement stock for shoe %s: %w", id, err)
		}
		return fmt.Errorf("shoe %s has %d in stock, requested %d: %w", id, shoe.Stock, quantity, ErrInsufficientStock)
	}
	return nil
}

// IncrementStock restores previously reserved stock.
func (r *GORMShoeRepository) IncrementStock(id string, quantity int) error {
	res := r.db.Model(&models.Shoe{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to increment stock for shoe %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("shoe with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateRatingStats writes back recomputed review aggregates.
func (r *GORMShoeRepository) UpdateRatingStats(id string, averageRating float64, numberOfReviews int) error {
	res := r.db.Model(&models.Shoe{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"average_rating":    averageRating,
			"number_of_reviews": numberOfReviews,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update rating stats for shoe %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("shoe with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
