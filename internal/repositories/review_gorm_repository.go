package repositories

import (
	"fmt"
	"solestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// Create persists a new review.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByID retrieves a single review by its ID.
func (r *GORMReviewRepository) GetByID(id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("review with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review by ID %s: %w", id, err)
	}
	return &review, nil
}

// GetByShoe retrieves all reviews for a shoe, newest first.
func (r *GORMReviewRepository) GetByShoe(shoeID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("shoe_id = ?", shoeID).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews for shoe %s: %w", shoeID, err)
	}
	return reviews, nil
}

// FindByUserAndShoe returns the user's review of the shoe, if any.
func (r *GORMReviewRepository) FindByUserAndShoe(userID, shoeID string) (*models.Review, error) {
	var review models.Review
	err := r.db.First(&review, "user_id = ? AND shoe_id = ?", userID, shoeID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("review by user %s for shoe %s: %w", userID, shoeID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find review by user %s for shoe %s: %w", userID, shoeID, err)
	}
	return &review, nil
}

// Delete removes a review by its ID.
func (r *GORMReviewRepository) Delete(id string) error {
	res := r.db.Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// AggregateForShoe computes the review count and mean rating.
func (r *GORMReviewRepository) AggregateForShoe(shoeID string) (int, float64, error) {
	var result struct {
		Count   int64
		Average float64
	}
	err := r.db.Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("shoe_id = ?", shoeID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate reviews for shoe %s: %w", shoeID, err)
	}
	return int(result.Count), result.Average, nil
}
