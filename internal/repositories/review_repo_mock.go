package repositories

import (
	"fmt"
	"sync"

	"solestore/internal/models"

	"github.com/google/uuid"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews map[string]models.Review
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		reviews: make(map[string]models.Review),
	}
}

// Create adds a new review.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	r.reviews[review.ID] = *review
	return nil
}

// GetByID returns a review by its ID.
func (r *MockReviewRepository) GetByID(id string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review with ID %s: %w", id, ErrNotFound)
	}
	return &review, nil
}

// GetByShoe returns all reviews for a shoe.
func (r *MockReviewRepository) GetByShoe(shoeID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reviews []models.Review
	for _, rev := range r.reviews {
		if rev.ShoeID == shoeID {
			reviews = append(reviews, rev)
		}
	}
	return reviews, nil
}

// FindByUserAndShoe returns the user's review of the shoe, if any.
func (r *MockReviewRepository) FindByUserAndShoe(userID, shoeID string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rev := range r.reviews {
		if rev.UserID == userID && rev.ShoeID == shoeID {
			found := rev
			return &found, nil
		}
	}
	return nil, fmt.Errorf("review by user %s for shoe %s: %w", userID, shoeID, ErrNotFound)
}

// Delete removes a review by its ID.
func (r *MockReviewRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.reviews[id]
	if !ok {
		return fmt.Errorf("review with ID %s: %w", id, ErrNotFound)
	}
	delete(r.reviews, id)
	return nil
}

// AggregateForShoe computes the review count and mean rating.
func (r *MockReviewRepository) AggregateForShoe(shoeID string) (int, float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int
	var sum float64
	for _, rev := range r.reviews {
		if rev.ShoeID == shoeID {
			count++
			sum += float64(rev.Rating)
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return count, sum / float64(count), nil
}
