package services

import (
	"errors"
	"fmt"
	"math"

	"solestore/internal/apperrors"
	"solestore/internal/models"
	"solestore/internal/repositories"
)

// ReviewService handles reviews and keeps the shoe's rating
// aggregates in step with them. The recomputation runs synchronously
// in the same logical operation as every review write.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	shoeRepo   repositories.ShoeRepository
	orderRepo  repositories.OrderRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	shoeRepo repositories.ShoeRepository,
	orderRepo repositories.OrderRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		shoeRepo:   shoeRepo,
		orderRepo:  orderRepo,
	}
}

// CreateReview submits a review for a shoe the user has purchased and
// had delivered, then recomputes the shoe's aggregates.
func (s *ReviewService) CreateReview(userID, shoeID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 || comment == "" {
		return nil, apperrors.NewValidation("A rating between 1 and 5 and a comment are required.")
	}

	if _, err := s.shoeRepo.GetByID(shoeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFound("Shoe not found.")
		}
		return nil, fmt.Errorf("failed to look up shoe: %w", err)
	}

	purchased, err := s.orderRepo.HasDeliveredItem(userID, shoeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check purchase history: %w", err)
	}
	if !purchased {
		return nil, apperrors.NewForbidden("You can only review products you have purchased.")
	}

	if _, err := s.reviewRepo.FindByUserAndShoe(userID, shoeID); err == nil {
		return nil, apperrors.NewConflict("You have already submitted a review for this product.")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}

	review := &models.Review{
		Rating:  rating,
		Comment: comment,
		UserID:  userID,
		ShoeID:  shoeID,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.recomputeAggregates(shoeID); err != nil {
		return nil, err
	}
	return review, nil
}

// GetShoeReviews retrieves all reviews for a shoe.
func (s *ReviewService) GetShoeReviews(shoeID string) ([]models.Review, error) {
	reviews, err := s.reviewRepo.GetByShoe(shoeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// DeleteReview removes the user's own review and recomputes the
// shoe's aggregates; deleting the last review resets them to zero.
func (s *ReviewService) DeleteReview(reviewID, userID string) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFound("Review not found.")
		}
		return fmt.Errorf("failed to get review: %w", err)
	}
	if review.UserID != userID {
		return apperrors.NewForbidden("You are not authorized to delete this review.")
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return s.recomputeAggregates(review.ShoeID)
}

// recomputeAggregates writes the current review count and mean rating
// back to the shoe, rounded to one decimal.
func (s *ReviewService) recomputeAggregates(shoeID string) error {
	count, average, err := s.reviewRepo.AggregateForShoe(shoeID)
	if err != nil {
		return fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	rounded := math.Round(average*10) / 10
	if err := s.shoeRepo.UpdateRatingStats(shoeID, rounded, count); err != nil {
		return fmt.Errorf("failed to update rating stats: %w", err)
	}
	return nil
}
