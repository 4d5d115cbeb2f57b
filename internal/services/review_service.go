package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/servicehub/marketplace-api/internal/models"
	"github.com/servicehub/marketplace-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound       = errors.New("review not found")
	ErrRatingOutOfRange     = errors.New("rating must be between 1 and 5")
	ErrCommentRequired      = errors.New("comment is required")
	ErrAuthorRequired       = errors.New("author is required")
	ErrProjectTitleRequired = errors.New("project title is required")
	ErrNotReviewOwner       = errors.New("only the profile owner can delete this review")
)

// ReviewService handles profile review business logic
type ReviewService struct {
	reviewRepo repository.ReviewRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
	}
}

// CreateReviewInput represents input for creating a review
type CreateReviewInput struct {
	UserID       uint64
	Rating       int
	Comment      string
	Author       string
	ProjectTitle string
}

// CreateReview validates and stores a review on the owner's profile
func (s *ReviewService) CreateReview(input CreateReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrRatingOutOfRange
	}
	if strings.TrimSpace(input.Comment) == "" {
		return nil, ErrCommentRequired
	}
	if strings.TrimSpace(input.Author) == "" {
		return nil, ErrAuthorRequired
	}
	if strings.TrimSpace(input.ProjectTitle) == "" {
		return nil, ErrProjectTitleRequired
	}

	review := &models.Review{
		UserID:       input.UserID,
		Rating:       input.Rating,
		Comment:      input.Comment,
		Author:       input.Author,
		ProjectTitle: input.ProjectTitle,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}

// ListReviews returns all reviews attached to a profile
func (s *ReviewService) ListReviews(userID uint64) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// DeleteReview removes a review if the actor owns the profile it is on
func (s *ReviewService) DeleteReview(reviewID, actorID uint64) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to find review: %w", err)
	}

	if review.UserID != actorID {
		return ErrNotReviewOwner
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
