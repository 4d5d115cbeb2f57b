package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/servicehub/marketplace-api/internal/errors"
	"github.com/servicehub/marketplace-api/internal/middleware"
	"github.com/servicehub/marketplace-api/internal/services"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// ListReviews returns the reviews attached to a user's profile
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	reviews, err := h.reviewService.ListReviews(userID)
	if err != nil {
		apierrors.StorageFailure(c, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// CreateReview adds a review to the requester's own profile
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateReviewRequest struct {
		Rating       int    `json:"rating" binding:"required"`
		Comment      string `json:"comment" binding:"required"`
		Author       string `json:"author" binding:"required"`
		ProjectTitle string `json:"project_title" binding:"required"`
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.CreateReview(services.CreateReviewInput{
		UserID:       userID,
		Rating:       req.Rating,
		Comment:      req.Comment,
		Author:       req.Author,
		ProjectTitle: req.ProjectTitle,
	})
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// DeleteReview removes a review from the requester's own profile
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid review ID")
		return
	}

	if err := h.reviewService.DeleteReview(reviewID, userID); err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted successfully",
	})
}

func respondReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRatingOutOfRange),
		errors.Is(err, services.ErrCommentRequired),
		errors.Is(err, services.ErrAuthorRequired),
		errors.Is(err, services.ErrProjectTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotReviewOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrReviewNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.StorageFailure(c, "")
	}
}
