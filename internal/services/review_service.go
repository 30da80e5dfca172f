package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wanderly/wanderly-server/internal/models"
)

type ReviewService struct {
	reviewsRepo models.ReviewsRepo
}

func NewReviewService(reviewsRepo models.ReviewsRepo) *ReviewService {
	return &ReviewService{
		reviewsRepo: reviewsRepo,
	}
}

func (rs *ReviewService) CreateReview(ctx context.Context, review *models.GuideReview) (*models.GuideReview, error) {
	if err := review.ValidateReview(); err != nil {
		return nil, err
	}
	if review.UserID == review.GuideID {
		return nil, fmt.Errorf("guides cannot review themselves")
	}

	return rs.reviewsRepo.CreateReview(ctx, review)
}

func (rs *ReviewService) GetReviewsByGuide(ctx context.Context, guideId uuid.UUID) ([]*models.GuideReview, error) {
	if guideId == uuid.Nil {
		return nil, fmt.Errorf("invalid guide ID")
	}
	return rs.reviewsRepo.GetReviewsByGuide(ctx, guideId)
}

func (rs *ReviewService) GetGuideRanking(ctx context.Context, guideId uuid.UUID) (float64, error) {
	if guideId == uuid.Nil {
		return 0, fmt.Errorf("invalid guide ID")
	}
	return rs.reviewsRepo.GetGuideRanking(ctx, guideId)
}
