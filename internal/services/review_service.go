package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lifeline/internal/models"
	"lifeline/internal/repositories/interfaces"
	"lifeline/internal/utils"
	"lifeline/pkg/logger"
)

type ReviewService interface {
	Create(ctx context.Context, doctorID, userID primitive.ObjectID, reviewText string, rating float64) (*models.Review, error)

	// Delete removes a review on behalf of its author or an admin.
	Delete(ctx context.Context, id, callerID primitive.ObjectID, isAdmin bool) error
	ListByDoctor(ctx context.Context, doctorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReviewWithAuthor, int64, error)
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.ReviewWithAuthor, int64, error)
}

type reviewService struct {
	reviewRepo interfaces.ReviewRepository
	doctorRepo interfaces.DoctorRepository
	rating     RatingService
	logger     *logger.Logger
}

func NewReviewService(reviewRepo interfaces.ReviewRepository, doctorRepo interfaces.DoctorRepository, rating RatingService, log *logger.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		doctorRepo: doctorRepo,
		rating:     rating,
		logger:     log,
	}
}

func (s *reviewService) Create(ctx context.Context, doctorID, userID primitive.ObjectID, reviewText string, rating float64) (*models.Review, error) {
	reviewText = strings.TrimSpace(reviewText)
	if reviewText == "" {
		return nil, fmt.Errorf("%w: review text must not be empty", ErrValidation)
	}
	if len(reviewText) > utils.MaxReviewTextLength {
		return nil, fmt.Errorf("%w: review text too long", ErrValidation)
	}
	if rating < utils.MinReviewRating || rating > utils.MaxReviewRating {
		return nil, fmt.Errorf("%w: rating must be between %v and %v", ErrValidation, utils.MinReviewRating, utils.MaxReviewRating)
	}

	if _, err := s.doctorRepo.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: doctor", ErrNotFound)
		}
		return nil, err
	}

	review := &models.Review{
		DoctorID:   doctorID,
		UserID:     userID,
		ReviewText: reviewText,
		Rating:     rating,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.rating.RecomputeAsync(ctx, doctorID)

	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, id, callerID primitive.ObjectID, isAdmin bool) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: review", ErrNotFound)
		}
		return err
	}
	if !isAdmin && review.UserID != callerID {
		return ErrForbidden
	}

	deleted, err := s.reviewRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	// Only a delete that actually removed a document can change the
	// aggregates.
	if deleted {
		s.rating.RecomputeAsync(ctx, review.DoctorID)
	}

	return nil
}

func (s *reviewService) ListByDoctor(ctx context.Context, doctorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReviewWithAuthor, int64, error) {
	return s.reviewRepo.ListByDoctor(ctx, doctorID, params)
}

func (s *reviewService) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.ReviewWithAuthor, int64, error) {
	return s.reviewRepo.ListAll(ctx, params)
}
