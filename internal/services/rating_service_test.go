package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/internal/models"
	"lifeline/pkg/logger"
)

func TestRatingService_Recompute_WritesAggregates(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	doctorRepo := new(mockDoctorRepository)
	doctorID := primitive.NewObjectID()

	stats := &models.RatingStats{Count: 3, Average: 4.5}
	reviewRepo.On("AggregateRatingStats", mock.Anything, doctorID).Return(stats, nil)
	doctorRepo.On("UpdateRatingStats", mock.Anything, doctorID, stats).Return(nil)

	svc := NewRatingService(reviewRepo, doctorRepo, logger.NewNop())
	err := svc.Recompute(context.Background(), doctorID)

	require.NoError(t, err)
	reviewRepo.AssertExpectations(t)
	doctorRepo.AssertExpectations(t)
}

func TestRatingService_Recompute_ZeroResetWhenNoReviews(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	doctorRepo := new(mockDoctorRepository)
	doctorID := primitive.NewObjectID()

	reviewRepo.On("AggregateRatingStats", mock.Anything, doctorID).Return(&models.RatingStats{}, nil)
	doctorRepo.On("UpdateRatingStats", mock.Anything, doctorID, &models.RatingStats{Count: 0, Average: 0}).Return(nil)

	svc := NewRatingService(reviewRepo, doctorRepo, logger.NewNop())
	err := svc.Recompute(context.Background(), doctorID)

	require.NoError(t, err)
	doctorRepo.AssertExpectations(t)
}

func TestRatingService_Recompute_PropagatesAggregationError(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	doctorRepo := new(mockDoctorRepository)
	doctorID := primitive.NewObjectID()

	reviewRepo.On("AggregateRatingStats", mock.Anything, doctorID).Return(nil, errors.New("cursor timeout"))

	svc := NewRatingService(reviewRepo, doctorRepo, logger.NewNop())
	err := svc.Recompute(context.Background(), doctorID)

	assert.Error(t, err)
	doctorRepo.AssertNotCalled(t, "UpdateRatingStats", mock.Anything, mock.Anything, mock.Anything)
}

func TestRatingService_RecomputeAsync_SwallowsFailure(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	doctorRepo := new(mockDoctorRepository)
	doctorID := primitive.NewObjectID()

	reviewRepo.On("AggregateRatingStats", mock.Anything, doctorID).Return(nil, errors.New("connection reset"))

	svc := NewRatingService(reviewRepo, doctorRepo, logger.NewNop())

	// must not panic or propagate
	svc.RecomputeAsync(context.Background(), doctorID)
	reviewRepo.AssertExpectations(t)
}
