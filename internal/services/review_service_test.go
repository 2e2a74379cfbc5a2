package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/internal/models"
	"lifeline/pkg/logger"
)

func newReviewTestService(reviewRepo *mockReviewRepository, doctorRepo *mockDoctorRepository) ReviewService {
	rating := NewRatingService(reviewRepo, doctorRepo, logger.NewNop())
	return NewReviewService(reviewRepo, doctorRepo, rating, logger.NewNop())
}

func TestReviewService_Create_RecomputesRating(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	doctorRepo := new(mockDoctorRepository)
	doctorID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	doctorRepo.On("GetByID", mock.Anything, doctorID).Return(&models.Doctor{ID: doctorID}, nil)
	reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Review")).Return(nil)
	reviewRepo.On("AggregateRatingStats", mock.Anything, doctorID).Return(&models.RatingStats{Count: 1, Average: 4}, nil)
	doctorRepo.On("UpdateRatingStats", mock.Anything, doctorID, &models.RatingStats{Count: 1, Average: 4}).Return(nil)

	svc := newReviewTestService(reviewRepo, doctorRepo)
	review, err := svc.Create(context.Background(), doctorID, userID, "  very helpful  ", 4)

	require.NoError(t, err)
	assert.Equal(t, "very helpful", review.ReviewText)
	doctorRepo.AssertCalled(t, "UpdateRatingStats", mock.Anything, doctorID, mock.Anything)
}

func TestReviewService_Create_RejectsBlankText(t *testing.T) {
	svc := newReviewTestService(new(mockReviewRepository), new(mockDoctorRepository))

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "   \t\n  ", 4)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestReviewService_Create_RejectsOutOfRangeRating(t *testing.T) {
	svc := newReviewTestService(new(mockReviewRepository), new(mockDoctorRepository))

	for _, rating := range []float64{-0.1, 5.1, 100} {
		_, err := svc.Create(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "fine", rating)
		assert.ErrorIs(t, err, ErrValidation, "rating %v should be rejected", rating)
	}
}

func TestReviewService_Create_AcceptsBoundaryRatings(t *testing.T) {
	for _, rating := range []float64{0, 5} {
		reviewRepo := new(mockReviewRepository)
		doctorRepo := new(mockDoctorRepository)
		doctorID := primitive.NewObjectID()

		doctorRepo.On("GetByID", mock.Anything, doctorID).Return(&models.Doctor{ID: doctorID}, nil)
		reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		reviewRepo.On("AggregateRatingStats", mock.Anything, doctorID).Return(&models.RatingStats{Count: 1, Average: rating}, nil)
		doctorRepo.On("UpdateRatingStats", mock.Anything, doctorID, mock.Anything).Return(nil)

		svc := newReviewTestService(reviewRepo, doctorRepo)
		_, err := svc.Create(context.Background(), doctorID, primitive.NewObjectID(), "ok", rating)
		assert.NoError(t, err, "rating %v should be accepted", rating)
	}
}

func TestReviewService_Create_SucceedsWhenRecomputeFails(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	doctorRepo := new(mockDoctorRepository)
	doctorID := primitive.NewObjectID()

	doctorRepo.On("GetByID", mock.Anything, doctorID).Return(&models.Doctor{ID: doctorID}, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviewRepo.On("AggregateRatingStats", mock.Anything, doctorID).Return(nil, assert.AnError)

	svc := newReviewTestService(reviewRepo, doctorRepo)
	review, err := svc.Create(context.Background(), doctorID, primitive.NewObjectID(), "helpful", 5)

	// a stale aggregate must not fail the review itself
	require.NoError(t, err)
	assert.NotNil(t, review)
}

func TestReviewService_Delete_SkipsRecomputeWhenNothingDeleted(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	doctorRepo := new(mockDoctorRepository)
	reviewID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	reviewRepo.On("GetByID", mock.Anything, reviewID).Return(&models.Review{ID: reviewID, DoctorID: doctorID}, nil)
	reviewRepo.On("Delete", mock.Anything, reviewID).Return(false, nil)

	svc := newReviewTestService(reviewRepo, doctorRepo)
	err := svc.Delete(context.Background(), reviewID, primitive.NewObjectID(), true)

	require.NoError(t, err)
	reviewRepo.AssertNotCalled(t, "AggregateRatingStats", mock.Anything, mock.Anything)
	doctorRepo.AssertNotCalled(t, "UpdateRatingStats", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_Delete_RecomputesAfterRemoval(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	doctorRepo := new(mockDoctorRepository)
	reviewID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	authorID := primitive.NewObjectID()
	reviewRepo.On("GetByID", mock.Anything, reviewID).Return(&models.Review{ID: reviewID, DoctorID: doctorID, UserID: authorID}, nil)
	reviewRepo.On("Delete", mock.Anything, reviewID).Return(true, nil)
	reviewRepo.On("AggregateRatingStats", mock.Anything, doctorID).Return(&models.RatingStats{}, nil)
	doctorRepo.On("UpdateRatingStats", mock.Anything, doctorID, &models.RatingStats{}).Return(nil)

	svc := newReviewTestService(reviewRepo, doctorRepo)
	err := svc.Delete(context.Background(), reviewID, authorID, false)

	require.NoError(t, err)
	doctorRepo.AssertExpectations(t)
}

func TestReviewService_Delete_ForbidsOtherUsers(t *testing.T) {
	reviewRepo := new(mockReviewRepository)
	doctorRepo := new(mockDoctorRepository)
	reviewID := primitive.NewObjectID()

	reviewRepo.On("GetByID", mock.Anything, reviewID).Return(&models.Review{
		ID:       reviewID,
		DoctorID: primitive.NewObjectID(),
		UserID:   primitive.NewObjectID(),
	}, nil)

	svc := newReviewTestService(reviewRepo, doctorRepo)
	err := svc.Delete(context.Background(), reviewID, primitive.NewObjectID(), false)

	assert.ErrorIs(t, err, ErrForbidden)
	reviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
