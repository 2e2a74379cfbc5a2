package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/internal/repositories/interfaces"
	"lifeline/pkg/logger"
)

// RatingService keeps each doctor's derived rating aggregates in sync with
// the reviews collection. Recompute reads the authoritative review data and
// overwrites total_rating and average_rating wholesale, so a missed or
// duplicated call self-heals on the next write.
type RatingService interface {
	Recompute(ctx context.Context, doctorID primitive.ObjectID) error
	// RecomputeAsync recomputes and swallows any failure, logging it. Used
	// after review writes where stale aggregates must not fail the request.
	RecomputeAsync(ctx context.Context, doctorID primitive.ObjectID)
}

type ratingService struct {
	reviewRepo interfaces.ReviewRepository
	doctorRepo interfaces.DoctorRepository
	logger     *logger.Logger
}

func NewRatingService(reviewRepo interfaces.ReviewRepository, doctorRepo interfaces.DoctorRepository, log *logger.Logger) RatingService {
	return &ratingService{
		reviewRepo: reviewRepo,
		doctorRepo: doctorRepo,
		logger:     log,
	}
}

func (s *ratingService) Recompute(ctx context.Context, doctorID primitive.ObjectID) error {
	stats, err := s.reviewRepo.AggregateRatingStats(ctx, doctorID)
	if err != nil {
		return err
	}

	return s.doctorRepo.UpdateRatingStats(ctx, doctorID, stats)
}

func (s *ratingService) RecomputeAsync(ctx context.Context, doctorID primitive.ObjectID) {
	if err := s.Recompute(ctx, doctorID); err != nil {
		s.logger.WithError(err).WithDoctorID(doctorID).Error("Failed to recompute doctor rating")
	}
}
