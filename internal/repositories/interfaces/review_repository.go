package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/internal/models"
	"lifeline/internal/utils"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	// Delete reports whether a document was actually removed, so the
	// caller can skip the rating recompute on a no-op delete.
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)

	ListByDoctor(ctx context.Context, doctorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReviewWithAuthor, int64, error)
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.ReviewWithAuthor, int64, error)

	// AggregateRatingStats computes the review count and mean rating for
	// a doctor. Zero-valued stats are returned when no reviews exist.
	AggregateRatingStats(ctx context.Context, doctorID primitive.ObjectID) (*models.RatingStats, error)
}
