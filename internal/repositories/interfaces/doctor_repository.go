package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/internal/models"
	"lifeline/internal/utils"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*models.Doctor, error)
	GetByResetToken(ctx context.Context, token string) (*models.Doctor, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Doctor, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ListApproved returns approved doctors, optionally filtered by a
	// name/specialization search term.
	ListApproved(ctx context.Context, params *utils.PaginationParams) ([]*models.Doctor, int64, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Doctor, int64, error)

	SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error
	ClearResetToken(ctx context.Context, id primitive.ObjectID, hashedPassword string) error

	// UpdateRatingStats overwrites the derived aggregate rating fields.
	UpdateRatingStats(ctx context.Context, id primitive.ObjectID, stats *models.RatingStats) error
}
