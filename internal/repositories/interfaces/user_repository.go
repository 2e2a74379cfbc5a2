package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/internal/models"
	"lifeline/internal/utils"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// List returns users decorated with their booking counts, most
	// active bookers first.
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.UserWithBookingCount, int64, error)

	GetByVerificationToken(ctx context.Context, token string) (*models.User, error)
	MarkEmailVerified(ctx context.Context, id primitive.ObjectID) error

	SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error
	ClearResetToken(ctx context.Context, id primitive.ObjectID, hashedPassword string) error
	GetProfilesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.PatientProfile, error)
}
