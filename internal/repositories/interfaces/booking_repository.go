package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/internal/models"
	"lifeline/internal/utils"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus, isPaid bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	ListByDoctor(ctx context.Context, doctorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)

	// CountForDoctorOnDay counts slot-consuming bookings for the doctor
	// within the calendar day containing date.
	CountForDoctorOnDay(ctx context.Context, doctorID primitive.ObjectID, date time.Time) (int64, error)
}
