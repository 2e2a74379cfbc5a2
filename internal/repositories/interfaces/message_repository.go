package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/internal/models"
)

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error

	// GetConversation returns all messages between the two parties in
	// either direction, ordered oldest first.
	GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]*models.Message, error)

	// GetPatientSenders returns the distinct patient ids that have
	// messaged the given doctor.
	GetPatientSenders(ctx context.Context, doctorID primitive.ObjectID) ([]primitive.ObjectID, error)
}
