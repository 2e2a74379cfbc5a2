package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/internal/models"
	"lifeline/internal/utils"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *models.Prescription) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Prescription, error)
	ListByPatient(ctx context.Context, patientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Prescription, int64, error)
	ListByDoctor(ctx context.Context, doctorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Prescription, int64, error)
}
