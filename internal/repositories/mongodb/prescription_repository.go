package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lifeline/internal/models"
	"lifeline/internal/repositories/interfaces"
	"lifeline/internal/utils"
)

type prescriptionRepository struct {
	collection *mongo.Collection
}

func NewPrescriptionRepository(db *mongo.Database) interfaces.PrescriptionRepository {
	return &prescriptionRepository{
		collection: db.Collection(utils.CollectionPrescriptions),
	}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	prescription.ID = primitive.NewObjectID()
	prescription.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, prescription)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}

	return nil
}

func (r *prescriptionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Prescription, error) {
	var prescription models.Prescription
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&prescription)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}

	return &prescription, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Prescription, int64, error) {
	return r.list(ctx, bson.M{"patient_id": patientID}, params)
}

func (r *prescriptionRepository) ListByDoctor(ctx context.Context, doctorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Prescription, int64, error) {
	return r.list(ctx, bson.M{"doctor_id": doctorID}, params)
}

func (r *prescriptionRepository) list(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Prescription, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count prescriptions: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var prescriptions []*models.Prescription
	for cursor.Next(ctx) {
		var prescription models.Prescription
		if err := cursor.Decode(&prescription); err != nil {
			return nil, 0, fmt.Errorf("failed to decode prescription: %w", err)
		}
		prescriptions = append(prescriptions, &prescription)
	}

	return prescriptions, total, cursor.Err()
}
