package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lifeline/internal/models"
	"lifeline/internal/repositories/interfaces"
	"lifeline/internal/utils"
)

type doctorRepository struct {
	collection *mongo.Collection
}

func NewDoctorRepository(db *mongo.Database) interfaces.DoctorRepository {
	return &doctorRepository{
		collection: db.Collection(utils.CollectionDoctors),
	}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	doctor.ID = primitive.NewObjectID()
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, doctor)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}

	return nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	return &doctor, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to get doctor by email: %w", err)
	}

	return &doctor, nil
}

func (r *doctorRepository) GetByResetToken(ctx context.Context, token string) (*models.Doctor, error) {
	filter := bson.M{
		"reset_password_token":   token,
		"reset_password_expires": bson.M{"$gt": time.Now()},
	}

	var doctor models.Doctor
	err := r.collection.FindOne(ctx, filter).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to get doctor by reset token: %w", err)
	}

	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Doctor, error) {
	updates["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doctor models.Doctor
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	return &doctor, nil
}

func (r *doctorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *doctorRepository) ListApproved(ctx context.Context, params *utils.PaginationParams) ([]*models.Doctor, int64, error) {
	filter := bson.M{"is_approved": models.ApprovalApproved}

	if search := params.GetSearchFilter([]string{"name", "specialization"}); len(search) > 0 {
		filter = bson.M{
			"$and": []bson.M{
				{"is_approved": models.ApprovalApproved},
				search,
			},
		}
	}

	return r.list(ctx, filter, params)
}

func (r *doctorRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Doctor, int64, error) {
	return r.list(ctx, params.GetSearchFilter([]string{"name", "email", "specialization"}), params)
}

func (r *doctorRepository) list(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Doctor, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count doctors: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []*models.Doctor
	for cursor.Next(ctx) {
		var doctor models.Doctor
		if err := cursor.Decode(&doctor); err != nil {
			return nil, 0, fmt.Errorf("failed to decode doctor: %w", err)
		}
		doctors = append(doctors, &doctor)
	}

	return doctors, total, cursor.Err()
}

func (r *doctorRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"reset_password_token":   token,
			"reset_password_expires": expires,
			"updated_at":             time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *doctorRepository) ClearResetToken(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	update := bson.M{
		"$set": bson.M{
			"password":   hashedPassword,
			"updated_at": time.Now(),
		},
		"$unset": bson.M{
			"reset_password_token":   "",
			"reset_password_expires": "",
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *doctorRepository) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, stats *models.RatingStats) error {
	update := bson.M{
		"$set": bson.M{
			"total_rating":   stats.Count,
			"average_rating": stats.Average,
			"updated_at":     time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update rating stats: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
