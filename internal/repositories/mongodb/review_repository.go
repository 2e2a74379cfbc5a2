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

type reviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) interfaces.ReviewRepository {
	return &reviewRepository{
		collection: db.Collection(utils.CollectionReviews),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}

	return result.DeletedCount > 0, nil
}

func (r *reviewRepository) ListByDoctor(ctx context.Context, doctorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReviewWithAuthor, int64, error) {
	return r.listWithAuthors(ctx, bson.M{"doctor_id": doctorID}, params)
}

func (r *reviewRepository) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.ReviewWithAuthor, int64, error) {
	return r.listWithAuthors(ctx, bson.M{}, params)
}

func (r *reviewRepository) listWithAuthors(ctx context.Context, match bson.M, params *utils.PaginationParams) ([]*models.ReviewWithAuthor, int64, error) {
	total, err := r.collection.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	sortOrder := 1
	if params.Order == "desc" {
		sortOrder = -1
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: params.Sort, Value: sortOrder}}}},
		{{Key: "$skip", Value: params.GetSkip()}},
		{{Key: "$limit", Value: params.GetLimit()}},
		{{Key: "$lookup", Value: bson.M{
			"from":         utils.CollectionUsers,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
			"pipeline": mongo.Pipeline{
				{{Key: "$project", Value: bson.M{
					"name":   1,
					"email":  1,
					"photo":  1,
					"gender": 1,
				}}},
			},
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$user",
			"preserveNullAndEmptyArrays": true,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []*models.ReviewWithAuthor
	for cursor.Next(ctx) {
		var review models.ReviewWithAuthor
		if err := cursor.Decode(&review); err != nil {
			return nil, 0, fmt.Errorf("failed to decode review: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, total, cursor.Err()
}

// AggregateRatingStats groups the doctor's reviews into a count and mean.
// The zero-valued stats returned on an empty result set reset the doctor's
// aggregates when the last review is deleted.
func (r *reviewRepository) AggregateRatingStats(ctx context.Context, doctorID primitive.ObjectID) (*models.RatingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"doctor_id": doctorID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$doctor_id",
			"count":   bson.M{"$sum": 1},
			"average": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rating stats: %w", err)
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var stats models.RatingStats
		if err := cursor.Decode(&stats); err != nil {
			return nil, fmt.Errorf("failed to decode rating stats: %w", err)
		}
		return &stats, nil
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate rating stats: %w", err)
	}

	return &models.RatingStats{}, nil
}
