package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lifeline/internal/config"
	"lifeline/internal/utils"
	"lifeline/pkg/logger"
)

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	logger   *logger.Logger
}

func NewMongoDB(cfg *config.DatabaseConfig, log *logger.Logger) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(uint64(cfg.MaxPoolSize)).
		SetMinPoolSize(uint64(cfg.MinPoolSize)).
		SetSocketTimeout(cfg.SocketTimeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(cfg.Database)

	log.WithFields(map[string]interface{}{
		"database": cfg.Database,
	}).Info("Connected to MongoDB")

	mongodb := &MongoDB{
		Client:   client,
		Database: db,
		logger:   log,
	}

	if err := mongodb.createIndexes(context.Background()); err != nil {
		log.WithError(err).Warn("Failed to create indexes")
	}

	return mongodb, nil
}

func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}

func (m *MongoDB) createIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "reset_password_token", Value: 1}},
		},
	}
	if _, err := m.Collection(utils.CollectionUsers).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	doctorIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "is_approved", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "specialization", Value: 1}},
		},
	}
	if _, err := m.Collection(utils.CollectionDoctors).Indexes().CreateMany(ctx, doctorIndexes); err != nil {
		return fmt.Errorf("doctors indexes: %w", err)
	}

	bookingIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "doctor_id", Value: 1},
				{Key: "appointment_date", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	if _, err := m.Collection(utils.CollectionBookings).Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("bookings indexes: %w", err)
	}

	reviewIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	}
	if _, err := m.Collection(utils.CollectionReviews).Indexes().CreateMany(ctx, reviewIndexes); err != nil {
		return fmt.Errorf("reviews indexes: %w", err)
	}

	messageIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "sender_id", Value: 1},
				{Key: "receiver_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "sender_role", Value: 1}},
		},
	}
	if _, err := m.Collection(utils.CollectionMessages).Indexes().CreateMany(ctx, messageIndexes); err != nil {
		return fmt.Errorf("messages indexes: %w", err)
	}

	prescriptionIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}
	if _, err := m.Collection(utils.CollectionPrescriptions).Indexes().CreateMany(ctx, prescriptionIndexes); err != nil {
		return fmt.Errorf("prescriptions indexes: %w", err)
	}

	m.logger.Info("Database indexes created successfully")
	return nil
}
