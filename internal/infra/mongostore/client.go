package mongostore

import (
	"context"
	"fmt"
	"log/slog"

	"course-enrollment/internal/pkg/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	classesCollection     = "classes"
	selectionsCollection  = "selectedClasses"
	paymentsCollection    = "payments"
	enrollmentsCollection = "enrolled"
	settlementsCollection = "settlements"
)

// Connect opens a client, pings the primary and returns the configured
// database with a cleanup func.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	cleanup := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Error("failed to disconnect mongo", "error", err)
		}
	}
	return client.Database(cfg.Database), cleanup, nil
}

// EnsureIndexes creates the indexes the store relies on for uniqueness.
// Creating an index that already exists is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		selectionsCollection: {
			{
				Keys:    bson.D{{Key: "studentEmail", Value: 1}, {Key: "classId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uq_selection_student_class"),
			},
			{Keys: bson.D{{Key: "studentEmail", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		paymentsCollection: {
			{
				Keys:    bson.D{{Key: "transactionId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uq_payment_transaction"),
			},
		},
		enrollmentsCollection: {
			{
				Keys:    bson.D{{Key: "transactionId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uq_enrollment_transaction"),
			},
			{Keys: bson.D{{Key: "studentEmail", Value: 1}, {Key: "classId", Value: 1}}},
			{Keys: bson.D{{Key: "className", Value: 1}, {Key: "createdAt", Value: 1}}},
			{Keys: bson.D{{Key: "instructorName", Value: 1}}},
		},
		settlementsCollection: {
			{
				// one live settlement per selection
				Keys: bson.D{{Key: "selectionId", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetName("uq_settlement_active_selection").
					SetPartialFilterExpression(bson.D{{Key: "active", Value: true}}),
			},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "leaseExpiresAt", Value: 1}}},
		},
		classesCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "instructorEmail", Value: 1}}},
		},
	}
	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
