// Package mongodb implements MongoDB adapters for the application.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"profile_server/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionProfileChanges = "profile_changes"

// ChangeLogAdapter implements out.ChangeLogRepository using MongoDB. Entries
// record which profile fields changed and when, never the submitted values.
type ChangeLogAdapter struct {
	collection *mongo.Collection
}

// NewChangeLogAdapter creates a new MongoDB change log adapter.
func NewChangeLogAdapter(db *mongo.Database) *ChangeLogAdapter {
	return &ChangeLogAdapter{
		collection: db.Collection(collectionProfileChanges),
	}
}

// EnsureIndexes creates necessary indexes for the collection.
func (a *ChangeLogAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "changed_at", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "changed_at", Value: -1}},
		},
	}

	_, err := a.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// Record inserts a profile change entry.
func (a *ChangeLogAdapter) Record(ctx context.Context, change *domain.ProfileChange) error {
	_, err := a.collection.InsertOne(ctx, change)
	return err
}

// NewClient creates a new MongoDB client.
func NewClient(url string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(url).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(30 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}
