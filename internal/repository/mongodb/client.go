package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections *CollectionNames
	Logger      *slog.Logger
	// Transactions requires a replica set or sharded cluster
	Transactions bool
}

// CollectionNames holds prefixed collection names
type CollectionNames struct {
	Folders string
	Notes   string
}

// NewCollectionNames creates collection names with the given prefix
func NewCollectionNames(prefix string) *CollectionNames {
	return &CollectionNames{
		Folders: prefix + "folders",
		Notes:   prefix + "notes",
	}
}

// Connect opens a client for uri and verifies it with a ping
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(10 * time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// parseID converts a hex identifier. ok is false for anything that cannot
// be an ObjectID, which callers report as not found.
func parseID(id string) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, false
	}
	return oid, true
}

// bsonTime matches the millisecond precision BSON dates are stored with
func bsonTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
