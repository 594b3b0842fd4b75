package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Admin manages indexes and lifecycle of the MongoDB store
type Admin struct {
	client      *mongo.Client
	db          *mongo.Database
	collections *CollectionNames
}

// NewAdmin creates a schema admin for the configured collections
func NewAdmin(config *RepositoryConfig) *Admin {
	return &Admin{
		client:      config.Client,
		db:          config.Database,
		collections: config.Collections,
	}
}

// EnsureSchema creates the indexes used by list queries
func (a *Admin) EnsureSchema(ctx context.Context) error {
	_, err := a.db.Collection(a.collections.Folders).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("name_asc"),
	})
	if err != nil {
		return fmt.Errorf("create folder index: %w", err)
	}

	_, err = a.db.Collection(a.collections.Notes).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "folder", Value: 1}, {Key: "updatedAt", Value: -1}},
		Options: options.Index().SetName("folder_updated_desc"),
	})
	if err != nil {
		return fmt.Errorf("create note index: %w", err)
	}
	return nil
}

// DropTables drops both collections
func (a *Admin) DropTables(ctx context.Context) error {
	for _, name := range []string{a.collections.Notes, a.collections.Folders} {
		if err := a.db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}
	return nil
}

// ClearData deletes every document while keeping indexes
func (a *Admin) ClearData(ctx context.Context) error {
	for _, name := range []string{a.collections.Notes, a.collections.Folders} {
		if _, err := a.db.Collection(name).DeleteMany(ctx, bson.D{}); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
	}
	return nil
}

// Ping checks the server is reachable
func (a *Admin) Ping(ctx context.Context) error {
	return a.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (a *Admin) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}
