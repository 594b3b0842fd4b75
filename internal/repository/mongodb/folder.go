package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"foldernotes/internal/domain"
	"foldernotes/internal/domain/models"
	"foldernotes/internal/domain/repositories"
)

// folderDocument is the stored shape of a folder
type folderDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d *folderDocument) toModel() models.Folder {
	return models.Folder{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// MongoFolderRepository implements the FolderRepository interface
type MongoFolderRepository struct {
	coll *mongo.Collection
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &MongoFolderRepository{
		coll: config.Database.Collection(config.Collections.Folders),
	}
}

// Create creates a new folder
func (r *MongoFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	folder.CreatedAt = bsonTime(folder.CreatedAt)
	folder.UpdatedAt = bsonTime(folder.UpdatedAt)

	doc := folderDocument{
		ID:        bson.NewObjectID(),
		Name:      folder.Name,
		CreatedAt: folder.CreatedAt,
		UpdatedAt: folder.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}

	folder.ID = doc.ID.Hex()
	return nil
}

// GetByID retrieves a folder by ID
func (r *MongoFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.NewNotFoundError("folder", id)
	}

	var doc folderDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFoundError("folder", id)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	folder := doc.toModel()
	return &folder, nil
}

// List returns all folders sorted by name
func (r *MongoFolderRepository) List(ctx context.Context) ([]models.Folder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	var docs []folderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode folders: %w", err)
	}

	folders := make([]models.Folder, 0, len(docs))
	for i := range docs {
		folders = append(folders, docs[i].toModel())
	}
	return folders, nil
}

// Update updates a folder's name
func (r *MongoFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	oid, ok := parseID(folder.ID)
	if !ok {
		return domain.NewNotFoundError("folder", folder.ID)
	}
	folder.UpdatedAt = bsonTime(folder.UpdatedAt)

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": folder.Name, "updatedAt": folder.UpdatedAt}},
	)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}

	if result.MatchedCount == 0 {
		return domain.NewNotFoundError("folder", folder.ID)
	}
	return nil
}

// Delete deletes a folder
func (r *MongoFolderRepository) Delete(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return domain.NewNotFoundError("folder", id)
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.DeletedCount == 0 {
		return domain.NewNotFoundError("folder", id)
	}
	return nil
}
