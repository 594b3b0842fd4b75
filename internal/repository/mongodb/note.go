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

// noteDocument is the stored shape of a note
type noteDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Folder    bson.ObjectID `bson:"folder"`
	Title     string        `bson:"title"`
	Content   string        `bson:"content"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d *noteDocument) toModel() models.Note {
	return models.Note{
		ID:        d.ID.Hex(),
		FolderID:  d.Folder.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// MongoNoteRepository implements the NoteRepository interface
type MongoNoteRepository struct {
	coll *mongo.Collection
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &MongoNoteRepository{
		coll: config.Database.Collection(config.Collections.Notes),
	}
}

// scopedFilter matches a note only inside its folder
func scopedFilter(folderID, id string) (bson.M, bool) {
	folderOID, ok := parseID(folderID)
	if !ok {
		return nil, false
	}
	noteOID, ok := parseID(id)
	if !ok {
		return nil, false
	}
	return bson.M{"_id": noteOID, "folder": folderOID}, true
}

// Create creates a new note. The folder is not checked here; the note
// service does that inside the same transaction.
func (r *MongoNoteRepository) Create(ctx context.Context, note *models.Note) error {
	folderOID, ok := parseID(note.FolderID)
	if !ok {
		return domain.NewNotFoundError("folder", note.FolderID)
	}
	note.CreatedAt = bsonTime(note.CreatedAt)
	note.UpdatedAt = bsonTime(note.UpdatedAt)

	doc := noteDocument{
		ID:        bson.NewObjectID(),
		Folder:    folderOID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	note.ID = doc.ID.Hex()
	return nil
}

// GetByID retrieves a note within its folder
func (r *MongoNoteRepository) GetByID(ctx context.Context, folderID, id string) (*models.Note, error) {
	filter, ok := scopedFilter(folderID, id)
	if !ok {
		return nil, domain.NewNotFoundError("note", id)
	}

	var doc noteDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFoundError("note", id)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	note := doc.toModel()
	return &note, nil
}

// ListByFolder lists a folder's notes, most recently updated first
func (r *MongoNoteRepository) ListByFolder(ctx context.Context, folderID string) ([]models.Note, error) {
	folderOID, ok := parseID(folderID)
	if !ok {
		return []models.Note{}, nil
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "updatedAt", Value: -1},
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := r.coll.Find(ctx, bson.M{"folder": folderOID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	var docs []noteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	notes := make([]models.Note, 0, len(docs))
	for i := range docs {
		notes = append(notes, docs[i].toModel())
	}
	return notes, nil
}

// Update updates a note's title and content
func (r *MongoNoteRepository) Update(ctx context.Context, note *models.Note) error {
	filter, ok := scopedFilter(note.FolderID, note.ID)
	if !ok {
		return domain.NewNotFoundError("note", note.ID)
	}
	note.UpdatedAt = bsonTime(note.UpdatedAt)

	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"title":     note.Title,
		"content":   note.Content,
		"updatedAt": note.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}

	if result.MatchedCount == 0 {
		return domain.NewNotFoundError("note", note.ID)
	}
	return nil
}

// Delete deletes a note within its folder
func (r *MongoNoteRepository) Delete(ctx context.Context, folderID, id string) error {
	filter, ok := scopedFilter(folderID, id)
	if !ok {
		return domain.NewNotFoundError("note", id)
	}

	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if result.DeletedCount == 0 {
		return domain.NewNotFoundError("note", id)
	}
	return nil
}

// DeleteByFolder deletes every note in a folder
func (r *MongoNoteRepository) DeleteByFolder(ctx context.Context, folderID string) (int64, error) {
	folderOID, ok := parseID(folderID)
	if !ok {
		return 0, nil
	}

	result, err := r.coll.DeleteMany(ctx, bson.M{"folder": folderOID})
	if err != nil {
		return 0, fmt.Errorf("delete notes in folder: %w", err)
	}
	return result.DeletedCount, nil
}
