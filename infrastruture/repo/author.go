package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type authorDocument struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

func (d *authorDocument) author() (*identity.Author, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("stored author id %q: %w", d.ID, err)
	}
	return &identity.Author{
		ID:           id,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}, nil
}

// AuthorRepo handles the persistence of maze authors.
type AuthorRepo struct {
	collection *mongo.Collection
}

// NewAuthorRepo creates a new AuthorRepo with the given MongoDB client, database name, and collection name.
func NewAuthorRepo(client *mongo.Client, dbName, collectionName string) *AuthorRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &AuthorRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the unique username index.
func (a *AuthorRepo) EnsureIndexes(ctx context.Context) error {
	_, err := a.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Save inserts or updates an author in the repository.
// If the author already exists, it updates the existing record.
func (a *AuthorRepo) Save(ctx context.Context, author *identity.Author) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	filter := bson.M{"_id": author.ID.String()}
	update := bson.M{
		"$set": bson.M{
			"username":     author.Username,
			"passwordHash": author.PasswordHash,
			"updatedAt":    time.Now(),
		},
		"$setOnInsert": bson.M{
			"createdAt": author.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := a.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return identity.ErrUsernameConflict
		}
		return fmt.Errorf("saving author: %w", err)
	}

	return nil
}

// ByID retrieves an author by their ID.
func (a *AuthorRepo) ByID(ctx context.Context, id uuid.UUID) (*identity.Author, error) {
	return a.findOne(ctx, bson.M{"_id": id.String()})
}

// ByUsername retrieves an author by their username.
func (a *AuthorRepo) ByUsername(ctx context.Context, username string) (*identity.Author, error) {
	return a.findOne(ctx, bson.M{"username": username})
}

func (a *AuthorRepo) findOne(ctx context.Context, filter bson.M) (*identity.Author, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var doc authorDocument
	if err := a.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, identity.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("finding author: %w", err)
	}
	return doc.author()
}
