package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mazeDocument is the BSON form of a maze record. Rows are stored as strings.
type mazeDocument struct {
	ID          string           `bson:"_id"`
	AuthorID    string           `bson:"authorId,omitempty"`
	Name        string           `bson:"name"`
	Width       int              `bson:"width"`
	Height      int              `bson:"height"`
	PlayerStart maze.PlayerStart `bson:"playerStart"`
	Exit        maze.Position    `bson:"exit"`
	Rows        []string         `bson:"rows,omitempty"`
	Procedural  bool             `bson:"procedural"`
	UpdatedAt   time.Time        `bson:"updatedAt"`
}

func newMazeDocument(r *maze.Record) *mazeDocument {
	doc := &mazeDocument{
		ID:          r.ID.String(),
		Name:        r.Name,
		Width:       r.Width,
		Height:      r.Height,
		PlayerStart: r.PlayerStart,
		Exit:        r.Exit,
		Procedural:  r.Layout.Procedural,
		UpdatedAt:   time.Now().UTC(),
	}
	if r.AuthorID != uuid.Nil {
		doc.AuthorID = r.AuthorID.String()
	}
	if !r.Layout.Procedural {
		doc.Rows = r.Layout.Strings()
	}
	return doc
}

func (d *mazeDocument) record() (*maze.Record, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("stored maze id %q: %w", d.ID, err)
	}
	r := &maze.Record{
		ID:          id,
		Name:        d.Name,
		Width:       d.Width,
		Height:      d.Height,
		PlayerStart: d.PlayerStart,
		Exit:        d.Exit,
		Layout:      maze.Layout{Procedural: d.Procedural},
	}
	if d.AuthorID != "" {
		if r.AuthorID, err = uuid.Parse(d.AuthorID); err != nil {
			return nil, fmt.Errorf("stored author id %q: %w", d.AuthorID, err)
		}
	}
	if !d.Procedural {
		if r.Layout.Rows, err = maze.ParseRows(d.Rows); err != nil {
			return nil, fmt.Errorf("stored maze %s: %w", d.ID, err)
		}
	}
	return r, nil
}

// MazeRepo handles the persistence of maze records.
type MazeRepo struct {
	collection *mongo.Collection
}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	return &MazeRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Save inserts a maze or replaces the stored copy with the same ID.
func (m *MazeRepo) Save(ctx context.Context, record *maze.Record) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	doc := newMazeDocument(record)
	opts := options.Replace().SetUpsert(true)
	if _, err := m.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("saving maze: %w", err)
	}
	return nil
}

// ByID retrieves a maze by its ID.
func (m *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*maze.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var doc mazeDocument
	if err := m.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, maze.ErrNotFound
		}
		return nil, fmt.Errorf("finding maze: %w", err)
	}
	return doc.record()
}

// List returns up to limit mazes ordered by name.
func (m *MazeRepo) List(ctx context.Context, limit int) ([]*maze.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetLimit(int64(limit))
	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing mazes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mazeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding mazes: %w", err)
	}

	records := make([]*maze.Record, 0, len(docs))
	for i := range docs {
		r, err := docs[i].record()
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}
