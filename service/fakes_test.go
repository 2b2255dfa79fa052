package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

type memMazeRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]maze.Record
	saves   int
}

func newMemMazeRepo() *memMazeRepo {
	return &memMazeRepo{records: make(map[uuid.UUID]maze.Record)}
}

func (r *memMazeRepo) Save(_ context.Context, record *maze.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = *record
	r.saves++
	return nil
}

func (r *memMazeRepo) ByID(_ context.Context, id uuid.UUID) (*maze.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, maze.ErrNotFound
	}
	return &record, nil
}

func (r *memMazeRepo) List(_ context.Context, limit int) ([]*maze.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*maze.Record, 0, len(r.records))
	for _, record := range r.records {
		record := record
		out = append(out, &record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memCache struct {
	records map[uuid.UUID]*maze.Record
	gets    int
}

func newMemCache() *memCache {
	return &memCache{records: make(map[uuid.UUID]*maze.Record)}
}

func (c *memCache) Get(_ context.Context, id uuid.UUID) (*maze.Record, error) {
	c.gets++
	record, ok := c.records[id]
	if !ok {
		return nil, maze.ErrNotFound
	}
	return record, nil
}

func (c *memCache) Set(_ context.Context, record *maze.Record) error {
	c.records[record.ID] = record
	return nil
}

func (c *memCache) Delete(_ context.Context, id uuid.UUID) error {
	delete(c.records, id)
	return nil
}

type memAuthorRepo struct {
	authors map[string]*identity.Author
}

func newMemAuthorRepo() *memAuthorRepo {
	return &memAuthorRepo{authors: make(map[string]*identity.Author)}
}

func (r *memAuthorRepo) Save(_ context.Context, author *identity.Author) error {
	if existing, ok := r.authors[author.Username]; ok && existing.ID != author.ID {
		return identity.ErrUsernameConflict
	}
	r.authors[author.Username] = author
	return nil
}

func (r *memAuthorRepo) ByID(_ context.Context, id uuid.UUID) (*identity.Author, error) {
	for _, a := range r.authors {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, identity.ErrAuthorNotFound
}

func (r *memAuthorRepo) ByUsername(_ context.Context, username string) (*identity.Author, error) {
	a, ok := r.authors[username]
	if !ok {
		return nil, identity.ErrAuthorNotFound
	}
	return a, nil
}

type stubTokenizer struct{}

func (stubTokenizer) Generate(author *identity.Author, ttl time.Duration) (string, error) {
	return "token-" + author.Username, nil
}

func (stubTokenizer) Decode(token string) (*identity.Claims, error) {
	return &identity.Claims{}, nil
}

type recordingLogger struct {
	mu       sync.Mutex
	infos    []string
	warnings []string
	errors   []string
}

func (l *recordingLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, msg)
}

func (l *recordingLogger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}
