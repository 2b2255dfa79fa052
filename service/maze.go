package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/validation"
	"github.com/google/uuid"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

var (
	ErrInvalidMaze      = errors.New("maze record is invalid")
	ErrGenerationDefect = errors.New("generated maze is not solvable")
)

// MazeConfig holds the collaborators of a Maze service.
type MazeConfig struct {
	Repo      i.MazeRepo
	Cache     i.MazeCache // Optional
	Locker    i.Locker    // Optional; an in-process lock is used when nil
	Generator *maze.Generator
	Logger    i.Logger

	DefaultWidth  int
	DefaultHeight int
}

// Maze generates, validates and serves maze records.
// Implements i.MazeService.
type Maze struct {
	repo      i.MazeRepo
	cache     i.MazeCache
	locker    i.Locker
	generator *maze.Generator
	logger    i.Logger

	defaultWidth  int
	defaultHeight int
}

// NewMazeService creates a Maze service from cfg.
func NewMazeService(cfg MazeConfig) (*Maze, error) {
	if cfg.Repo == nil || cfg.Logger == nil {
		return nil, errors.New("maze service needs a repository and a logger")
	}
	if cfg.Generator == nil {
		cfg.Generator = maze.NewGenerator(&maze.Options{Logger: cfg.Logger})
	}
	if cfg.Locker == nil {
		cfg.Locker = newLocalLocker()
	}

	return &Maze{
		repo:          cfg.Repo,
		cache:         cfg.Cache,
		locker:        cfg.Locker,
		generator:     cfg.Generator,
		logger:        cfg.Logger,
		defaultWidth:  cfg.DefaultWidth,
		defaultHeight: cfg.DefaultHeight,
	}, nil
}

// Generate builds a new maze. A zero width or height selects the configured default.
func (s *Maze) Generate(ctx context.Context, name string, width, height int, persist bool) (*maze.Record, error) {
	if width == 0 {
		width = s.defaultWidth
	}
	if height == 0 {
		height = s.defaultHeight
	}

	m, err := s.generator.Generate(width, height)
	if err != nil {
		return nil, err
	}
	if err := validation.CheckSolvable(m.Grid); err != nil {
		s.logger.Error(fmt.Sprintf("Generated %dx%d maze failed the solvability check: %v", width, height, err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationDefect, err)
	}

	if name == "" {
		name = fmt.Sprintf("maze-%dx%d", width, height)
	}
	record := maze.NewRecord(name, m)

	if !persist {
		return record, nil
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.cacheRecord(ctx, record)
	s.logger.Info(fmt.Sprintf("Maze generated: ID=%s Size=%dx%d", record.ID, width, height))
	return record, nil
}

// Submit validates data and saves it as a new record owned by authorID.
// Procedural placeholders are accepted; concrete layouts must be solvable.
func (s *Maze) Submit(ctx context.Context, data []byte, label string, authorID uuid.UUID) (*maze.Record, validation.Result, error) {
	result := validation.ValidateTemplateJSON(data, label)
	if !result.Success {
		return nil, result, ErrInvalidMaze
	}

	var record maze.Record
	if err := json.Unmarshal(data, &record); err != nil {
		result = reject(result, fmt.Sprintf("decode maze record: %v", err))
		return nil, result, ErrInvalidMaze
	}

	if record.Layout.Procedural {
		if err := s.generator.CheckDimensions(record.Width, record.Height); err != nil {
			return nil, reject(result, err.Error()), ErrInvalidMaze
		}
	} else {
		m, err := record.Maze()
		if err != nil {
			return nil, reject(result, err.Error()), ErrInvalidMaze
		}
		if err := validation.CheckSolvable(m.Grid); err != nil {
			return nil, reject(result, err.Error()), ErrInvalidMaze
		}
	}

	record.ID = uuid.New()
	record.AuthorID = authorID
	if strings.TrimSpace(record.Name) == "" {
		record.Name = label
	}

	if err := s.repo.Save(ctx, &record); err != nil {
		return nil, result, err
	}
	s.logger.Info(fmt.Sprintf("Maze submitted: ID=%s Author=%s Procedural=%t", record.ID, authorID, record.Layout.Procedural))
	return &record, result, nil
}

// Get returns a playable record. A procedural layout is generated once, under
// a lock, and the result is stored so every later reader sees the same grid.
func (s *Maze) Get(ctx context.Context, id uuid.UUID) (*maze.Record, error) {
	if record, ok := s.cached(ctx, id); ok {
		return record, nil
	}

	record, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Layout.Procedural {
		return s.materialize(ctx, id)
	}

	s.cacheRecord(ctx, record)
	return record, nil
}

func (s *Maze) materialize(ctx context.Context, id uuid.UUID) (*maze.Record, error) {
	unlock, err := s.locker.Lock(ctx, "materialize:"+id.String())
	if err != nil {
		return nil, fmt.Errorf("lock maze %s: %w", id, err)
	}
	defer func() {
		if err := unlock(); err != nil {
			s.logger.Warning(fmt.Sprintf("Releasing lock for maze %s: %v", id, err))
		}
	}()

	// Another holder may have finished while we waited.
	record, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.Layout.Procedural {
		s.cacheRecord(ctx, record)
		return record, nil
	}

	if err := record.Materialize(s.generator); err != nil {
		return nil, err
	}
	if err := validation.CheckSolvable(record.Layout.Rows); err != nil {
		s.logger.Error(fmt.Sprintf("Materialized maze %s failed the solvability check: %v", id, err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationDefect, err)
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.cacheRecord(ctx, record)
	s.logger.Info(fmt.Sprintf("Maze materialized: ID=%s Size=%dx%d", id, record.Width, record.Height))
	return record, nil
}

// List returns up to limit records. Non-positive limits select the default.
func (s *Maze) List(ctx context.Context, limit int) ([]*maze.Record, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, min(limit, maxListLimit))
}

// Validate runs the structural and solvability checks on data.
func (s *Maze) Validate(data []byte, label string) validation.Result {
	return validation.Check(data, label)
}

func (s *Maze) cached(ctx context.Context, id uuid.UUID) (*maze.Record, bool) {
	if s.cache == nil {
		return nil, false
	}
	record, err := s.cache.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, maze.ErrNotFound) {
			s.logger.Warning(fmt.Sprintf("Reading maze %s from cache: %v", id, err))
		}
		return nil, false
	}
	if record.Layout.Procedural {
		// Only playable records belong in the cache.
		_ = s.cache.Delete(ctx, id)
		return nil, false
	}
	return record, true
}

func (s *Maze) cacheRecord(ctx context.Context, record *maze.Record) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, record); err != nil {
		s.logger.Warning(fmt.Sprintf("Caching maze %s: %v", record.ID, err))
	}
}

func reject(r validation.Result, msg string) validation.Result {
	r.Errors = append(r.Errors, msg)
	r.Success = false
	return r
}
