// Package store persists article summaries keyed by URL. Every backend keeps
// at most one record per URL and lists records newest first.
package store

import (
	"context"
	"errors"
	"fmt"

	"newsbrief/config"
	"newsbrief/types"
)

// ErrNotFound is returned by Get when no record exists for the URL.
var ErrNotFound = errors.New("article not found")

type Store interface {
	// Upsert inserts the summary or replaces the existing record for its URL.
	Upsert(ctx context.Context, a *types.ArticleSummary) error
	// List returns every stored summary, most recently stored first.
	List(ctx context.Context) ([]types.ArticleSummary, error)
	// Delete removes the record for url and reports whether one existed.
	Delete(ctx context.Context, url string) (bool, error)
	Get(ctx context.Context, url string) (*types.ArticleSummary, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// StorageError wraps a backend failure with the operation that caused it.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func wrap(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Backend: backend, Op: op, Err: err}
}

// New opens the backend selected by cfg.Backend.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		return NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.BackendRedis:
		return NewRedis(ctx, cfg.RedisURL)
	case config.BackendSQLite:
		return NewSQLite(ctx, cfg.SQLitePath)
	case config.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
