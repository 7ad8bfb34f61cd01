package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"newsbrief/config"
	"newsbrief/types"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS articles (
	url        TEXT PRIMARY KEY,
	summary    TEXT NOT NULL,
	image      TEXT,
	title      TEXT NOT NULL DEFAULT '',
	link       TEXT NOT NULL,
	model      TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	seq        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_seq ON articles(seq DESC);
`

// SQLite stores summaries in a single local database file.
type SQLite struct {
	db   *sql.DB
	path string
}

// NewSQLite opens or creates the database at path and ensures the schema exists.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrap(config.BackendSQLite, "open", err)
	}
	// one writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close() // Close error less important than schema error
		return nil, wrap(config.BackendSQLite, "init schema", err)
	}
	return &SQLite{db: db, path: path}, nil
}

// Path returns the database file path
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) Upsert(ctx context.Context, a *types.ArticleSummary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (url, summary, image, title, link, model, created_at, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM articles))
		ON CONFLICT(url) DO UPDATE SET
			summary = excluded.summary,
			image = excluded.image,
			title = excluded.title,
			link = excluded.link,
			model = excluded.model,
			created_at = excluded.created_at,
			seq = excluded.seq`,
		a.URL, a.Summary, a.Image, a.Title, a.Link, a.Model, a.CreatedAt.UnixMicro(),
	)
	return wrap(config.BackendSQLite, "upsert", err)
}

const sqliteColumns = `url, summary, image, title, link, model, created_at`

// List orders by seq, which every write bumps, so ties in created_at
// still come back in reverse write order.
func (s *SQLite) List(ctx context.Context) ([]types.ArticleSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sqliteColumns+` FROM articles ORDER BY seq DESC`)
	if err != nil {
		return nil, wrap(config.BackendSQLite, "list", err)
	}
	defer rows.Close()

	articles := []types.ArticleSummary{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, wrap(config.BackendSQLite, "scan", err)
		}
		articles = append(articles, *a)
	}
	return articles, wrap(config.BackendSQLite, "list", rows.Err())
}

func (s *SQLite) Delete(ctx context.Context, url string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE url = ?`, url)
	if err != nil {
		return false, wrap(config.BackendSQLite, "delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrap(config.BackendSQLite, "delete", err)
	}
	return n > 0, nil
}

func (s *SQLite) Get(ctx context.Context, url string) (*types.ArticleSummary, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sqliteColumns+` FROM articles WHERE url = ?`, url)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wrap(config.BackendSQLite, "get", ErrNotFound)
	}
	if err != nil {
		return nil, wrap(config.BackendSQLite, "get", err)
	}
	return a, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return wrap(config.BackendSQLite, "ping", s.db.PingContext(ctx))
}

func (s *SQLite) Close(context.Context) error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*types.ArticleSummary, error) {
	var (
		a       types.ArticleSummary
		image   sql.NullString
		created int64
	)
	if err := row.Scan(&a.URL, &a.Summary, &image, &a.Title, &a.Link, &a.Model, &created); err != nil {
		return nil, err
	}
	if image.Valid {
		a.Image = types.StringPtr(image.String)
	}
	a.CreatedAt = time.UnixMicro(created).UTC()
	return &a, nil
}
