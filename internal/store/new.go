package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/blogflow/internal/logger"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	created_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS articles (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id           INTEGER NOT NULL REFERENCES users(id),
	source_video_title TEXT NOT NULL,
	source_video_link  TEXT NOT NULL,
	generated_content  TEXT NOT NULL,
	created_at         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_owner ON articles(owner_id, created_at);

CREATE TABLE IF NOT EXISTS revoked_sessions (
	id         TEXT PRIMARY KEY,
	expires_at INTEGER NOT NULL
);
`

type implStore struct {
	db     *sql.DB
	logger logger.Logger
}

// New opens (creating if needed) the sqlite database at path and applies the schema.
func New(ctx context.Context, path string, log logger.Logger) (Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	log.Debug(ctx, "Database ready: %s", path)
	return &implStore{db: db, logger: log}, nil
}

func (s *implStore) Close() error {
	return s.db.Close()
}
