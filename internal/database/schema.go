// internal/database/schema.go
package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Statements are kept portable between PostgreSQL and SQLite: ids are UUID
// strings generated in Go, timestamps are set in Go.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		mail          TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		state       TEXT NOT NULL,
		priority    TEXT NOT NULL,
		owner_id    TEXT REFERENCES users(id),
		executor_id TEXT REFERENCES users(id),
		created_at  TIMESTAMP NOT NULL,
		updated_at  TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT PRIMARY KEY,
		task_id    TEXT NOT NULL REFERENCES tasks(id),
		author_id  TEXT NOT NULL REFERENCES users(id),
		text       TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_executor ON tasks(executor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_task ON comments(task_id)`,
}

// Migrate creates the schema if it does not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}
	return nil
}
