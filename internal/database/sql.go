package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/sylee21c/wat2watch/internal/config"
)

// Open connects to the shared store using the configured driver.
func Open(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Driver == "sqlite3" {
		// A single connection avoids SQLITE_BUSY between in-process writers;
		// cross-process writers are covered by the busy timeout in the DSN.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
	}

	slog.Info("connected to database", "driver", cfg.Driver)
	return db, nil
}

// Migrate creates the shared schema if it does not exist. The account service
// owns schema bootstrap for both tables; the rating service never calls this.
func Migrate(db *sql.DB, driver string) error {
	migrations := sqliteMigrations
	if driver == "postgres" {
		migrations = postgresMigrations
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database schema ready", "driver", driver)
	return nil
}

var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		password TEXT NOT NULL,
		name TEXT,
		subscribed_ott TEXT,
		favorite_genres TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		"userId" TEXT NOT NULL,
		"contentId" TEXT NOT NULL,
		rating REAL NOT NULL,
		comment TEXT,
		"timestamp" TEXT,
		FOREIGN KEY ("userId") REFERENCES users(id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_ratings_user_content ON ratings("userId", "contentId")`,
}

var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		password TEXT NOT NULL,
		name TEXT,
		subscribed_ott TEXT,
		favorite_genres TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id SERIAL PRIMARY KEY,
		"userId" TEXT NOT NULL REFERENCES users(id),
		"contentId" TEXT NOT NULL,
		rating DOUBLE PRECISION NOT NULL,
		comment TEXT,
		"timestamp" TEXT
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_ratings_user_content ON ratings("userId", "contentId")`,
}

// IsUniqueViolation reports whether err is a unique-constraint violation from
// either supported driver.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
