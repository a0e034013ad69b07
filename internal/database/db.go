package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the two tables the service owns when they do not
// exist yet. Statements are idempotent so repeated startups are safe.
// Spaces are stored as a JSON array; created_at defaults to the server
// clock so timestamps are assigned by the store, never by callers.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reservations (
			id          CHAR(36) PRIMARY KEY,
			name        VARCHAR(255) NOT NULL,
			institution VARCHAR(255) NOT NULL DEFAULT '',
			phone       VARCHAR(64)  NOT NULL DEFAULT '',
			email       VARCHAR(255) NOT NULL,
			date        VARCHAR(32)  NOT NULL,
			start_hour  INT NOT NULL,
			end_hour    INT NOT NULL,
			spaces      JSON NOT NULL,
			note        TEXT,
			suggestion  TEXT,
			status      ENUM('pending','approved','denied') NOT NULL DEFAULT 'pending',
			created_at  TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
			INDEX idx_reservations_status (status),
			INDEX idx_reservations_created_at (created_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS admins (
			id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			username      VARCHAR(64) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
