package repository

import (
	"context"
	"database/sql"

	"github.com/openfab/reservation-server/internal/model"
)

// AdminRepo provides access to the admins table. The service hosts exactly
// one seeded administrator account, so the surface is a lookup plus an
// insert-if-absent used by the startup bootstrap.
type AdminRepo struct {
	db *sql.DB
}

// NewAdminRepo returns a new AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// GetByUsername returns the admin account for the given username or
// ErrNotFound when no such account exists.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	const q = `SELECT id, username, password_hash, created_at FROM admins WHERE username = ?`
	var a model.Admin
	err := r.db.QueryRowContext(ctx, q, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new admin account. The username carries a uniqueness
// constraint, so a concurrent seed attempt surfaces as a driver error that
// EnsureAdmin treats as already-present.
func (r *AdminRepo) Create(ctx context.Context, username, passwordHash string) error {
	const q = `INSERT INTO admins (username, password_hash) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, username, passwordHash)
	return err
}
