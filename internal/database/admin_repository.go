package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bureaunet/directory-backend/internal/models"
)

// AdminRepository handles admin account database operations
type AdminRepository struct {
	db DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// List returns every admin row
func (r *AdminRepository) List(ctx context.Context) ([]models.Admin, error) {
	admins := []models.Admin{}

	query := `SELECT id, email, password FROM admin ORDER BY id`

	if err := r.db.SelectContext(ctx, &admins, query); err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	return admins, nil
}

// GetByEmail retrieves an admin by email; returns nil, nil when none matches
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin

	query := `SELECT id, email, password FROM admin WHERE email = $1 LIMIT 1`

	err := r.db.GetContext(ctx, &admin, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return &admin, nil
}

// Create inserts an admin account with an already hashed password
func (r *AdminRepository) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	var id int64

	query := `INSERT INTO admin (email, password) VALUES ($1, $2) RETURNING id`

	if err := r.db.QueryRowxContext(ctx, query, email, passwordHash).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create admin: %w", err)
	}

	return id, nil
}
