package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bureaunet/directory-backend/internal/models"
)

const distributorColumns = `id, full_name, email, mobile_number, password, created_at,
	location, payment_status, company_name`

// DistributorRepository handles database operations for distributor profiles
type DistributorRepository struct {
	db DB
}

// NewDistributorRepository creates a new distributor repository
func NewDistributorRepository(db DB) *DistributorRepository {
	return &DistributorRepository{db: db}
}

// List returns every distributor profile
func (r *DistributorRepository) List(ctx context.Context) ([]models.Distributor, error) {
	distributors := []models.Distributor{}

	query := `SELECT ` + distributorColumns + ` FROM distributor_profiles ORDER BY id`

	if err := r.db.SelectContext(ctx, &distributors, query); err != nil {
		return nil, fmt.Errorf("failed to list distributors: %w", err)
	}

	return distributors, nil
}

// GetByEmail retrieves a distributor by email; returns nil, nil when none matches
func (r *DistributorRepository) GetByEmail(ctx context.Context, email string) (*models.Distributor, error) {
	var distributor models.Distributor

	query := `SELECT ` + distributorColumns + ` FROM distributor_profiles WHERE email = $1 ORDER BY id LIMIT 1`

	err := r.db.GetContext(ctx, &distributor, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get distributor: %w", err)
	}

	return &distributor, nil
}

// ExistsByEmailOrMobile reports whether any distributor already uses the email or mobile number
func (r *DistributorRepository) ExistsByEmailOrMobile(ctx context.Context, email, mobileNumber string) (bool, error) {
	var exists bool

	query := `
		SELECT EXISTS (
			SELECT 1 FROM distributor_profiles
			WHERE email = $1 OR mobile_number = $2
		)
	`

	if err := r.db.QueryRowxContext(ctx, query, email, mobileNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing distributor: %w", err)
	}

	return exists, nil
}

// Create inserts a distributor profile and returns its generated id
func (r *DistributorRepository) Create(ctx context.Context, d *models.Distributor) (int64, error) {
	query := `
		INSERT INTO distributor_profiles (
			full_name, email, mobile_number, password, created_at,
			location, payment_status, company_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query,
		d.FullName,
		d.Email,
		d.MobileNumber,
		d.PasswordHash,
		d.CreatedAt,
		d.Location,
		d.PaymentStatus,
		d.CompanyName,
	).Scan(&d.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to create distributor: %w", err)
	}

	return d.ID, nil
}

// AddDocument records the path of a file uploaded for a distributor
func (r *DistributorRepository) AddDocument(ctx context.Context, distributorID int64, filePath string) error {
	query := `INSERT INTO distributor_documents (distributor_id, file_path) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, distributorID, filePath); err != nil {
		return fmt.Errorf("failed to save distributor document: %w", err)
	}

	return nil
}
