package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bureaunet/directory-backend/internal/models"
)

const bureauColumns = `id, bureau_id, bureau_name, mobile_number, about, location, email,
	owner_name, payment_status, distributor_id, password, created_at, welcome_image_banner`

// BureauRepository handles database operations for bureau profiles
type BureauRepository struct {
	db DB
}

// NewBureauRepository creates a new bureau repository
func NewBureauRepository(db DB) *BureauRepository {
	return &BureauRepository{db: db}
}

// List returns every bureau profile
func (r *BureauRepository) List(ctx context.Context) ([]models.Bureau, error) {
	return r.selectBureaus(ctx, `SELECT `+bureauColumns+` FROM bureau_profiles ORDER BY id`)
}

// ListByDistributor returns the bureaus registered under a distributor
func (r *BureauRepository) ListByDistributor(ctx context.Context, distributorID string) ([]models.Bureau, error) {
	return r.selectBureaus(ctx,
		`SELECT `+bureauColumns+` FROM bureau_profiles WHERE distributor_id = $1 ORDER BY id`,
		distributorID)
}

// ListByBureauID returns the bureaus carrying a public bureau id.
// Ids are not unique in the store, so this is a list.
func (r *BureauRepository) ListByBureauID(ctx context.Context, bureauID string) ([]models.Bureau, error) {
	return r.selectBureaus(ctx,
		`SELECT `+bureauColumns+` FROM bureau_profiles WHERE bureau_id = $1 ORDER BY id`,
		bureauID)
}

func (r *BureauRepository) selectBureaus(ctx context.Context, query string, args ...interface{}) ([]models.Bureau, error) {
	bureaus := []models.Bureau{}

	if err := r.db.SelectContext(ctx, &bureaus, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bureaus: %w", err)
	}

	return bureaus, nil
}

// GetByEmail retrieves a bureau by email; returns nil, nil when none matches
func (r *BureauRepository) GetByEmail(ctx context.Context, email string) (*models.Bureau, error) {
	var bureau models.Bureau

	query := `SELECT ` + bureauColumns + ` FROM bureau_profiles WHERE email = $1 ORDER BY id LIMIT 1`

	err := r.db.GetContext(ctx, &bureau, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bureau: %w", err)
	}

	return &bureau, nil
}

// ExistsByEmailOrMobile reports whether any bureau already uses the email or mobile number
func (r *BureauRepository) ExistsByEmailOrMobile(ctx context.Context, email, mobileNumber string) (bool, error) {
	var exists bool

	query := `
		SELECT EXISTS (
			SELECT 1 FROM bureau_profiles
			WHERE email = $1 OR mobile_number = $2
		)
	`

	if err := r.db.QueryRowxContext(ctx, query, email, mobileNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing bureau: %w", err)
	}

	return exists, nil
}

// Create inserts a bureau profile and returns its store-generated key
func (r *BureauRepository) Create(ctx context.Context, b *models.Bureau) (int64, error) {
	query := `
		INSERT INTO bureau_profiles (
			bureau_id, bureau_name, mobile_number, about, location, email,
			owner_name, payment_status, distributor_id, password, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query,
		b.BureauID,
		b.BureauName,
		b.MobileNumber,
		b.About,
		b.Location,
		b.Email,
		b.OwnerName,
		b.PaymentStatus,
		b.DistributorID,
		b.PasswordHash,
		b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to create bureau: %w", err)
	}

	return b.ID, nil
}

// AddDocument records the path of a file uploaded for a bureau.
// bureauKey is the store-generated id, not the public bureau id.
func (r *BureauRepository) AddDocument(ctx context.Context, bureauKey int64, filePath string) error {
	query := `INSERT INTO bureau_documents (bureau_id, file_path) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, bureauKey, filePath); err != nil {
		return fmt.Errorf("failed to save bureau document: %w", err)
	}

	return nil
}

// Update applies a sparse update to the bureau with the given public id.
// Returns ErrNotFound when no row matched.
func (r *BureauRepository) Update(ctx context.Context, bureauID string, update models.BureauUpdate) error {
	var (
		sets []string
		args []interface{}
	)

	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	add("bureau_name", update.BureauName)
	add("mobile_number", update.MobileNumber)
	add("about", update.About)
	add("location", update.Location)

	if len(sets) == 0 {
		return fmt.Errorf("no fields to update")
	}

	args = append(args, bureauID)
	query := fmt.Sprintf(`UPDATE bureau_profiles SET %s WHERE bureau_id = $%d`, strings.Join(sets, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update bureau: %w", err)
	}

	return rowsAffected(result)
}

// UpdateWelcomeBanner sets the welcome banner image path.
// Returns ErrNotFound when no row matched.
func (r *BureauRepository) UpdateWelcomeBanner(ctx context.Context, bureauID, imageURL string) error {
	query := `UPDATE bureau_profiles SET welcome_image_banner = $1 WHERE bureau_id = $2`

	result, err := r.db.ExecContext(ctx, query, imageURL, bureauID)
	if err != nil {
		return fmt.Errorf("failed to update welcome banner: %w", err)
	}

	return rowsAffected(result)
}
