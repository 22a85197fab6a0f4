package database

import (
	"context"
	"fmt"

	"github.com/bureaunet/directory-backend/internal/models"
)

// Image tables share one shape; the table name never comes from user input.
const (
	SliderImagesTable  = "slider_images"
	GalleryImagesTable = "gallery_images"
)

// ImageRepository handles one per-bureau image collection
type ImageRepository struct {
	db    DB
	table string
}

// NewSliderImageRepository creates a repository over slider_images
func NewSliderImageRepository(db DB) *ImageRepository {
	return &ImageRepository{db: db, table: SliderImagesTable}
}

// NewGalleryImageRepository creates a repository over gallery_images
func NewGalleryImageRepository(db DB) *ImageRepository {
	return &ImageRepository{db: db, table: GalleryImagesTable}
}

// Table returns the backing table name
func (r *ImageRepository) Table() string {
	return r.table
}

// Add inserts one image row for a bureau. Returns ErrNotFound when no bureau
// carries bureauID.
func (r *ImageRepository) Add(ctx context.Context, bureauID, imageURL string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (bureau_id, image_url)
		SELECT $1, $2
		WHERE EXISTS (SELECT 1 FROM bureau_profiles WHERE bureau_id = $1)
	`, r.table)

	result, err := r.db.ExecContext(ctx, query, bureauID, imageURL)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", r.table, err)
	}

	return rowsAffected(result)
}

// ListByBureau returns every image of a bureau
func (r *ImageRepository) ListByBureau(ctx context.Context, bureauID string) ([]models.Image, error) {
	images := []models.Image{}

	query := fmt.Sprintf(`SELECT image_url, id FROM %s WHERE bureau_id = $1 ORDER BY id`, r.table)

	if err := r.db.SelectContext(ctx, &images, query, bureauID); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}

	return images, nil
}

// Delete removes one image by its own id. Returns ErrNotFound when no row matched.
func (r *ImageRepository) Delete(ctx context.Context, imageID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)

	result, err := r.db.ExecContext(ctx, query, imageID)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", r.table, err)
	}

	return rowsAffected(result)
}
