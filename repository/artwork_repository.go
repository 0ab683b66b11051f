package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"mockup-studio/db"
	"mockup-studio/models"
)

// ArtworkRepository handles database operations for the synced artwork
// library. Implements ArtworkRepositoryInterface.
type ArtworkRepository struct{}

// NewArtworkRepository creates a new ArtworkRepository
func NewArtworkRepository() *ArtworkRepository {
	return &ArtworkRepository{}
}

var _ ArtworkRepositoryInterface = (*ArtworkRepository)(nil)

// ErrArtworkNotFound marks an artwork lookup miss
var ErrArtworkNotFound = fmt.Errorf("artwork not found")

// ExistsByDriveFileID checks if an artwork asset was already synced
func (r *ArtworkRepository) ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM artwork_assets WHERE drive_file_id = $1)`
	err := db.DB.QueryRowContext(ctx, query, driveFileID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}

// Insert adds a newly discovered artwork file. Conflicting drive_file_id is
// a no-op so re-syncs are idempotent.
func (r *ArtworkRepository) Insert(ctx context.Context, file *models.ArtworkFile) error {
	query := `
		INSERT INTO artwork_assets (drive_file_id, display_name, image_url, is_active, created_at)
		VALUES ($1, $2, $3, true, $4)
		ON CONFLICT (drive_file_id) DO NOTHING
	`
	result, err := db.DB.ExecContext(ctx, query, file.DriveFileID, file.DisplayName, file.ImageURL, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert artwork asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("⚠️  Warning: Could not get rows affected: %v", err)
	}
	if rowsAffected > 0 {
		log.Printf("💾 Inserted artwork asset (drive_file_id: %s, name: %s)", file.DriveFileID, file.DisplayName)
	}
	return nil
}

// List returns all active artwork assets, newest first
func (r *ArtworkRepository) List(ctx context.Context) ([]models.ArtworkAsset, error) {
	rows, err := db.DB.QueryContext(ctx, `
		SELECT id, drive_file_id, display_name, image_url, is_active, created_at
		FROM artwork_assets
		WHERE is_active = true
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list artwork assets: %w", err)
	}
	defer rows.Close()

	var out []models.ArtworkAsset
	for rows.Next() {
		var a models.ArtworkAsset
		var createdAt time.Time
		if err := rows.Scan(&a.ID, &a.DriveFileID, &a.DisplayName, &a.ImageURL, &a.IsActive, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan artwork asset: %w", err)
		}
		a.CreatedAt = createdAt.Format(time.RFC3339)
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetByID returns one artwork asset
func (r *ArtworkRepository) GetByID(ctx context.Context, id int64) (*models.ArtworkAsset, error) {
	var a models.ArtworkAsset
	var createdAt time.Time
	err := db.DB.QueryRowContext(ctx, `
		SELECT id, drive_file_id, display_name, image_url, is_active, created_at
		FROM artwork_assets
		WHERE id = $1
	`, id).Scan(&a.ID, &a.DriveFileID, &a.DisplayName, &a.ImageURL, &a.IsActive, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrArtworkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artwork asset: %w", err)
	}
	a.CreatedAt = createdAt.Format(time.RFC3339)
	return &a, nil
}
