package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"mockup-studio/db"
	"mockup-studio/models"
)

// CompositionRepository handles database operations for saved designs.
// Implements CompositionRepositoryInterface.
type CompositionRepository struct{}

// NewCompositionRepository creates a new CompositionRepository
func NewCompositionRepository() *CompositionRepository {
	return &CompositionRepository{}
}

var _ CompositionRepositoryInterface = (*CompositionRepository)(nil)

// ErrCompositionNotFound marks a lookup miss so controllers can map it to 404
var ErrCompositionNotFound = fmt.Errorf("composition not found")

// Save upserts a composition document keyed by its id; an empty id gets a
// fresh one. Concurrent saves of the same id resolve last-write-wins.
func (r *CompositionRepository) Save(ctx context.Context, accountID string, doc *models.CompositionDocument, thumbnail []byte) (string, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	log.Printf("💾 Repository.Save called for composition: %s (account %s)", doc.ID, accountID)

	elements, err := json.Marshal(doc.Elements)
	if err != nil {
		return "", fmt.Errorf("failed to marshal elements: %w", err)
	}

	query := `
		INSERT INTO compositions (
			id, account_id, name, template_key, garment_color, elements, thumbnail, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			template_key = EXCLUDED.template_key,
			garment_color = EXCLUDED.garment_color,
			elements = EXCLUDED.elements,
			thumbnail = EXCLUDED.thumbnail,
			updated_at = EXCLUDED.updated_at
		WHERE compositions.account_id = EXCLUDED.account_id
	`

	result, err := db.DB.ExecContext(ctx, query,
		doc.ID,
		accountID,
		doc.Name,
		doc.TemplateKey,
		doc.GarmentColor,
		elements,
		thumbnail,
		time.Now(),
	)
	if err != nil {
		log.Printf("❌ Database upsert error for composition %s: %v", doc.ID, err)
		return "", fmt.Errorf("failed to save composition: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("⚠️  Warning: Could not get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		// Id exists but belongs to another account.
		return "", fmt.Errorf("composition %s is owned by a different account", doc.ID)
	}

	log.Printf("✅ Saved composition %s (%d bytes thumbnail)", doc.ID, len(thumbnail))
	return doc.ID, nil
}

// Get retrieves one composition with its element payload
func (r *CompositionRepository) Get(ctx context.Context, accountID, id string) (*models.CompositionDocument, error) {
	query := `
		SELECT id, name, template_key, garment_color, elements
		FROM compositions
		WHERE id = $1 AND account_id = $2
	`

	var doc models.CompositionDocument
	var elements []byte
	err := db.DB.QueryRowContext(ctx, query, id, accountID).Scan(
		&doc.ID,
		&doc.Name,
		&doc.TemplateKey,
		&doc.GarmentColor,
		&elements,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCompositionNotFound
	}
	if err != nil {
		log.Printf("❌ Error fetching composition %s: %v", id, err)
		return nil, fmt.Errorf("failed to get composition: %w", err)
	}

	if err := json.Unmarshal(elements, &doc.Elements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal elements: %w", err)
	}
	doc.ThumbnailRef = fmt.Sprintf("/designs/%s/thumbnail", doc.ID)
	return &doc, nil
}

// GetThumbnail returns the stored thumbnail PNG bytes
func (r *CompositionRepository) GetThumbnail(ctx context.Context, accountID, id string) ([]byte, error) {
	var thumbnail []byte
	query := `SELECT thumbnail FROM compositions WHERE id = $1 AND account_id = $2`
	err := db.DB.QueryRowContext(ctx, query, id, accountID).Scan(&thumbnail)
	if err == sql.ErrNoRows {
		return nil, ErrCompositionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get thumbnail: %w", err)
	}
	return thumbnail, nil
}

// List returns summaries of the account's saved designs, newest first
func (r *CompositionRepository) List(ctx context.Context, accountID string) ([]models.CompositionSummary, error) {
	query := `
		SELECT id, name, template_key, garment_color, created_at, updated_at
		FROM compositions
		WHERE account_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := db.DB.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list compositions: %w", err)
	}
	defer rows.Close()

	var out []models.CompositionSummary
	for rows.Next() {
		var s models.CompositionSummary
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&s.ID, &s.Name, &s.TemplateKey, &s.GarmentColor, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan composition: %w", err)
		}
		s.CreatedAt = createdAt.Format(time.RFC3339)
		s.UpdatedAt = updatedAt.Format(time.RFC3339)
		s.ThumbnailRef = fmt.Sprintf("/designs/%s/thumbnail", s.ID)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a composition. Deleting an id that is absent (or another
// account's) reports not found.
func (r *CompositionRepository) Delete(ctx context.Context, accountID, id string) error {
	result, err := db.DB.ExecContext(ctx,
		`DELETE FROM compositions WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete composition: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("⚠️  Warning: Could not get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return ErrCompositionNotFound
	}
	log.Printf("🗑️  Deleted composition %s", id)
	return nil
}
