package service

import (
	"context"

	"mockup-studio/models"
)

// SyncServiceInterface defines the contract for artwork library sync
type SyncServiceInterface interface {
	SyncArtwork(ctx context.Context, folderID string) (inserted int, skipped int, total int, err error)
	OptimizedImage(ctx context.Context, asset *models.ArtworkAsset, size string) ([]byte, error)
}
