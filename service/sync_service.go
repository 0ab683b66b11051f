package service

import (
	"context"
	"fmt"
	"log"

	"mockup-studio/models"
	"mockup-studio/repository"
)

// SyncService keeps the artwork library in Postgres aligned with the Drive
// folder designers drop files into. Implements SyncServiceInterface.
type SyncService struct {
	driveService DriveServiceInterface
	repository   repository.ArtworkRepositoryInterface
}

// NewSyncService creates a new SyncService
func NewSyncService(driveService DriveServiceInterface, repo repository.ArtworkRepositoryInterface) *SyncService {
	return &SyncService{
		driveService: driveService,
		repository:   repo,
	}
}

var _ SyncServiceInterface = (*SyncService)(nil)

// SyncArtwork inserts Drive artwork files that are not yet in the library.
// inserted = new rows, skipped = already present, total = files seen.
func (s *SyncService) SyncArtwork(ctx context.Context, folderID string) (inserted int, skipped int, total int, err error) {
	log.Printf("🔄 Starting artwork sync for folder: %s", folderID)

	files, err := s.driveService.ListArtworkFiles(folderID)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to list artwork from Drive: %w", err)
	}
	total = len(files)
	log.Printf("📦 Processing %d artwork files from Google Drive", total)

	for _, file := range files {
		exists, err := s.repository.ExistsByDriveFileID(ctx, file.DriveFileID)
		if err != nil {
			log.Printf("❌ Error checking existence for drive_file_id %s: %v", file.DriveFileID, err)
			continue
		}
		if exists {
			skipped++
			continue
		}

		f := file
		if err := s.repository.Insert(ctx, &f); err != nil {
			log.Printf("❌ Error inserting drive_file_id %s: %v", file.DriveFileID, err)
			continue
		}
		inserted++
	}

	log.Printf("🎉 Artwork sync completed: %d inserted, %d skipped, %d total", inserted, skipped, total)
	return inserted, skipped, total, nil
}

// OptimizedImage serves a resized JPEG of one artwork asset, reading the
// disk cache first and filling it on miss
func (s *SyncService) OptimizedImage(ctx context.Context, asset *models.ArtworkAsset, size string) ([]byte, error) {
	cachePath := GetCachePath(asset.ID, size)
	if CacheExists(cachePath) {
		return ReadFromCache(cachePath)
	}

	raw, err := s.driveService.DownloadImage(asset.DriveFileID)
	if err != nil {
		return nil, fmt.Errorf("failed to download artwork %d: %w", asset.ID, err)
	}

	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize artwork %d: %w", asset.ID, err)
	}

	if err := SaveToCache(cachePath, optimized); err != nil {
		// Cache failures only cost the next request a re-download.
		log.Printf("⚠️  Could not cache artwork %d: %v", asset.ID, err)
	}
	return optimized, nil
}
