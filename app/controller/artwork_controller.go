package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"mockup-studio/models"
	"mockup-studio/repository"
	"mockup-studio/service"
)

// ArtworkController handles the shared artwork library: the Drive sync
// trigger, listing and the optimized image endpoint
type ArtworkController struct {
	syncService service.SyncServiceInterface
	repository  repository.ArtworkRepositoryInterface
}

// NewArtworkController creates a new ArtworkController. syncService may be
// nil when Drive credentials are not configured; sync and image endpoints
// then report the feature as unavailable.
func NewArtworkController(syncService service.SyncServiceInterface, repo repository.ArtworkRepositoryInterface) *ArtworkController {
	return &ArtworkController{
		syncService: syncService,
		repository:  repo,
	}
}

// Sync handles POST /admin/artwork/sync, pulling new files from the
// configured Drive folder into the library
func (c *ArtworkController) Sync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c.syncService == nil {
		http.Error(w, "Artwork sync is not configured", http.StatusServiceUnavailable)
		return
	}

	folderID := os.Getenv("ARTWORK_DRIVE_FOLDER_ID")
	if folderID == "" {
		http.Error(w, "ARTWORK_DRIVE_FOLDER_ID is not set", http.StatusServiceUnavailable)
		return
	}

	inserted, skipped, total, err := c.syncService.SyncArtwork(r.Context(), folderID)
	if err != nil {
		log.Printf("❌ Artwork sync: %v", err)
		http.Error(w, "Failed to sync artwork", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(models.ArtworkSyncResponse{
		Status:   "completed",
		Inserted: inserted,
		Skipped:  skipped,
		Total:    total,
	}); err != nil {
		log.Printf("❌ Artwork sync: Error encoding response: %v", err)
	}
}

// List handles GET /admin/artwork
func (c *ArtworkController) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	assets, err := c.repository.List(r.Context())
	if err != nil {
		log.Printf("❌ List artwork: %v", err)
		http.Error(w, "Failed to list artwork", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"artwork": assets}); err != nil {
		log.Printf("❌ List artwork: Error encoding response: %v", err)
	}
}

// Image handles GET /admin/artwork/:id/image?size=thumb|medium, serving a
// cached optimized JPEG
func (c *ArtworkController) Image(w http.ResponseWriter, r *http.Request, id int64) {
	if c.syncService == nil {
		http.Error(w, "Artwork images are not configured", http.StatusServiceUnavailable)
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = "thumb"
	}
	if size != "thumb" && size != "medium" {
		http.Error(w, "size must be thumb or medium", http.StatusBadRequest)
		return
	}

	asset, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtworkNotFound) {
			http.Error(w, "Artwork not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Artwork image: Error loading asset %d: %v", id, err)
		http.Error(w, "Failed to load artwork", http.StatusInternalServerError)
		return
	}

	data, err := c.syncService.OptimizedImage(r.Context(), asset, size)
	if err != nil {
		log.Printf("❌ Artwork image: Error optimizing asset %d: %v", id, err)
		http.Error(w, "Failed to load artwork image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("❌ Artwork image: Error writing response: %v", err)
	}
}
