package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"mockup-studio/canvas"
	"mockup-studio/models"
	"mockup-studio/repository"
	"mockup-studio/service"
)

// DesignController handles saved mockup compositions: save/upsert, listing,
// loading, thumbnails and the downloadable render
type DesignController struct {
	repository    repository.CompositionRepositoryInterface
	decoder       canvas.BitmapDecoder
	renderService *service.RenderService
}

// NewDesignController creates a new DesignController
func NewDesignController(repo repository.CompositionRepositoryInterface, decoder canvas.BitmapDecoder, renderService *service.RenderService) *DesignController {
	return &DesignController{
		repository:    repo,
		decoder:       decoder,
		renderService: renderService,
	}
}

// Save handles POST /designs and PUT /designs/:id. The document is validated
// by rebuilding the session from it; every image reference must decode, a
// broken one rejects the whole save.
func (c *DesignController) Save(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	var doc models.CompositionDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if r.Method == http.MethodPut {
		doc.ID = strings.TrimPrefix(r.URL.Path, "/designs/")
	}
	if strings.TrimSpace(doc.Name) == "" {
		http.Error(w, "design name is required", http.StatusBadRequest)
		return
	}

	session, err := canvas.Deserialize(r.Context(), doc, c.decoder)
	if err != nil {
		if errors.Is(err, canvas.ErrUnknownTemplateKind) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, el := range session.Elements() {
		if img, isImage := el.(*canvas.ImageElement); isImage && !img.Interactable() {
			msg := fmt.Sprintf("failed to decode image %q", truncateForError(img.SourceRef))
			log.Printf("❌ Save design: %s", msg)
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
	}

	thumbnail, err := c.renderService.RenderThumbnail(r.Context(), session)
	if err != nil {
		log.Printf("❌ Save design: Error rendering thumbnail: %v", err)
		http.Error(w, "Failed to render thumbnail", http.StatusInternalServerError)
		return
	}

	id, err := c.repository.Save(r.Context(), account, &doc, thumbnail)
	if err != nil {
		log.Printf("❌ Save design: Error saving composition: %v", err)
		http.Error(w, "Failed to save design", http.StatusInternalServerError)
		return
	}
	log.Printf("💾 Design saved: %s (account %s, %d elements)", id, account, len(doc.Elements))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(models.SaveCompositionResponse{
		ID:           id,
		ThumbnailRef: fmt.Sprintf("/designs/%s/thumbnail", id),
	}); err != nil {
		log.Printf("❌ Save design: Error encoding response: %v", err)
	}
}

// List handles GET /designs
func (c *DesignController) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	summaries, err := c.repository.List(r.Context(), account)
	if err != nil {
		log.Printf("❌ List designs: Error listing compositions: %v", err)
		http.Error(w, "Failed to list designs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"designs": summaries}); err != nil {
		log.Printf("❌ List designs: Error encoding response: %v", err)
	}
}

// Get handles GET /designs/:id, returning the stored document for reload
// into the editor
func (c *DesignController) Get(w http.ResponseWriter, r *http.Request, id string) {
	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	doc, err := c.repository.Get(r.Context(), account, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompositionNotFound) {
			http.Error(w, "Design not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Get design: Error loading composition %s: %v", id, err)
		http.Error(w, "Failed to load design", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		log.Printf("❌ Get design: Error encoding response: %v", err)
	}
}

// Delete handles DELETE /designs/:id
func (c *DesignController) Delete(w http.ResponseWriter, r *http.Request, id string) {
	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	if err := c.repository.Delete(r.Context(), account, id); err != nil {
		if errors.Is(err, repository.ErrCompositionNotFound) {
			http.Error(w, "Design not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Delete design: Error deleting composition %s: %v", id, err)
		http.Error(w, "Failed to delete design", http.StatusInternalServerError)
		return
	}
	log.Printf("✅ Design deleted: %s (account %s)", id, account)
	w.WriteHeader(http.StatusNoContent)
}

// Thumbnail handles GET /designs/:id/thumbnail, serving the PNG preview
// rendered at save time
func (c *DesignController) Thumbnail(w http.ResponseWriter, r *http.Request, id string) {
	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	thumbnail, err := c.repository.GetThumbnail(r.Context(), account, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompositionNotFound) {
			http.Error(w, "Design not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Design thumbnail: Error loading %s: %v", id, err)
		http.Error(w, "Failed to load thumbnail", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(thumbnail); err != nil {
		log.Printf("❌ Design thumbnail: Error writing response: %v", err)
	}
}

// Download handles GET /designs/:id/download?scale=2, re-rendering the
// composition at full pixel density without any editor chrome
func (c *DesignController) Download(w http.ResponseWriter, r *http.Request, id string) {
	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	doc, err := c.repository.Get(r.Context(), account, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompositionNotFound) {
			http.Error(w, "Design not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Download design: Error loading composition %s: %v", id, err)
		http.Error(w, "Failed to load design", http.StatusInternalServerError)
		return
	}

	session, err := canvas.Deserialize(r.Context(), *doc, c.decoder)
	if err != nil {
		log.Printf("❌ Download design: Error rebuilding session %s: %v", id, err)
		http.Error(w, "Failed to render design", http.StatusInternalServerError)
		return
	}

	scale := service.DownloadScale
	if raw := r.URL.Query().Get("scale"); raw != "" {
		parsed, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil || parsed <= 0 || parsed > 4 {
			http.Error(w, "scale must be a number between 0 and 4", http.StatusBadRequest)
			return
		}
		scale = parsed
	}

	data, err := c.renderService.RenderDownload(r.Context(), session, scale)
	if err != nil {
		log.Printf("❌ Download design: Error rendering %s: %v", id, err)
		http.Error(w, "Failed to render design", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.png\"", safeFileName(doc.Name)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("❌ Download design: Error writing response: %v", err)
	}
}

func safeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, strings.TrimSpace(name))
	if cleaned == "" {
		return "mockup"
	}
	return cleaned
}

func truncateForError(ref string) string {
	if len(ref) > 60 {
		return ref[:60] + "..."
	}
	return ref
}
