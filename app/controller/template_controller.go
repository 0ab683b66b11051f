package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"mockup-studio/canvas"
)

// TemplateController serves the static template registry
type TemplateController struct{}

// NewTemplateController creates a new TemplateController
func NewTemplateController() *TemplateController {
	return &TemplateController{}
}

// List handles GET /templates and GET /templates?category=apparel
func (c *TemplateController) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category := r.URL.Query().Get("category")
	templates := canvas.ListTemplates()
	if category != "" {
		templates = canvas.ListTemplatesByCategory(canvas.TemplateCategory(category))
		if templates == nil {
			templates = []canvas.Template{}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"templates": templates}); err != nil {
		log.Printf("❌ List templates: Error encoding response: %v", err)
	}
}

// Get handles GET /templates/:key
func (c *TemplateController) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/templates/")
	if key == "" {
		http.Error(w, "template key is required", http.StatusBadRequest)
		return
	}

	tpl, err := canvas.LookupTemplate(key)
	if err != nil {
		if errors.Is(err, canvas.ErrUnknownTemplateKind) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to look up template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(tpl); err != nil {
		log.Printf("❌ Get template: Error encoding response: %v", err)
	}
}
