package router

import (
	"net/http"
	"strconv"
	"strings"

	"mockup-studio/app/controller"
)

type Controllers struct {
	Template *controller.TemplateController
	Design   *controller.DesignController
	Pod      *controller.PodController
	Artwork  *controller.ArtworkController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Template registry
	http.HandleFunc("/templates", controllers.Template.List)
	http.HandleFunc("/templates/", controllers.Template.Get)

	// Pricing lookup for the configurator UI
	http.HandleFunc("/pricing", controllers.Pod.GetPricing)

	// POD quote and order submission
	http.HandleFunc("/pod/quote", controllers.Pod.Quote)
	http.HandleFunc("/pod/orders", controllers.Pod.CreateOrder)

	// Order proof sheet: /orders/:id/proof (PDF) and /orders/:id/proof/render (HTML)
	http.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		path := strings.TrimPrefix(r.URL.Path, "/orders/")

		if strings.HasSuffix(path, "/proof/render") {
			id, err := strconv.ParseInt(strings.TrimSuffix(path, "/proof/render"), 10, 64)
			if err != nil {
				http.Error(w, "Invalid order ID", http.StatusBadRequest)
				return
			}
			controllers.Pod.ProofRender(w, r, id)
			return
		}
		if strings.HasSuffix(path, "/proof") {
			id, err := strconv.ParseInt(strings.TrimSuffix(path, "/proof"), 10, 64)
			if err != nil {
				http.Error(w, "Invalid order ID", http.StatusBadRequest)
				return
			}
			controllers.Pod.ProofPDF(w, r, id)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Saved designs
	http.HandleFunc("/designs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Design.Save(w, r)
		} else if r.Method == http.MethodGet {
			controllers.Design.List(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Design by ID, plus the /thumbnail and /download sub-resources
	http.HandleFunc("/designs/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/designs/")

		// Route to specific sub-resources first
		if strings.HasSuffix(path, "/thumbnail") && r.Method == http.MethodGet {
			controllers.Design.Thumbnail(w, r, strings.TrimSuffix(path, "/thumbnail"))
			return
		}
		if strings.HasSuffix(path, "/download") && r.Method == http.MethodGet {
			controllers.Design.Download(w, r, strings.TrimSuffix(path, "/download"))
			return
		}
		if strings.Contains(path, "/") {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		switch r.Method {
		case http.MethodGet:
			controllers.Design.Get(w, r, path)
		case http.MethodPut:
			controllers.Design.Save(w, r)
		case http.MethodDelete:
			controllers.Design.Delete(w, r, path)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Artwork library routes
	http.HandleFunc("/admin/artwork/sync", controllers.Artwork.Sync)
	http.HandleFunc("/admin/artwork", controllers.Artwork.List)

	// Optimized artwork image: /admin/artwork/:id/image
	http.HandleFunc("/admin/artwork/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		path := strings.TrimPrefix(r.URL.Path, "/admin/artwork/")
		if !strings.HasSuffix(path, "/image") {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		id, err := strconv.ParseInt(strings.TrimSuffix(path, "/image"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid artwork ID", http.StatusBadRequest)
			return
		}
		controllers.Artwork.Image(w, r, id)
	})
}
