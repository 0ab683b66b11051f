package app

import (
	"fmt"
	"log"
	"os"

	"mockup-studio/app/controller"
	"mockup-studio/app/router"
	"mockup-studio/db"
	"mockup-studio/pricing"
	"mockup-studio/repository"
	"mockup-studio/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Ensure the artwork image cache directory exists
	if err := service.EnsureCacheDir(); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Load the pricing rate table; PRICING_CONFIG_PATH is optional and a
	// broken file falls back to the built-in rates
	rates := pricing.DefaultRateTable()
	if configPath := os.Getenv("PRICING_CONFIG_PATH"); configPath != "" {
		loaded, err := pricing.LoadRateTable(configPath)
		if err != nil {
			log.Printf("⚠️  Pricing: %v, using default rates", err)
		}
		rates = loaded
	}

	// Initialize repositories
	compositionRepo := repository.NewCompositionRepository()
	catalogRepo := repository.NewCatalogRepository()
	orderRepo := repository.NewOrderRepository()
	artworkRepo := repository.NewArtworkRepository()

	// Initialize rendering services
	decoder := service.NewBitmapDecoder()
	renderService, err := service.NewRenderService(decoder)
	if err != nil {
		return fmt.Errorf("failed to initialize render service: %w", err)
	}

	// Drive-backed artwork sync is optional: without credentials the rest of
	// the service runs, only the sync and optimized-image endpoints go dark
	var syncService service.SyncServiceInterface
	if credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsPath != "" {
		driveService, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return err
		}
		syncService = service.NewSyncService(driveService, artworkRepo)
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, artwork sync disabled")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		baseURL = "http://localhost:" + port
	}
	proofService := service.NewProofService(orderRepo, baseURL)

	// Create controllers
	controllers := &router.Controllers{
		Template: controller.NewTemplateController(),
		Design:   controller.NewDesignController(compositionRepo, decoder, renderService),
		Pod:      controller.NewPodController(catalogRepo, orderRepo, proofService, rates),
		Artwork:  controller.NewArtworkController(syncService, artworkRepo),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
