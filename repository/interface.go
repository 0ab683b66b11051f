package repository

import (
	"context"

	"mockup-studio/models"
)

// CompositionRepositoryInterface defines the contract for saved-design
// persistence. Every operation is scoped to an account; last write wins on
// concurrent saves of the same composition.
type CompositionRepositoryInterface interface {
	Save(ctx context.Context, accountID string, doc *models.CompositionDocument, thumbnail []byte) (string, error)
	Get(ctx context.Context, accountID, id string) (*models.CompositionDocument, error)
	GetThumbnail(ctx context.Context, accountID, id string) ([]byte, error)
	List(ctx context.Context, accountID string) ([]models.CompositionSummary, error)
	Delete(ctx context.Context, accountID, id string) error
}

// CatalogRepositoryInterface resolves catalog item base prices
type CatalogRepositoryInterface interface {
	BasePrice(ctx context.Context, itemID string) (int64, error)
	PrintSizePrices(ctx context.Context) (map[string]int64, error)
}

// OrderRepositoryInterface defines the contract for POD order persistence
type OrderRepositoryInterface interface {
	Create(ctx context.Context, accountID string, req *models.CreateOrderRequest, quote *models.QuoteResponse, unitPrices map[string]int64) (int64, error)
	GetProof(ctx context.Context, orderID int64) (*models.OrderProof, error)
}

// ArtworkRepositoryInterface defines the contract for the synced artwork
// library
type ArtworkRepositoryInterface interface {
	ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error)
	Insert(ctx context.Context, file *models.ArtworkFile) error
	List(ctx context.Context) ([]models.ArtworkAsset, error)
	GetByID(ctx context.Context, id int64) (*models.ArtworkAsset, error)
}
