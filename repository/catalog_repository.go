package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"mockup-studio/db"
)

// CatalogRepository resolves catalog item base prices from the catalog_items
// table. Implements CatalogRepositoryInterface.
type CatalogRepository struct{}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// defaultBasePrices backs the quote flow when a catalog row is missing, so
// pricing keeps working while the catalog is being maintained
var defaultBasePrices = map[string]int64{
	"tshirt":     2000,
	"hoodie":     3500,
	"sweatshirt": 3000,
	"polo":       2400,
	"tote":       1500,
	"cap":        1200,
}

const fallbackBasePrice = 2000

// BasePrice returns the active base price for a catalog item, falling back
// to the default table when no row exists
func (r *CatalogRepository) BasePrice(ctx context.Context, itemID string) (int64, error) {
	var price int64
	query := `SELECT base_price FROM catalog_items WHERE item_id = $1 AND is_active = true`
	err := db.DB.QueryRowContext(ctx, query, itemID).Scan(&price)
	if err == sql.ErrNoRows {
		if p, exists := defaultBasePrices[itemID]; exists {
			return p, nil
		}
		log.Printf("⚠️  BasePrice: no catalog row or default for %s, using fallback", itemID)
		return fallbackBasePrice, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get base price: %w", err)
	}
	return price, nil
}

// PrintSizePrices returns the per-print-size surcharges stored in the
// pricing table. An empty map (no rows) is not an error; callers merge it
// over the hardcoded defaults.
func (r *CatalogRepository) PrintSizePrices(ctx context.Context) (map[string]int64, error) {
	rows, err := db.DB.QueryContext(ctx, `SELECT print_size, surcharge FROM print_size_prices`)
	if err != nil {
		return nil, fmt.Errorf("failed to query print size prices: %w", err)
	}
	defer rows.Close()

	prices := make(map[string]int64)
	for rows.Next() {
		var size string
		var surcharge int64
		if err := rows.Scan(&size, &surcharge); err != nil {
			return nil, fmt.Errorf("failed to scan print size price: %w", err)
		}
		prices[size] = surcharge
	}
	return prices, rows.Err()
}
