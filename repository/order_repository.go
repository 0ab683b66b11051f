package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"mockup-studio/db"
	"mockup-studio/models"
)

// OrderRepository handles POD order persistence.
// Implements OrderRepositoryInterface.
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// ErrOrderNotFound marks an order lookup miss
var ErrOrderNotFound = fmt.Errorf("order not found")

// Create inserts the order header and one line per size entry inside a
// transaction. unitPrices maps itemId to the quoted unit price so stored
// lines match the quote the customer accepted.
func (r *OrderRepository) Create(ctx context.Context, accountID string, req *models.CreateOrderRequest, quote *models.QuoteResponse, unitPrices map[string]int64) (int64, error) {
	log.Printf("💾 Repository.Create order for account %s: %d selections, total %d", accountID, len(req.Selections), quote.TotalPrice)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO pod_orders (
			account_id, status, design_ref, customer_name, customer_phone, notes,
			total_price, total_qty, created_at
		) VALUES ($1, 'received', $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		accountID,
		req.DesignRef,
		req.CustomerName,
		req.CustomerPhone,
		req.Notes,
		quote.TotalPrice,
		quote.TotalQuantity,
		time.Now(),
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, sel := range req.Selections {
		unitPrice := unitPrices[sel.ItemID]
		for _, entry := range sel.SizeEntries {
			qty := entry.Units()
			if qty == 0 {
				continue
			}
			size := entry.Size
			if size == models.SizeOther {
				size = entry.CustomSizeLabel
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO pod_order_lines (
					order_id, item_id, gender, quality_tier, print_size,
					size, color, qty, unit_price, line_total
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			`,
				orderID,
				sel.ItemID,
				string(sel.Gender),
				string(sel.QualityTier),
				string(sel.PrintSize),
				size,
				entry.Color,
				qty,
				unitPrice,
				unitPrice*int64(qty),
			)
			if err != nil {
				return 0, fmt.Errorf("failed to insert order line: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit order: %w", err)
	}

	log.Printf("✅ Created order %d", orderID)
	return orderID, nil
}

// GetProof loads the order header and lines for the printable proof sheet
func (r *OrderRepository) GetProof(ctx context.Context, orderID int64) (*models.OrderProof, error) {
	proof := &models.OrderProof{}

	var createdAt time.Time
	err := db.DB.QueryRowContext(ctx, `
		SELECT id, account_id, status,
		       COALESCE(design_ref, '') as design_ref,
		       customer_name,
		       COALESCE(customer_phone, '') as customer_phone,
		       COALESCE(notes, '') as notes,
		       total_price, total_qty, created_at
		FROM pod_orders
		WHERE id = $1
	`, orderID).Scan(
		&proof.Order.ID,
		&proof.Order.AccountID,
		&proof.Order.Status,
		&proof.Order.DesignRef,
		&proof.Order.CustomerName,
		&proof.Order.CustomerPhone,
		&proof.Order.Notes,
		&proof.Order.TotalPrice,
		&proof.Order.TotalQty,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	proof.Order.CreatedAt = createdAt.Format(time.RFC3339)

	rows, err := db.DB.QueryContext(ctx, `
		SELECT id, order_id, item_id, gender, quality_tier, print_size,
		       size, color, qty, unit_price, line_total
		FROM pod_order_lines
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.OrderLine
		err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.ItemID,
			&line.Gender,
			&line.QualityTier,
			&line.PrintSize,
			&line.Size,
			&line.Color,
			&line.Qty,
			&line.UnitPrice,
			&line.LineTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		proof.Lines = append(proof.Lines, line)
	}
	return proof, rows.Err()
}
