package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockup-studio/models"
	"mockup-studio/repository"
)

// stubOrderRepo serves one canned proof.
type stubOrderRepo struct {
	proof *models.OrderProof
}

func (s *stubOrderRepo) Create(_ context.Context, _ string, _ *models.CreateOrderRequest, _ *models.QuoteResponse, _ map[string]int64) (int64, error) {
	return 0, nil
}

func (s *stubOrderRepo) GetProof(_ context.Context, orderID int64) (*models.OrderProof, error) {
	if s.proof == nil || s.proof.Order.ID != orderID {
		return nil, repository.ErrOrderNotFound
	}
	return s.proof, nil
}

func TestBuildProofHTML(t *testing.T) {
	repo := &stubOrderRepo{proof: &models.OrderProof{
		Order: models.Order{
			ID:           42,
			CustomerName: "Ana Torres",
			Status:       "received",
			TotalPrice:   12500,
			TotalQty:     3,
			CreatedAt:    "2026-08-01",
			Notes:        "deliver before friday",
		},
		Lines: []models.OrderLine{
			{ItemID: "tshirt", QualityTier: "Premium", PrintSize: "A3", Size: "M",
				Color: "#1f2a44", Qty: 3, UnitPrice: 4000, LineTotal: 12000},
		},
	}}
	svc := NewProofService(repo, "http://localhost:8080")

	html, err := svc.BuildProofHTML(context.Background(), 42)
	require.NoError(t, err)

	assert.Contains(t, html, "Order Proof #42")
	assert.Contains(t, html, "Ana Torres")
	assert.Contains(t, html, "deliver before friday")
	// Money runs through the storefront formatter, colors map back to
	// picker names.
	assert.Contains(t, html, "$12.500")
	assert.Contains(t, html, "$4.000")
	assert.Contains(t, html, "navy")
	assert.Contains(t, html, "sizes shown are not print-dimension accurate")
}

func TestBuildProofHTMLUnknownOrder(t *testing.T) {
	svc := NewProofService(&stubOrderRepo{}, "http://localhost:8080")

	_, err := svc.BuildProofHTML(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}
