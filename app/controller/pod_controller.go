package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"mockup-studio/models"
	"mockup-studio/pricing"
	"mockup-studio/repository"
	"mockup-studio/service"
)

// PodController handles the print-on-demand surface: the pricing lookup the
// configurator UI reads, quoting, order submission and the order proof sheet
type PodController struct {
	catalogRepository repository.CatalogRepositoryInterface
	orderRepository   repository.OrderRepositoryInterface
	proofService      *service.ProofService
	rates             pricing.RateTable
}

// NewPodController creates a new PodController
func NewPodController(catalogRepo repository.CatalogRepositoryInterface, orderRepo repository.OrderRepositoryInterface, proofService *service.ProofService, rates pricing.RateTable) *PodController {
	return &PodController{
		catalogRepository: catalogRepo,
		orderRepository:   orderRepo,
		proofService:      proofService,
		rates:             rates,
	}
}

// currentRates layers the print_size_prices table over the configured rate
// table. A pricing-source failure is logged and quoting continues on the
// configured rates.
func (c *PodController) currentRates(r *http.Request) pricing.RateTable {
	merged := pricing.RateTable{
		PrintSizePrices:    make(map[models.PrintSize]int64, len(c.rates.PrintSizePrices)),
		QualityMultipliers: make(map[models.QualityTier]float64, len(c.rates.QualityMultipliers)),
	}
	for size, price := range c.rates.PrintSizePrices {
		merged.PrintSizePrices[size] = price
	}
	for tier, mult := range c.rates.QualityMultipliers {
		merged.QualityMultipliers[tier] = mult
	}

	fromDB, err := c.catalogRepository.PrintSizePrices(r.Context())
	if err != nil {
		log.Printf("⚠️  Pricing: print size prices unavailable, using configured rates: %v", err)
		return merged
	}
	for size, price := range fromDB {
		merged.PrintSizePrices[models.PrintSize(size)] = price
	}
	return merged
}

// GetPricing handles GET /pricing, returning the surcharge and multiplier
// tables plus the size options per gender
func (c *PodController) GetPricing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rates := c.currentRates(r)
	resp := models.PricingResponse{
		PrintSizePrices: make(map[string]int64, len(rates.PrintSizePrices)),
		QualityPrices:   make(map[string]float64, len(rates.QualityMultipliers)),
	}
	for size, price := range rates.PrintSizePrices {
		resp.PrintSizePrices[string(size)] = price
	}
	for tier, mult := range rates.QualityMultipliers {
		resp.QualityPrices[string(tier)] = mult
	}

	sizeOptions := map[string][]string{
		string(models.GenderMale):   pricing.SizeOptions(models.GenderMale),
		string(models.GenderFemale): pricing.SizeOptions(models.GenderFemale),
		string(models.GenderUnisex): pricing.SizeOptions(models.GenderUnisex),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"printSizePrices": resp.PrintSizePrices,
		"qualityPrices":   resp.QualityPrices,
		"sizeOptions":     sizeOptions,
	}); err != nil {
		log.Printf("❌ Get pricing: Error encoding response: %v", err)
	}
}

// Quote handles POST /pod/quote: price a selection set without persisting
// anything
func (c *PodController) Quote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	configurator := pricing.NewConfigurator(c.currentRates(r))
	configurator.SetSelections(req.Selections)

	quote, err := configurator.Quote(r.Context(), c.catalogRepository)
	if err != nil {
		log.Printf("❌ Quote: Error pricing selections: %v", err)
		http.Error(w, "Failed to price selections", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(quote); err != nil {
		log.Printf("❌ Quote: Error encoding response: %v", err)
	}
}

// CreateOrder handles POST /pod/orders. The selection set is re-priced and
// re-validated server side; a quote the client saw is never trusted.
func (c *PodController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CustomerName == "" {
		http.Error(w, "customerName is required", http.StatusBadRequest)
		return
	}

	configurator := pricing.NewConfigurator(c.currentRates(r))
	configurator.SetSelections(req.Selections)

	quote, err := configurator.Quote(r.Context(), c.catalogRepository)
	if err != nil {
		log.Printf("❌ Create order: Error pricing selections: %v", err)
		http.Error(w, "Failed to price selections", http.StatusInternalServerError)
		return
	}
	if !quote.Valid {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(map[string]interface{}{
			"error":    "selections are not ready for submission",
			"problems": quote.Problems,
		}); err != nil {
			log.Printf("❌ Create order: Error encoding response: %v", err)
		}
		return
	}

	unitPrices := make(map[string]int64, len(quote.Lines))
	for _, line := range quote.Lines {
		unitPrices[line.ItemID] = line.UnitPrice
	}

	orderID, err := c.orderRepository.Create(r.Context(), account, &req, quote, unitPrices)
	if err != nil {
		log.Printf("❌ Create order: Error persisting order: %v", err)
		http.Error(w, "Failed to create order", http.StatusInternalServerError)
		return
	}
	log.Printf("🎉 Order created: #%d (%d units, total %d, account %s)", orderID, quote.TotalQuantity, quote.TotalPrice, account)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(models.CreateOrderResponse{
		OrderID:       orderID,
		TotalPrice:    quote.TotalPrice,
		TotalQuantity: quote.TotalQuantity,
	}); err != nil {
		log.Printf("❌ Create order: Error encoding response: %v", err)
	}
}

// ProofRender handles GET /orders/:id/proof/render, the HTML page headless
// Chrome prints from
func (c *PodController) ProofRender(w http.ResponseWriter, r *http.Request, orderID int64) {
	html, err := c.proofService.BuildProofHTML(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Proof render: Error building proof for order %d: %v", orderID, err)
		http.Error(w, "Failed to render proof", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("❌ Proof render: Error writing response: %v", err)
	}
}

// ProofPDF handles GET /orders/:id/proof, serving the printable A4 PDF
func (c *PodController) ProofPDF(w http.ResponseWriter, r *http.Request, orderID int64) {
	pdf, err := c.proofService.GenerateProofPDF(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Proof PDF: Error generating PDF for order %d: %v", orderID, err)
		http.Error(w, "Failed to generate proof PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"order-proof.pdf\"")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("❌ Proof PDF: Error writing response: %v", err)
	}
}
