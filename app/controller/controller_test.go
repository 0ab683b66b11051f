package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockup-studio/models"
	"mockup-studio/pricing"
	"mockup-studio/repository"
	"mockup-studio/service"
)

// stubDecoder decodes every reference to a fixed bitmap; refs listed in
// failing decode with an error instead.
type stubDecoder struct {
	failing map[string]bool
}

func (d *stubDecoder) Decode(_ context.Context, sourceRef string) (image.Image, error) {
	if d.failing[sourceRef] {
		return nil, errors.New("fetch failed")
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

// stubCompositionRepo is an in-memory CompositionRepositoryInterface.
type stubCompositionRepo struct {
	saved      map[string]*models.CompositionDocument
	thumbnails map[string][]byte
}

func newStubCompositionRepo() *stubCompositionRepo {
	return &stubCompositionRepo{
		saved:      make(map[string]*models.CompositionDocument),
		thumbnails: make(map[string][]byte),
	}
}

func (s *stubCompositionRepo) Save(_ context.Context, _ string, doc *models.CompositionDocument, thumbnail []byte) (string, error) {
	id := doc.ID
	if id == "" {
		id = "generated-id"
	}
	s.saved[id] = doc
	s.thumbnails[id] = thumbnail
	return id, nil
}

func (s *stubCompositionRepo) Get(_ context.Context, _ string, id string) (*models.CompositionDocument, error) {
	doc, ok := s.saved[id]
	if !ok {
		return nil, repository.ErrCompositionNotFound
	}
	return doc, nil
}

func (s *stubCompositionRepo) GetThumbnail(_ context.Context, _ string, id string) ([]byte, error) {
	thumb, ok := s.thumbnails[id]
	if !ok {
		return nil, repository.ErrCompositionNotFound
	}
	return thumb, nil
}

func (s *stubCompositionRepo) List(_ context.Context, _ string) ([]models.CompositionSummary, error) {
	out := []models.CompositionSummary{}
	for id, doc := range s.saved {
		out = append(out, models.CompositionSummary{ID: id, Name: doc.Name})
	}
	return out, nil
}

func (s *stubCompositionRepo) Delete(_ context.Context, _ string, id string) error {
	if _, ok := s.saved[id]; !ok {
		return repository.ErrCompositionNotFound
	}
	delete(s.saved, id)
	return nil
}

// stubCatalogRepo is a map-backed CatalogRepositoryInterface.
type stubCatalogRepo struct {
	basePrices map[string]int64
	printSizes map[string]int64
}

func (s *stubCatalogRepo) BasePrice(_ context.Context, itemID string) (int64, error) {
	if price, ok := s.basePrices[itemID]; ok {
		return price, nil
	}
	return 2000, nil
}

func (s *stubCatalogRepo) PrintSizePrices(_ context.Context) (map[string]int64, error) {
	if s.printSizes == nil {
		return nil, errors.New("no pricing rows")
	}
	return s.printSizes, nil
}

// stubOrderRepo records the last created order.
type stubOrderRepo struct {
	lastRequest *models.CreateOrderRequest
	lastQuote   *models.QuoteResponse
}

func (s *stubOrderRepo) Create(_ context.Context, _ string, req *models.CreateOrderRequest, quote *models.QuoteResponse, _ map[string]int64) (int64, error) {
	s.lastRequest = req
	s.lastQuote = quote
	return 7, nil
}

func (s *stubOrderRepo) GetProof(_ context.Context, _ int64) (*models.OrderProof, error) {
	return nil, repository.ErrOrderNotFound
}

func newDesignController(t *testing.T, decoder *stubDecoder) (*DesignController, *stubCompositionRepo) {
	t.Helper()
	renderService, err := service.NewRenderService(nil)
	require.NoError(t, err)
	repo := newStubCompositionRepo()
	return NewDesignController(repo, decoder, renderService), repo
}

func designBody(t *testing.T, imageRef string) *bytes.Buffer {
	t.Helper()
	doc := models.CompositionDocument{
		Name:         "Summer tour tee",
		TemplateKey:  "tshirt_front",
		GarmentColor: "#1f2a44",
		Elements: []models.CompositionElement{
			{ID: "a1", Kind: "image", X: 170, Y: 165, Width: 160, Height: 160, ImageRef: imageRef},
			{ID: "a2", Kind: "text", X: 250, Y: 245, Text: "TOUR", FontSizePx: 24, FontFamily: "Arial", FillColor: "#ffffff"},
		},
	}
	body := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(body).Encode(doc))
	return body
}

func TestSaveDesignRequiresSignIn(t *testing.T) {
	c, _ := newDesignController(t, &stubDecoder{})

	req := httptest.NewRequest(http.MethodPost, "/designs", designBody(t, "https://cdn.example.com/a.png"))
	rec := httptest.NewRecorder()
	c.Save(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "must sign in")
}

func TestSaveDesignHappyPath(t *testing.T) {
	c, repo := newDesignController(t, &stubDecoder{})

	req := httptest.NewRequest(http.MethodPost, "/designs", designBody(t, "https://cdn.example.com/a.png"))
	req.Header.Set("X-Account-ID", "acct-1")
	rec := httptest.NewRecorder()
	c.Save(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SaveCompositionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "generated-id", resp.ID)
	assert.Equal(t, "/designs/generated-id/thumbnail", resp.ThumbnailRef)

	// The document and a rendered thumbnail were persisted together.
	assert.Contains(t, repo.saved, "generated-id")
	assert.NotEmpty(t, repo.thumbnails["generated-id"])
}

func TestSaveDesignRejectsUndecodableImage(t *testing.T) {
	decoder := &stubDecoder{failing: map[string]bool{"https://cdn.example.com/broken.png": true}}
	c, repo := newDesignController(t, decoder)

	req := httptest.NewRequest(http.MethodPost, "/designs", designBody(t, "https://cdn.example.com/broken.png"))
	req.Header.Set("X-Account-ID", "acct-1")
	rec := httptest.NewRecorder()
	c.Save(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to decode image")
	assert.Empty(t, repo.saved)
}

func TestSaveDesignRejectsUnknownTemplate(t *testing.T) {
	c, _ := newDesignController(t, &stubDecoder{})

	doc := models.CompositionDocument{Name: "x", TemplateKey: "mug_wrap"}
	body := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(body).Encode(doc))

	req := httptest.NewRequest(http.MethodPost, "/designs", body)
	req.Header.Set("X-Account-ID", "acct-1")
	rec := httptest.NewRecorder()
	c.Save(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown template kind")
}

func TestGetDesignNotFound(t *testing.T) {
	c, _ := newDesignController(t, &stubDecoder{})

	req := httptest.NewRequest(http.MethodGet, "/designs/nope", nil)
	req.Header.Set("X-Account-ID", "acct-1")
	rec := httptest.NewRecorder()
	c.Get(rec, req, "nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTemplateList(t *testing.T) {
	c := NewTemplateController()

	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	rec := httptest.NewRecorder()
	c.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Templates []struct {
			Key      string `json:"key"`
			Category string `json:"category"`
		} `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Templates, 6)
	assert.Equal(t, "tshirt_front", resp.Templates[0].Key)
}

func TestTemplateListByCategory(t *testing.T) {
	c := NewTemplateController()

	req := httptest.NewRequest(http.MethodGet, "/templates?category=accessory", nil)
	rec := httptest.NewRecorder()
	c.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Templates []struct {
			Key string `json:"key"`
		} `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Templates, 2)
	assert.Equal(t, "tote_front", resp.Templates[0].Key)
}

func TestTemplateGetUnknownKey(t *testing.T) {
	c := NewTemplateController()

	req := httptest.NewRequest(http.MethodGet, "/templates/mug_wrap", nil)
	rec := httptest.NewRecorder()
	c.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func newPodController(catalog *stubCatalogRepo, orders *stubOrderRepo) *PodController {
	proofService := service.NewProofService(orders, "http://localhost:8080")
	return NewPodController(catalog, orders, proofService, pricing.DefaultRateTable())
}

func TestGetPricingMergesDatabaseRates(t *testing.T) {
	catalog := &stubCatalogRepo{printSizes: map[string]int64{"A4": 900}}
	c := newPodController(catalog, &stubOrderRepo{})

	req := httptest.NewRequest(http.MethodGet, "/pricing", nil)
	rec := httptest.NewRecorder()
	c.GetPricing(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		PrintSizePrices map[string]int64    `json:"printSizePrices"`
		QualityPrices   map[string]float64  `json:"qualityPrices"`
		SizeOptions     map[string][]string `json:"sizeOptions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, int64(900), resp.PrintSizePrices["A4"]) // DB override
	assert.Equal(t, int64(500), resp.PrintSizePrices["Badge"])
	assert.Equal(t, 1.75, resp.QualityPrices["Luxury"])
	assert.Contains(t, resp.SizeOptions["female"], "22")
}

func TestGetPricingSurvivesMissingPricingRows(t *testing.T) {
	c := newPodController(&stubCatalogRepo{}, &stubOrderRepo{})

	req := httptest.NewRequest(http.MethodGet, "/pricing", nil)
	rec := httptest.NewRecorder()
	c.GetPricing(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		PrintSizePrices map[string]int64 `json:"printSizePrices"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(800), resp.PrintSizePrices["A4"])
}

func quoteBody(t *testing.T, qty string) *bytes.Buffer {
	t.Helper()
	req := models.QuoteRequest{Selections: []models.VariantSelection{{
		ItemID:      "tshirt",
		Gender:      models.GenderMale,
		QualityTier: models.QualityPremium,
		PrintSize:   models.PrintSizeA3,
		SizeEntries: []models.SizeEntry{{Size: "M", Color: "navy", Quantity: qty}},
	}}}
	body := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(body).Encode(req))
	return body
}

func TestQuoteEndpoint(t *testing.T) {
	catalog := &stubCatalogRepo{basePrices: map[string]int64{"tshirt": 2000}}
	c := newPodController(catalog, &stubOrderRepo{})

	req := httptest.NewRequest(http.MethodPost, "/pod/quote", quoteBody(t, "3"))
	rec := httptest.NewRecorder()
	c.Quote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var quote models.QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))

	require.Len(t, quote.Lines, 1)
	assert.Equal(t, int64(4000), quote.Lines[0].UnitPrice) // 2000*1.4+1200
	assert.Equal(t, int64(12000), quote.TotalPrice)
	assert.Equal(t, 3, quote.TotalQuantity)
	assert.True(t, quote.Valid)
}

func TestCreateOrderRequiresSignIn(t *testing.T) {
	c := newPodController(&stubCatalogRepo{}, &stubOrderRepo{})

	req := httptest.NewRequest(http.MethodPost, "/pod/orders", quoteBody(t, "3"))
	rec := httptest.NewRecorder()
	c.CreateOrder(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrderRejectsInvalidSelections(t *testing.T) {
	orders := &stubOrderRepo{}
	c := newPodController(&stubCatalogRepo{}, orders)

	body := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(body).Encode(models.CreateOrderRequest{
		CustomerName: "Ana",
		Selections: []models.VariantSelection{{
			ItemID:      "tshirt",
			SizeEntries: []models.SizeEntry{{Size: "M", Quantity: "0"}},
		}},
	}))
	req := httptest.NewRequest(http.MethodPost, "/pod/orders", body)
	req.Header.Set("X-Account-ID", "acct-1")
	rec := httptest.NewRecorder()
	c.CreateOrder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "problems")
	assert.Nil(t, orders.lastRequest)
}

func TestCreateOrderHappyPath(t *testing.T) {
	orders := &stubOrderRepo{}
	catalog := &stubCatalogRepo{basePrices: map[string]int64{"tshirt": 2000}}
	c := newPodController(catalog, orders)

	body := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(body).Encode(models.CreateOrderRequest{
		CustomerName: "Ana Torres",
		Selections: []models.VariantSelection{{
			ItemID:      "tshirt",
			Gender:      models.GenderMale,
			QualityTier: models.QualityStandard,
			PrintSize:   models.PrintSizeA4,
			SizeEntries: []models.SizeEntry{{Size: "M", Color: "navy", Quantity: "2"}},
		}},
	}))
	req := httptest.NewRequest(http.MethodPost, "/pod/orders", body)
	req.Header.Set("X-Account-ID", "acct-1")
	rec := httptest.NewRecorder()
	c.CreateOrder(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.CreateOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.OrderID)
	assert.Equal(t, int64(5600), resp.TotalPrice) // (2000*1.0+800)*2
	assert.Equal(t, 2, resp.TotalQuantity)

	require.NotNil(t, orders.lastQuote)
	assert.True(t, orders.lastQuote.Valid)
}
