package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"mockup-studio/repository"
	"mockup-studio/utils"
)

// ProofService renders the printable order proof sheet: the HTML page a
// customer signs off on, and its PDF printed through headless Chrome.
type ProofService struct {
	repository repository.OrderRepositoryInterface
	baseURL    string // where Chrome fetches the render endpoint, e.g. "http://localhost:8080"
}

// NewProofService creates a new ProofService
func NewProofService(repo repository.OrderRepositoryInterface, baseURL string) *ProofService {
	return &ProofService{
		repository: repo,
		baseURL:    baseURL,
	}
}

// detectChromePath detects the Chrome/Chromium executable.
// CHROME_PATH wins, then common installation paths.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var proofTemplate = template.Must(template.New("proof").Funcs(template.FuncMap{
	"money":     utils.FormatMoney,
	"colorName": utils.GarmentColorName,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 24px; color: #1d1d1b; }
  h1 { font-size: 20px; margin-bottom: 0; }
  .meta { color: #666; font-size: 12px; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; font-size: 13px; }
  th, td { border: 1px solid #ccc; padding: 6px 8px; text-align: left; }
  th { background: #f4f4f4; }
  td.num, th.num { text-align: right; }
  .totals { margin-top: 12px; font-size: 14px; text-align: right; }
  .note { margin-top: 16px; font-size: 11px; color: #888; }
</style>
</head>
<body>
  <h1>Order Proof #{{.Order.ID}}</h1>
  <div class="meta">
    {{.Order.CustomerName}}{{if .Order.CustomerPhone}} · {{.Order.CustomerPhone}}{{end}}
    · {{.Order.CreatedAt}} · status: {{.Order.Status}}
    {{if .Order.DesignRef}}· design: {{.Order.DesignRef}}{{end}}
  </div>
  <table>
    <tr>
      <th>Item</th><th>Quality</th><th>Print</th><th>Size</th><th>Color</th>
      <th class="num">Qty</th><th class="num">Unit</th><th class="num">Total</th>
    </tr>
    {{range .Lines}}
    <tr>
      <td>{{.ItemID}}</td>
      <td>{{.QualityTier}}</td>
      <td>{{.PrintSize}}</td>
      <td>{{.Size}}</td>
      <td>{{colorName .Color}}</td>
      <td class="num">{{.Qty}}</td>
      <td class="num">{{money .UnitPrice}}</td>
      <td class="num">{{money .LineTotal}}</td>
    </tr>
    {{end}}
  </table>
  <div class="totals">
    {{.Order.TotalQty}} units · total {{money .Order.TotalPrice}}
  </div>
  {{if .Order.Notes}}<div class="note">Notes: {{.Order.Notes}}</div>{{end}}
  <div class="note">Mockup preview only — sizes shown are not print-dimension accurate.</div>
</body>
</html>`))

// BuildProofHTML renders the proof sheet for one order
func (s *ProofService) BuildProofHTML(ctx context.Context, orderID int64) (string, error) {
	proof, err := s.repository.GetProof(ctx, orderID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := proofTemplate.Execute(&buf, proof); err != nil {
		return "", fmt.Errorf("failed to render proof template: %w", err)
	}
	return buf.String(), nil
}

// GenerateProofPDF prints the proof sheet to an A4 PDF using chromedp
func (s *ProofService) GenerateProofPDF(ctx context.Context, orderID int64) ([]byte, error) {
	// Fail fast before spinning up Chrome.
	if _, err := s.repository.GetProof(ctx, orderID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/orders/%d/proof/render", s.baseURL, orderID)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 portrait: 210mm x 297mm.
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
