package models

import (
	"strconv"
	"strings"
)

// Gender selects which size-option set an item uses
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnisex Gender = "unisex"
)

// QualityTier is the fabric/print quality choice for one item
type QualityTier string

const (
	QualityStandard QualityTier = "Standard"
	QualityPremium  QualityTier = "Premium"
	QualityLuxury   QualityTier = "Luxury"
)

// PrintSize is the printed artwork size choice for one item
type PrintSize string

const (
	PrintSizeBadge PrintSize = "Badge"
	PrintSizeA4    PrintSize = "A4"
	PrintSizeA3    PrintSize = "A3"
	PrintSizeA2    PrintSize = "A2"
	PrintSizeA1    PrintSize = "A1"
)

// SizeOther is the size value that requires a custom label before submission
const SizeOther = "Other"

// SizeEntry is one size/color/quantity row of a variant selection. Quantity
// is kept as the raw form value: the configurator treats anything that does
// not parse as a non-negative integer as zero instead of failing the whole
// quote.
type SizeEntry struct {
	Size            string `json:"size"`
	CustomSizeLabel string `json:"customSizeLabel,omitempty"`
	Color           string `json:"color"`
	Quantity        string `json:"quantity"`
}

// Units returns the entry quantity, with missing/non-numeric values as 0
func (e SizeEntry) Units() int {
	n, err := strconv.Atoi(strings.TrimSpace(e.Quantity))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// VariantSelection is one catalog item's configured combination: gender
// (which fixes the size-option set), quality tier, print size and the
// ordered size entries.
type VariantSelection struct {
	ItemID      string      `json:"itemId"`
	Gender      Gender      `json:"gender"`
	QualityTier QualityTier `json:"qualityTier"`
	PrintSize   PrintSize   `json:"printSize"`
	SizeEntries []SizeEntry `json:"sizeEntries"`
}

// QuoteRequest asks for pricing of a set of selections
type QuoteRequest struct {
	Selections []VariantSelection `json:"selections"`
}

// QuoteLine is the priced breakdown for one selection
type QuoteLine struct {
	ItemID    string `json:"itemId"`
	BasePrice int64  `json:"basePrice"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"lineTotal"`
}

// QuoteResponse is the full pricing result for a selection set.
// Example:
// {
//   "lines": [{"itemId": "tshirt", "basePrice": 2000, "unitPrice": 3600, "quantity": 3, "lineTotal": 10800}],
//   "totalPrice": 10800,
//   "totalQuantity": 3,
//   "valid": true,
//   "problems": []
// }
type QuoteResponse struct {
	Lines         []QuoteLine `json:"lines"`
	TotalPrice    int64       `json:"totalPrice"`
	TotalQuantity int         `json:"totalQuantity"`
	Valid         bool        `json:"valid"`
	Problems      []string    `json:"problems"`
}

// PricingResponse mirrors the external pricing lookup contract
type PricingResponse struct {
	PrintSizePrices map[string]int64   `json:"printSizePrices"`
	QualityPrices   map[string]float64 `json:"qualityPrices"`
}
