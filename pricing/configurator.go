package pricing

import (
	"context"
	"fmt"
	"math"

	"mockup-studio/models"
)

// PriceSource resolves a catalog item's base price. The catalog repository
// implements it; tests use a map-backed stub.
type PriceSource interface {
	BasePrice(ctx context.Context, itemID string) (int64, error)
}

// sizeOptionsByGender is the fixed gender to size-option mapping. Pure
// lookup, no computation.
var sizeOptionsByGender = map[models.Gender][]string{
	models.GenderMale:   {"S", "M", "L", "XL", "XXL", "3XL", models.SizeOther},
	models.GenderFemale: {"8", "10", "12", "14", "16", "18", "20", "22", models.SizeOther},
	models.GenderUnisex: {"XS", "S", "M", "L", "XL", "XXL", "3XL", models.SizeOther},
}

// SizeOptions returns the size options for a gender, defaulting to unisex
// for unknown values
func SizeOptions(gender models.Gender) []string {
	opts, ok := sizeOptionsByGender[gender]
	if !ok {
		opts = sizeOptionsByGender[models.GenderUnisex]
	}
	out := make([]string, len(opts))
	copy(out, opts)
	return out
}

// Configurator maintains an ordered list of variant selections and computes
// deterministic totals over them. Like a canvas session it is a per-request
// value: one goroutine, no locks.
type Configurator struct {
	rates      RateTable
	selections []models.VariantSelection
}

// NewConfigurator creates an empty configurator over a rate table
func NewConfigurator(rates RateTable) *Configurator {
	return &Configurator{rates: rates}
}

// Selections returns the current selection list in order
func (c *Configurator) Selections() []models.VariantSelection {
	out := make([]models.VariantSelection, len(c.selections))
	copy(out, c.selections)
	return out
}

// SetSelections replaces the selection list, e.g. from a quote request body
func (c *Configurator) SetSelections(selections []models.VariantSelection) {
	c.selections = selections
}

func (c *Configurator) indexOf(itemID string) int {
	for i, sel := range c.selections {
		if sel.ItemID == itemID {
			return i
		}
	}
	return -1
}

// ToggleItem adds a selection with defaults (male, Standard, A4, no size
// entries) when the item is absent, and removes it with all its entries when
// present. Calling twice restores the prior state exactly.
func (c *Configurator) ToggleItem(itemID string) {
	if i := c.indexOf(itemID); i >= 0 {
		c.selections = append(c.selections[:i], c.selections[i+1:]...)
		return
	}
	c.selections = append(c.selections, models.VariantSelection{
		ItemID:      itemID,
		Gender:      models.GenderMale,
		QualityTier: models.QualityStandard,
		PrintSize:   models.PrintSizeA4,
		SizeEntries: []models.SizeEntry{},
	})
}

// AddSizeEntry appends an empty entry to the item's selection. No-op when
// the item is not selected.
func (c *Configurator) AddSizeEntry(itemID string) {
	i := c.indexOf(itemID)
	if i < 0 {
		return
	}
	c.selections[i].SizeEntries = append(c.selections[i].SizeEntries, models.SizeEntry{})
}

// UpdateSizeEntry mutates one field of one entry. A stale itemID or index is
// a benign no-op: UI re-renders race with removal.
func (c *Configurator) UpdateSizeEntry(itemID string, index int, field, value string) {
	i := c.indexOf(itemID)
	if i < 0 || index < 0 || index >= len(c.selections[i].SizeEntries) {
		return
	}
	entry := &c.selections[i].SizeEntries[index]
	switch field {
	case "size":
		entry.Size = value
	case "customSizeLabel":
		entry.CustomSizeLabel = value
	case "color":
		entry.Color = value
	case "quantity":
		entry.Quantity = value
	}
}

// RemoveSizeEntry removes one entry; no-op on stale itemID/index
func (c *Configurator) RemoveSizeEntry(itemID string, index int) {
	i := c.indexOf(itemID)
	if i < 0 || index < 0 || index >= len(c.selections[i].SizeEntries) {
		return
	}
	entries := c.selections[i].SizeEntries
	c.selections[i].SizeEntries = append(entries[:index], entries[index+1:]...)
}

// UpdateSelection changes the gender, quality tier or print size of a
// selected item; empty values leave the field unchanged
func (c *Configurator) UpdateSelection(itemID string, gender models.Gender, tier models.QualityTier, size models.PrintSize) {
	i := c.indexOf(itemID)
	if i < 0 {
		return
	}
	if gender != "" {
		c.selections[i].Gender = gender
	}
	if tier != "" {
		c.selections[i].QualityTier = tier
	}
	if size != "" {
		c.selections[i].PrintSize = size
	}
}

// UnitPrice computes basePrice * qualityMultiplier + printSizeSurcharge,
// rounded to the nearest unit
func (c *Configurator) UnitPrice(sel models.VariantSelection, basePrice int64) int64 {
	scaled := int64(math.Round(float64(basePrice) * c.rates.Multiplier(sel.QualityTier)))
	return scaled + c.rates.Surcharge(sel.PrintSize)
}

// TotalQuantity sums every entry quantity across every selection
func TotalQuantity(selections []models.VariantSelection) int {
	total := 0
	for _, sel := range selections {
		for _, entry := range sel.SizeEntries {
			total += entry.Units()
		}
	}
	return total
}

// Quote prices the current selections against the price source and returns
// the full breakdown. It is additive over disjoint selection sets.
func (c *Configurator) Quote(ctx context.Context, source PriceSource) (*models.QuoteResponse, error) {
	resp := &models.QuoteResponse{
		Lines:    []models.QuoteLine{},
		Problems: []string{},
	}

	for _, sel := range c.selections {
		base, err := source.BasePrice(ctx, sel.ItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up base price for %s: %w", sel.ItemID, err)
		}
		unit := c.UnitPrice(sel, base)

		qty := 0
		for _, entry := range sel.SizeEntries {
			qty += entry.Units()
		}

		line := models.QuoteLine{
			ItemID:    sel.ItemID,
			BasePrice: base,
			UnitPrice: unit,
			Quantity:  qty,
			LineTotal: unit * int64(qty),
		}
		resp.Lines = append(resp.Lines, line)
		resp.TotalPrice += line.LineTotal
		resp.TotalQuantity += qty
	}

	resp.Problems = ValidateForSubmission(c.selections)
	resp.Valid = len(resp.Problems) == 0
	return resp, nil
}

// ValidateForSubmission enforces the pre-submission rules: every selected
// item needs at least one entry with quantity > 0, and every "Other" entry
// needs a custom size label.
func ValidateForSubmission(selections []models.VariantSelection) []string {
	problems := []string{}
	if len(selections) == 0 {
		problems = append(problems, "no items selected")
		return problems
	}
	for _, sel := range selections {
		hasUnits := false
		for j, entry := range sel.SizeEntries {
			if entry.Units() > 0 {
				hasUnits = true
			}
			if entry.Size == models.SizeOther && entry.CustomSizeLabel == "" {
				problems = append(problems, fmt.Sprintf("%s: size entry %d needs a custom size label", sel.ItemID, j+1))
			}
		}
		if !hasUnits {
			problems = append(problems, fmt.Sprintf("%s: needs at least one size entry with quantity greater than 0", sel.ItemID))
		}
	}
	return problems
}
