package pricing

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"mockup-studio/models"
)

// RateTable holds the two lookup tables a unit price is computed from:
// per-print-size surcharges and per-quality-tier multipliers.
type RateTable struct {
	PrintSizePrices    map[models.PrintSize]int64     `json:"printSizePrices"`
	QualityMultipliers map[models.QualityTier]float64 `json:"qualityMultipliers"`
}

// DefaultRateTable returns the hardcoded fallback rates used when no config
// file and no pricing rows are available. The service keeps quoting with
// these; a missing pricing source is never fatal.
func DefaultRateTable() RateTable {
	return RateTable{
		PrintSizePrices: map[models.PrintSize]int64{
			models.PrintSizeBadge: 500,
			models.PrintSizeA4:    800,
			models.PrintSizeA3:    1200,
			models.PrintSizeA2:    1800,
			models.PrintSizeA1:    2500,
		},
		QualityMultipliers: map[models.QualityTier]float64{
			models.QualityStandard: 1.0,
			models.QualityPremium:  1.4,
			models.QualityLuxury:   1.75,
		},
	}
}

// Surcharge returns the print-size surcharge, falling back to the A4 rate
// for unknown sizes
func (t RateTable) Surcharge(size models.PrintSize) int64 {
	if v, ok := t.PrintSizePrices[size]; ok {
		return v
	}
	return t.PrintSizePrices[models.PrintSizeA4]
}

// Multiplier returns the quality multiplier, falling back to Standard
func (t RateTable) Multiplier(tier models.QualityTier) float64 {
	if v, ok := t.QualityMultipliers[tier]; ok {
		return v
	}
	return 1.0
}

// LoadRateTable reads a JSON rate config and merges it over the defaults,
// so a partial file only overrides what it names
func LoadRateTable(configPath string) (RateTable, error) {
	table := DefaultRateTable()

	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return table, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return table, fmt.Errorf("failed to read rate config: %w", err)
	}

	var fromFile RateTable
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return table, fmt.Errorf("failed to parse rate config: %w", err)
	}

	for size, price := range fromFile.PrintSizePrices {
		table.PrintSizePrices[size] = price
	}
	for tier, mult := range fromFile.QualityMultipliers {
		table.QualityMultipliers[tier] = mult
	}

	log.Printf("✅ Pricing: loaded rate config from %s", configPath)
	return table, nil
}
