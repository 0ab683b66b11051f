package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockup-studio/models"
)

func TestDefaultRateTableValues(t *testing.T) {
	table := DefaultRateTable()

	assert.Equal(t, int64(500), table.Surcharge(models.PrintSizeBadge))
	assert.Equal(t, int64(800), table.Surcharge(models.PrintSizeA4))
	assert.Equal(t, int64(1200), table.Surcharge(models.PrintSizeA3))
	assert.Equal(t, int64(1800), table.Surcharge(models.PrintSizeA2))
	assert.Equal(t, int64(2500), table.Surcharge(models.PrintSizeA1))

	assert.Equal(t, 1.0, table.Multiplier(models.QualityStandard))
	assert.Equal(t, 1.4, table.Multiplier(models.QualityPremium))
	assert.Equal(t, 1.75, table.Multiplier(models.QualityLuxury))
}

func TestRateTableFallbacks(t *testing.T) {
	table := DefaultRateTable()

	// Unknown print sizes price as A4, unknown tiers as Standard.
	assert.Equal(t, int64(800), table.Surcharge("A0"))
	assert.Equal(t, 1.0, table.Multiplier("Platinum"))
}

func TestLoadRateTableMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"printSizePrices": {"A4": 900, "A0": 3000},
		"qualityMultipliers": {"Premium": 1.5}
	}`), 0o644))

	table, err := LoadRateTable(path)
	require.NoError(t, err)

	// Overridden entries.
	assert.Equal(t, int64(900), table.Surcharge(models.PrintSizeA4))
	assert.Equal(t, int64(3000), table.Surcharge("A0"))
	assert.Equal(t, 1.5, table.Multiplier(models.QualityPremium))

	// Everything the file does not name keeps its default.
	assert.Equal(t, int64(500), table.Surcharge(models.PrintSizeBadge))
	assert.Equal(t, 1.75, table.Multiplier(models.QualityLuxury))
}

func TestLoadRateTableMissingFileReturnsDefaults(t *testing.T) {
	table, err := LoadRateTable(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	// The returned table is still usable.
	assert.Equal(t, int64(800), table.Surcharge(models.PrintSizeA4))
	assert.Equal(t, 1.0, table.Multiplier(models.QualityStandard))
}

func TestLoadRateTableBadJSONReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	table, err := LoadRateTable(path)
	require.Error(t, err)
	assert.Equal(t, int64(800), table.Surcharge(models.PrintSizeA4))
}
