package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/domain"
)

func slab(api string, min, max int, price float64) domain.RateCardEntry {
	return domain.RateCardEntry{
		ProviderAPIName: api, PlanType: domain.PlanTypeSlab,
		MinHits: min, MaxHits: max, UnitPrice: price,
	}
}

func TestResolveUnitPriceFlat(t *testing.T) {
	table := []domain.RateCardEntry{
		{ProviderAPIName: "aadhaar-ocr", PlanType: domain.PlanTypeFlat, UnitPrice: 2.25},
	}

	// Flat entries match any hit count, including zero.
	assert.Equal(t, 2.25, ResolveUnitPrice(0, "aadhaar-ocr", table))
	assert.Equal(t, 2.25, ResolveUnitPrice(1, "aadhaar-ocr", table))
	assert.Equal(t, 2.25, ResolveUnitPrice(10_000_000, "aadhaar-ocr", table))
}

func TestResolveUnitPriceSlabBounds(t *testing.T) {
	table := []domain.RateCardEntry{
		slab("pan-verify-v2", 1, 1000, 4.50),
		slab("pan-verify-v2", 1001, 0, 3.00),
	}

	assert.Equal(t, 0.0, ResolveUnitPrice(0, "pan-verify-v2", table), "below first slab")
	assert.Equal(t, 4.50, ResolveUnitPrice(1, "pan-verify-v2", table), "inclusive lower bound")
	assert.Equal(t, 4.50, ResolveUnitPrice(1000, "pan-verify-v2", table), "inclusive upper bound")
	assert.Equal(t, 3.00, ResolveUnitPrice(1001, "pan-verify-v2", table))
	assert.Equal(t, 3.00, ResolveUnitPrice(10_000_000, "pan-verify-v2", table), "unbounded slab")
}

func TestResolveUnitPriceZeroZeroSlabIsUnbounded(t *testing.T) {
	table := []domain.RateCardEntry{slab("esign", 0, 0, 7.00)}

	assert.Equal(t, 7.00, ResolveUnitPrice(0, "esign", table))
	assert.Equal(t, 7.00, ResolveUnitPrice(1, "esign", table))
	assert.Equal(t, 7.00, ResolveUnitPrice(1<<40, "esign", table))
}

func TestResolveUnitPriceFirstMatchWins(t *testing.T) {
	// Overlapping slabs: table order decides.
	table := []domain.RateCardEntry{
		slab("pan-verify-v2", 1, 5000, 4.50),
		slab("pan-verify-v2", 1, 1000, 9.99),
	}
	assert.Equal(t, 4.50, ResolveUnitPrice(500, "pan-verify-v2", table))
}

func TestResolveUnitPriceNoMatchIsZero(t *testing.T) {
	table := []domain.RateCardEntry{slab("pan-verify-v2", 1, 1000, 4.50)}

	assert.Equal(t, 0.0, ResolveUnitPrice(100, "unknown-api", table))
	assert.Equal(t, 0.0, ResolveUnitPrice(100, "pan-verify-v2", nil))
}

func TestResolveUnitPriceStrict(t *testing.T) {
	table := []domain.RateCardEntry{slab("pan-verify-v2", 1, 1000, 4.50)}

	v, err := ResolveUnitPriceStrict(100, "pan-verify-v2", table)
	require.NoError(t, err)
	assert.Equal(t, 4.50, v)

	_, err = ResolveUnitPriceStrict(100, "unknown-api", table)
	assert.ErrorIs(t, err, domain.ErrNoRateMatch)
}
