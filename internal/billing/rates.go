package billing

import (
	"fmt"

	"invoicegen/internal/domain"
)

// ResolveUnitPrice scans the rate table in its given order and returns the
// price of the first entry matching the provider API name: a flat entry
// matches unconditionally, a slab entry matches when the successful hit
// count falls inside [MinHits, MaxHits] (MaxHits 0 = unbounded above).
//
// Table order is the tie-break for overlapping slabs, so callers must pass
// the table exactly as loaded. No match returns 0: the historical rate card
// deliberately leaves some provider APIs unpriced.
func ResolveUnitPrice(successfulHits int, providerAPIName string, table []domain.RateCardEntry) float64 {
	price, _ := resolve(successfulHits, providerAPIName, table)
	return price
}

// ResolveUnitPriceStrict is ResolveUnitPrice with the zero-price fallback
// replaced by ErrNoRateMatch, for runs configured with strict rates.
func ResolveUnitPriceStrict(successfulHits int, providerAPIName string, table []domain.RateCardEntry) (float64, error) {
	price, ok := resolve(successfulHits, providerAPIName, table)
	if !ok {
		return 0, fmt.Errorf("%w: provider api %q, %d hits", domain.ErrNoRateMatch, providerAPIName, successfulHits)
	}
	return price, nil
}

func resolve(hits int, providerAPIName string, table []domain.RateCardEntry) (float64, bool) {
	for i := range table {
		entry := &table[i]
		if entry.ProviderAPIName != providerAPIName {
			continue
		}
		switch entry.PlanType {
		case domain.PlanTypeFlat:
			return entry.UnitPrice, true
		case domain.PlanTypeSlab:
			if entry.MinHits <= hits && (entry.MaxHits == 0 || hits <= entry.MaxHits) {
				return entry.UnitPrice, true
			}
		}
	}
	return 0, false
}
