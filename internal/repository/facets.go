package repository

import (
	"catalog-engine/internal/models"
	"sort"

	"github.com/shopspring/decimal"
)

// Price bounds reported when no item is available
var (
	DefaultMinPrice = decimal.Zero
	DefaultMaxPrice = decimal.NewFromInt(10_000_000)
)

// SummarizeFacets computes the facet summary over the AVAILABLE items in items
func SummarizeFacets(items []models.Item) models.FacetSummary {
	var makes, bodies, fuels, transmissions []string
	var lo, hi decimal.NullDecimal

	for _, it := range items {
		if it.Status != models.StatusAvailable {
			continue
		}
		makes = append(makes, it.Make)
		bodies = append(bodies, it.BodyType)
		fuels = append(fuels, it.FuelType)
		transmissions = append(transmissions, it.Transmission)

		if !lo.Valid || it.Price.LessThan(lo.Decimal) {
			lo = decimal.NewNullDecimal(it.Price)
		}
		if !hi.Valid || it.Price.GreaterThan(hi.Decimal) {
			hi = decimal.NewNullDecimal(it.Price)
		}
	}

	return models.FacetSummary{
		Makes:         sortedDistinct(makes),
		BodyTypes:     sortedDistinct(bodies),
		FuelTypes:     sortedDistinct(fuels),
		Transmissions: sortedDistinct(transmissions),
		PriceRange:    priceRange(lo, hi),
	}
}

// priceRange falls back to the default bounds when nothing was observed
func priceRange(lo, hi decimal.NullDecimal) models.PriceRange {
	if !lo.Valid || !hi.Valid {
		return models.PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice}
	}
	return models.PriceRange{Min: lo.Decimal, Max: hi.Decimal}
}

// sortedDistinct drops empty and repeated values and sorts the rest by byte order
func sortedDistinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
