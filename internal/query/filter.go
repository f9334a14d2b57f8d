package query

import (
	"catalog-engine/internal/models"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Paging defaults applied when a request leaves them out
const (
	DefaultPage  = 1
	DefaultLimit = 6
	MaxLimit     = 100
)

// MaxPage bounds the page number so that the offset (page-1)*limit stays
// within 32 bits for every accepted limit.
const MaxPage = math.MaxInt32/MaxLimit + 1

// RawFilter carries untrusted filter input as plain strings, e.g. URL query
// values or attributes guessed from an image. Nothing in it is validated yet.
type RawFilter struct {
	Search       string
	Make         string
	BodyType     string
	FuelType     string
	Transmission string
	MinPrice     string
	MaxPrice     string
	SortBy       string
	Page         string
	Limit        string
}

// Merge returns r with every empty field taken from other
func (r RawFilter) Merge(other RawFilter) RawFilter {
	pick := func(a, b string) string {
		if strings.TrimSpace(a) != "" {
			return a
		}
		return b
	}
	return RawFilter{
		Search:       pick(r.Search, other.Search),
		Make:         pick(r.Make, other.Make),
		BodyType:     pick(r.BodyType, other.BodyType),
		FuelType:     pick(r.FuelType, other.FuelType),
		Transmission: pick(r.Transmission, other.Transmission),
		MinPrice:     pick(r.MinPrice, other.MinPrice),
		MaxPrice:     pick(r.MaxPrice, other.MaxPrice),
		SortBy:       pick(r.SortBy, other.SortBy),
		Page:         pick(r.Page, other.Page),
		Limit:        pick(r.Limit, other.Limit),
	}
}

// ParseFilter converts raw input into a FilterRequest. Malformed values are
// replaced by their defaults instead of being reported.
func ParseFilter(raw RawFilter) models.FilterRequest {
	req := models.FilterRequest{
		Search:       strings.TrimSpace(raw.Search),
		Make:         strings.TrimSpace(raw.Make),
		BodyType:     strings.TrimSpace(raw.BodyType),
		FuelType:     strings.TrimSpace(raw.FuelType),
		Transmission: strings.TrimSpace(raw.Transmission),
		MinPrice:     decimal.Zero,
		SortBy:       ParseSortKey(raw.SortBy),
		Page:         parseInt(raw.Page),
		Limit:        parseInt(raw.Limit),
	}

	if minPrice, ok := parseDecimal(raw.MinPrice); ok {
		req.MinPrice = minPrice
	}
	if maxPrice, ok := parseDecimal(raw.MaxPrice); ok {
		req.MaxPrice = &maxPrice
	}

	return Normalize(req)
}

// Normalize applies defaults and clamps to a FilterRequest
func Normalize(req models.FilterRequest) models.FilterRequest {
	if req.MinPrice.IsNegative() {
		req.MinPrice = decimal.Zero
	}
	if req.MaxPrice != nil && req.MaxPrice.IsNegative() {
		req.MaxPrice = nil
	}

	req.SortBy = ParseSortKey(string(req.SortBy))

	switch {
	case req.Page == 0:
		req.Page = DefaultPage
	case req.Page < 1:
		req.Page = 1
	case req.Page > MaxPage:
		req.Page = MaxPage
	}

	switch {
	case req.Limit == 0:
		req.Limit = DefaultLimit
	case req.Limit < 1:
		req.Limit = 1
	case req.Limit > MaxLimit:
		req.Limit = MaxLimit
	}

	return req
}

// ParseSortKey maps a sort name onto a known key, defaulting to newest
func ParseSortKey(s string) models.SortKey {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(models.SortPriceAsc)):
		return models.SortPriceAsc
	case strings.EqualFold(strings.TrimSpace(s), string(models.SortPriceDesc)):
		return models.SortPriceDesc
	default:
		return models.SortNewest
	}
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if errors.Is(err, strconv.ErrRange) {
		// saturated at the int bounds; Normalize clamps it
		return n
	}
	if err != nil {
		return 0
	}
	return n
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
