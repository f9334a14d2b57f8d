package query

import (
	"catalog-engine/internal/models"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Field names an item attribute; the value doubles as its column name.
type Field string

const (
	FieldID           Field = "id"
	FieldMake         Field = "make"
	FieldModel        Field = "model"
	FieldDescription  Field = "description"
	FieldBodyType     Field = "body_type"
	FieldFuelType     Field = "fuel_type"
	FieldTransmission Field = "transmission"
	FieldColor        Field = "color"
	FieldPrice        Field = "price"
	FieldStatus       Field = "status"
	FieldCreatedAt    Field = "created_at"
)

// SearchFields are matched case-insensitively, OR-ed, by the free-text term.
var SearchFields = []Field{FieldMake, FieldModel, FieldDescription}

// AdminSearchFields are matched by the management listing
var AdminSearchFields = []Field{FieldMake, FieldModel, FieldColor}

// FoldedFields are stored a second time in folded form so that every backend
// compares text with the same Unicode case folding.
var FoldedFields = []Field{
	FieldMake, FieldModel, FieldColor, FieldDescription,
	FieldBodyType, FieldFuelType, FieldTransmission,
}

// Folded returns the column holding the folded copy of f
func (f Field) Folded() string {
	return string(f) + "_folded"
}

// Fold applies NFC normalization and Unicode case folding, so "ŠKODA" and
// "škoda" compare equal however their accents were encoded
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Equal is a case-insensitive equality constraint. Value is already folded.
type Equal struct {
	Field Field
	Value string
}

// OrderTerm is one key of the listing order
type OrderTerm struct {
	Field Field
	Desc  bool
}

// Plan is a normalized listing query: a predicate over items, a total order
// and a page window. Both backends evaluate the same Plan.
type Plan struct {
	Status       models.ItemStatus // empty matches every status
	Search       string
	SearchFields []Field
	Facets       []Equal
	MinPrice     decimal.Decimal
	MaxPrice     *decimal.Decimal
	Order        []OrderTerm
	Page         int
	Limit        int
	Offset       int
}

// Build normalizes a FilterRequest and turns it into a Plan for public listings.
// The AVAILABLE status constraint is always injected.
func Build(req models.FilterRequest) Plan {
	req = Normalize(req)

	plan := Plan{
		Status:       models.StatusAvailable,
		Search:       Fold(strings.TrimSpace(req.Search)),
		SearchFields: SearchFields,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		Order:        orderFor(req.SortBy),
		Page:         req.Page,
		Limit:        req.Limit,
		Offset:       (req.Page - 1) * req.Limit,
	}

	// fixed facet order keeps the plan independent of how filters were supplied
	facets := []Equal{
		{Field: FieldMake, Value: req.Make},
		{Field: FieldBodyType, Value: req.BodyType},
		{Field: FieldFuelType, Value: req.FuelType},
		{Field: FieldTransmission, Value: req.Transmission},
	}
	for _, f := range facets {
		v := Fold(strings.TrimSpace(f.Value))
		if v == "" {
			continue
		}
		plan.Facets = append(plan.Facets, Equal{Field: f.Field, Value: v})
	}

	return plan
}

// BuildAdmin turns a management listing request into a Plan over items of
// every status. search matches make, model and color; the order is newest first.
func BuildAdmin(search string, page, limit int) Plan {
	req := Normalize(models.FilterRequest{Page: page, Limit: limit})
	return Plan{
		Search:       Fold(strings.TrimSpace(search)),
		SearchFields: AdminSearchFields,
		MinPrice:     req.MinPrice,
		Order:        orderFor(models.SortNewest),
		Page:         req.Page,
		Limit:        req.Limit,
		Offset:       (req.Page - 1) * req.Limit,
	}
}

// Window returns the [start, end) slice bounds of the plan's page over total
// matches. ok is false when the page lies past the end.
func (p Plan) Window(total int) (start, end int, ok bool) {
	if p.Offset < 0 || p.Offset >= total {
		return 0, 0, false
	}
	end = total
	if p.Limit < total-p.Offset {
		end = p.Offset + p.Limit
	}
	return p.Offset, end, true
}

// searchFields returns the fields the free-text term is matched against
func (p Plan) searchFields() []Field {
	if len(p.SearchFields) == 0 {
		return SearchFields
	}
	return p.SearchFields
}

// orderFor returns the sort key followed by the created_at/id tiebreakers
func orderFor(key models.SortKey) []OrderTerm {
	switch key {
	case models.SortPriceAsc:
		return []OrderTerm{{Field: FieldPrice}, {Field: FieldCreatedAt, Desc: true}, {Field: FieldID}}
	case models.SortPriceDesc:
		return []OrderTerm{{Field: FieldPrice, Desc: true}, {Field: FieldCreatedAt, Desc: true}, {Field: FieldID}}
	default:
		return []OrderTerm{{Field: FieldCreatedAt, Desc: true}, {Field: FieldID}}
	}
}

// Matches reports whether item satisfies the plan's predicate
func (p Plan) Matches(item models.Item) bool {
	if p.Status != "" && item.Status != p.Status {
		return false
	}

	if p.Search != "" {
		found := false
		for _, f := range p.searchFields() {
			if strings.Contains(Fold(FieldText(item, f)), p.Search) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for _, eq := range p.Facets {
		if Fold(FieldText(item, eq.Field)) != eq.Value {
			return false
		}
	}

	if item.Price.LessThan(p.MinPrice) {
		return false
	}
	if p.MaxPrice != nil && item.Price.GreaterThan(*p.MaxPrice) {
		return false
	}

	return true
}

// Compare orders two items by the plan's order terms, returning -1, 0 or +1
func (p Plan) Compare(a, b models.Item) int {
	for _, term := range p.Order {
		var c int
		switch term.Field {
		case FieldPrice:
			c = a.Price.Cmp(b.Price)
		case FieldCreatedAt:
			c = a.CreatedAt.Compare(b.CreatedAt)
		case FieldID:
			c = strings.Compare(a.ItemID, b.ItemID)
		default:
			c = strings.Compare(FieldText(a, term.Field), FieldText(b, term.Field))
		}
		if term.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// Pages returns ceil(total/limit), or 0 when nothing matched
func Pages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// FieldText returns the text value of f on item, or "" for non-text fields
func FieldText(item models.Item, f Field) string {
	switch f {
	case FieldID:
		return item.ItemID
	case FieldMake:
		return item.Make
	case FieldModel:
		return item.Model
	case FieldDescription:
		return item.Description
	case FieldBodyType:
		return item.BodyType
	case FieldFuelType:
		return item.FuelType
	case FieldTransmission:
		return item.Transmission
	case FieldColor:
		return item.Color
	case FieldStatus:
		return string(item.Status)
	default:
		return ""
	}
}
