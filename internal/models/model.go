package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus is the lifecycle state of a catalog item
type ItemStatus string

const (
	StatusAvailable   ItemStatus = "AVAILABLE"
	StatusUnavailable ItemStatus = "UNAVAILABLE"
	StatusSold        ItemStatus = "SOLD"
)

// Valid reports whether s is one of the known lifecycle states
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusUnavailable, StatusSold:
		return true
	}
	return false
}

// Role is the privilege level of a viewer
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// SortKey selects the ordering of a listing
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
)

// Item represents a sellable catalog entry
type Item struct {
	ItemID       string          `json:"item_id"`
	Make         string          `json:"make"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	BodyType     string          `json:"body_type"`
	FuelType     string          `json:"fuel_type"`
	Transmission string          `json:"transmission"`
	Color        string          `json:"color"`
	Price        decimal.Decimal `json:"price"`
	Mileage      int64           `json:"mileage"`
	Images       []string        `json:"images"`
	Description  string          `json:"description"`
	Status       ItemStatus      `json:"status"`
	Featured     bool            `json:"featured"`
	CreatedAt    time.Time       `json:"created_at"`
	Saved        bool            `json:"saved"`
}

// Viewer represents the subject issuing a query or toggle
type Viewer struct {
	ViewerID  string    `json:"viewer_id"`
	Subject   string    `json:"subject"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedRelation joins one viewer and one item; its existence is the saved state
type SavedRelation struct {
	RelationID string    `json:"relation_id"`
	ViewerID   string    `json:"viewer_id"`
	ItemID     string    `json:"item_id"`
	SavedAt    time.Time `json:"saved_at"`
}

// FilterRequest is a normalized listing request. A nil MaxPrice means unbounded.
type FilterRequest struct {
	Search       string
	Make         string
	BodyType     string
	FuelType     string
	Transmission string
	MinPrice     decimal.Decimal
	MaxPrice     *decimal.Decimal
	SortBy       SortKey
	Page         int
	Limit        int
}

// PriceRange holds the observed price bounds of available items
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// FacetSummary lists the filter options currently offered by the catalog
type FacetSummary struct {
	Makes         []string   `json:"makes"`
	BodyTypes     []string   `json:"body_types"`
	FuelTypes     []string   `json:"fuel_types"`
	Transmissions []string   `json:"transmissions"`
	PriceRange    PriceRange `json:"price_range"`
}

// Clone returns a copy that shares no slices with f
func (f FacetSummary) Clone() FacetSummary {
	f.Makes = append([]string{}, f.Makes...)
	f.BodyTypes = append([]string{}, f.BodyTypes...)
	f.FuelTypes = append([]string{}, f.FuelTypes...)
	f.Transmissions = append([]string{}, f.Transmissions...)
	return f
}

// ItemPage is one page of a filtered listing
type ItemPage struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Pages int    `json:"pages"`
}

// Reservation is a viewer's booking on an item, owned by the scheduling side
type Reservation struct {
	ReservationID string    `json:"reservation_id"`
	Status        string    `json:"status"`
	BookingDate   time.Time `json:"booking_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
}

// WorkingHour is the opening window of a facility for one weekday
type WorkingHour struct {
	DayOfWeek string `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsOpen    bool   `json:"is_open"`
}

// Facility is the availability metadata shown next to an item
type Facility struct {
	FacilityID   string        `json:"facility_id"`
	Name         string        `json:"name"`
	Address      string        `json:"address"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email"`
	WorkingHours []WorkingHour `json:"working_hours"`
}

// ItemDetail is a single item enriched with viewer and facility context
type ItemDetail struct {
	Item
	Reservation *Reservation `json:"reservation"`
	Facility    *Facility    `json:"facility"`
}

// ToggleResult reports the saved state after a toggle
type ToggleResult struct {
	ItemID string `json:"item_id"`
	Saved  bool   `json:"saved"`
}

// ViewerProfile is a viewer together with their saved item count
type ViewerProfile struct {
	Viewer
	SavedCount int `json:"saved_count"`
}

// ItemInput carries the fields of a new catalog item
type ItemInput struct {
	Make         string
	Model        string
	Year         int
	BodyType     string
	FuelType     string
	Transmission string
	Color        string
	Price        decimal.Decimal
	Mileage      int64
	Images       []string
	Description  string
	Status       ItemStatus
	Featured     bool
}

// ItemUpdate is a partial change to an item; nil fields are left untouched.
// Images replaces the whole image set.
type ItemUpdate struct {
	Make         *string
	Model        *string
	Year         *int
	BodyType     *string
	FuelType     *string
	Transmission *string
	Color        *string
	Price        *decimal.Decimal
	Mileage      *int64
	Images       *[]string
	Description  *string
	Status       *ItemStatus
	Featured     *bool
}

// Empty reports whether the update changes nothing
func (u ItemUpdate) Empty() bool {
	return u == ItemUpdate{}
}

// Apply returns item with the update's non-nil fields applied
func (u ItemUpdate) Apply(item Item) Item {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&item.Make, u.Make)
	set(&item.Model, u.Model)
	set(&item.BodyType, u.BodyType)
	set(&item.FuelType, u.FuelType)
	set(&item.Transmission, u.Transmission)
	set(&item.Color, u.Color)
	set(&item.Description, u.Description)

	if u.Year != nil {
		item.Year = *u.Year
	}
	if u.Price != nil {
		item.Price = *u.Price
	}
	if u.Mileage != nil {
		item.Mileage = *u.Mileage
	}
	if u.Images != nil {
		item.Images = append([]string{}, (*u.Images)...)
	}
	if u.Status != nil {
		item.Status = *u.Status
	}
	if u.Featured != nil {
		item.Featured = *u.Featured
	}
	return item
}

// Input returns the item's editable fields
func (it Item) Input() ItemInput {
	return ItemInput{
		Make:         it.Make,
		Model:        it.Model,
		Year:         it.Year,
		BodyType:     it.BodyType,
		FuelType:     it.FuelType,
		Transmission: it.Transmission,
		Color:        it.Color,
		Price:        it.Price,
		Mileage:      it.Mileage,
		Images:       it.Images,
		Description:  it.Description,
		Status:       it.Status,
		Featured:     it.Featured,
	}
}
