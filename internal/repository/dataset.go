package repository

import (
	"catalog-engine/internal/models"
	_ "embed"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed dataset.yaml
var datasetYAML []byte

// Dataset is the fixed catalog behind the static backend and the seed command
type Dataset struct {
	Items         []models.Item
	Facility      models.Facility
	DefaultFacets models.FacetSummary
}

type datasetFile struct {
	Items         []itemRecord   `yaml:"items"`
	Facility      facilityRecord `yaml:"facility"`
	DefaultFacets facetsRecord   `yaml:"default_facets"`
}

type itemRecord struct {
	ID           string   `yaml:"id"`
	Make         string   `yaml:"make"`
	Model        string   `yaml:"model"`
	Year         int      `yaml:"year"`
	BodyType     string   `yaml:"body_type"`
	FuelType     string   `yaml:"fuel_type"`
	Transmission string   `yaml:"transmission"`
	Color        string   `yaml:"color"`
	Price        string   `yaml:"price"`
	Mileage      int64    `yaml:"mileage"`
	Images       []string `yaml:"images"`
	Description  string   `yaml:"description"`
	Status       string   `yaml:"status"`
	Featured     bool     `yaml:"featured"`
	CreatedAt    string   `yaml:"created_at"`
}

type facilityRecord struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Address      string `yaml:"address"`
	Phone        string `yaml:"phone"`
	Email        string `yaml:"email"`
	WorkingHours []struct {
		DayOfWeek string `yaml:"day_of_week"`
		OpenTime  string `yaml:"open_time"`
		CloseTime string `yaml:"close_time"`
		IsOpen    bool   `yaml:"is_open"`
	} `yaml:"working_hours"`
}

type facetsRecord struct {
	Makes         []string `yaml:"makes"`
	BodyTypes     []string `yaml:"body_types"`
	FuelTypes     []string `yaml:"fuel_types"`
	Transmissions []string `yaml:"transmissions"`
	PriceRange    struct {
		Min string `yaml:"min"`
		Max string `yaml:"max"`
	} `yaml:"price_range"`
}

// DefaultDataset parses the embedded dataset
func DefaultDataset() (Dataset, error) {
	return ParseDataset(datasetYAML)
}

// MustDefaultDataset is DefaultDataset for program start-up; it panics on a broken build
func MustDefaultDataset() Dataset {
	ds, err := DefaultDataset()
	if err != nil {
		panic(err)
	}
	return ds
}

// ParseDataset decodes a YAML dataset document
func ParseDataset(data []byte) (Dataset, error) {
	var file datasetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset: %w", err)
	}

	ds := Dataset{Items: make([]models.Item, 0, len(file.Items))}
	seen := make(map[string]struct{}, len(file.Items))
	for _, rec := range file.Items {
		item, err := rec.toItem()
		if err != nil {
			return Dataset{}, fmt.Errorf("parse dataset: item %q: %w", rec.ID, err)
		}
		if _, dup := seen[item.ItemID]; dup {
			return Dataset{}, fmt.Errorf("parse dataset: duplicate item id %q", item.ItemID)
		}
		seen[item.ItemID] = struct{}{}
		ds.Items = append(ds.Items, item)
	}

	ds.Facility = models.Facility{
		FacilityID:   file.Facility.ID,
		Name:         file.Facility.Name,
		Address:      file.Facility.Address,
		Phone:        file.Facility.Phone,
		Email:        file.Facility.Email,
		WorkingHours: make([]models.WorkingHour, 0, len(file.Facility.WorkingHours)),
	}
	for _, wh := range file.Facility.WorkingHours {
		ds.Facility.WorkingHours = append(ds.Facility.WorkingHours, models.WorkingHour{
			DayOfWeek: wh.DayOfWeek,
			OpenTime:  wh.OpenTime,
			CloseTime: wh.CloseTime,
			IsOpen:    wh.IsOpen,
		})
	}

	facets, err := file.DefaultFacets.toSummary()
	if err != nil {
		return Dataset{}, fmt.Errorf("parse dataset: default facets: %w", err)
	}
	ds.DefaultFacets = facets

	return ds, nil
}

func (rec itemRecord) toItem() (models.Item, error) {
	if rec.ID == "" {
		return models.Item{}, fmt.Errorf("missing id")
	}
	price, err := decimal.NewFromString(rec.Price)
	if err != nil {
		return models.Item{}, fmt.Errorf("price: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
	if err != nil {
		return models.Item{}, fmt.Errorf("created_at: %w", err)
	}
	status := models.ItemStatus(rec.Status)
	if !status.Valid() {
		return models.Item{}, fmt.Errorf("unknown status %q", rec.Status)
	}

	return models.Item{
		ItemID:       rec.ID,
		Make:         rec.Make,
		Model:        rec.Model,
		Year:         rec.Year,
		BodyType:     rec.BodyType,
		FuelType:     rec.FuelType,
		Transmission: rec.Transmission,
		Color:        rec.Color,
		Price:        price,
		Mileage:      rec.Mileage,
		Images:       append([]string{}, rec.Images...),
		Description:  rec.Description,
		Status:       status,
		Featured:     rec.Featured,
		CreatedAt:    createdAt.UTC(),
	}, nil
}

func (rec facetsRecord) toSummary() (models.FacetSummary, error) {
	lo, err := decimal.NewFromString(rec.PriceRange.Min)
	if err != nil {
		return models.FacetSummary{}, fmt.Errorf("price_range.min: %w", err)
	}
	hi, err := decimal.NewFromString(rec.PriceRange.Max)
	if err != nil {
		return models.FacetSummary{}, fmt.Errorf("price_range.max: %w", err)
	}
	return models.FacetSummary{
		Makes:         sortedDistinct(rec.Makes),
		BodyTypes:     sortedDistinct(rec.BodyTypes),
		FuelTypes:     sortedDistinct(rec.FuelTypes),
		Transmissions: sortedDistinct(rec.Transmissions),
		PriceRange:    models.PriceRange{Min: lo, Max: hi},
	}, nil
}
