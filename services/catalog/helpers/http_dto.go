package helpers

import (
	"catalog-engine/internal/extract"
	"catalog-engine/internal/models"

	"github.com/shopspring/decimal"
)

// Request/Response DTOs
type CreateItemRequest struct {
	Make         string            `json:"make" binding:"required"`
	Model        string            `json:"model" binding:"required"`
	Year         int               `json:"year" binding:"required"`
	BodyType     string            `json:"body_type"`
	FuelType     string            `json:"fuel_type"`
	Transmission string            `json:"transmission"`
	Color        string            `json:"color"`
	Price        decimal.Decimal   `json:"price"`
	Mileage      int64             `json:"mileage" binding:"gte=0"`
	Images       []string          `json:"images"`
	Description  string            `json:"description"`
	Status       models.ItemStatus `json:"status"`
	Featured     bool              `json:"featured"`
}

// ToItemInput converts the request body into service input
func (r CreateItemRequest) ToItemInput() models.ItemInput {
	return models.ItemInput{
		Make:         r.Make,
		Model:        r.Model,
		Year:         r.Year,
		BodyType:     r.BodyType,
		FuelType:     r.FuelType,
		Transmission: r.Transmission,
		Color:        r.Color,
		Price:        r.Price,
		Mileage:      r.Mileage,
		Images:       r.Images,
		Description:  r.Description,
		Status:       r.Status,
		Featured:     r.Featured,
	}
}

// UpdateItemRequest is a partial edit; absent fields keep their value
type UpdateItemRequest struct {
	Make         *string            `json:"make"`
	Model        *string            `json:"model"`
	Year         *int               `json:"year"`
	BodyType     *string            `json:"body_type"`
	FuelType     *string            `json:"fuel_type"`
	Transmission *string            `json:"transmission"`
	Color        *string            `json:"color"`
	Price        *decimal.Decimal   `json:"price"`
	Mileage      *int64             `json:"mileage" binding:"omitempty,gte=0"`
	Images       *[]string          `json:"images"`
	Description  *string            `json:"description"`
	Status       *models.ItemStatus `json:"status"`
	Featured     *bool              `json:"featured"`
}

// ToItemUpdate converts the request body into service input
func (r UpdateItemRequest) ToItemUpdate() models.ItemUpdate {
	return models.ItemUpdate{
		Make:         r.Make,
		Model:        r.Model,
		Year:         r.Year,
		BodyType:     r.BodyType,
		FuelType:     r.FuelType,
		Transmission: r.Transmission,
		Color:        r.Color,
		Price:        r.Price,
		Mileage:      r.Mileage,
		Images:       r.Images,
		Description:  r.Description,
		Status:       r.Status,
		Featured:     r.Featured,
	}
}

type ViewerRequest struct {
	Name string `json:"name"`
}

type ImageSearchResponse struct {
	Attributes extract.Attributes `json:"attributes"`
	Results    models.ItemPage    `json:"results"`
}

type HealthResponse struct {
	Mode string `json:"mode"`
}
