package extract

import (
	"bytes"
	"catalog-engine/internal/catalogerrors"
	"catalog-engine/internal/query"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// MaxImageBytes is the largest upload accepted for attribute extraction
const MaxImageBytes = 5 << 20

var supportedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var codeFence = regexp.MustCompile("```(?:json)?\n?")

// Attributes is a best-effort guess of an item's properties from a photo.
// None of the values are trusted.
type Attributes struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         string  `json:"year"`
	Color        string  `json:"color"`
	BodyType     string  `json:"body_type"`
	FuelType     string  `json:"fuel_type"`
	Transmission string  `json:"transmission"`
	Price        string  `json:"price"`
	Mileage      string  `json:"mileage"`
	Description  string  `json:"description"`
	Confidence   float64 `json:"confidence"`
}

// RawFilter turns the guessed facets into untrusted listing filter input
func (a Attributes) RawFilter() query.RawFilter {
	return query.RawFilter{
		Make:         a.Make,
		BodyType:     a.BodyType,
		FuelType:     a.FuelType,
		Transmission: a.Transmission,
	}
}

// Extractor guesses item attributes from an image
type Extractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) (Attributes, error)
}

// Disabled is the Extractor used when no model is configured
type Disabled struct{}

// Extract always fails with catalogerrors.ErrExtractionUnavailable
func (Disabled) Extract(context.Context, []byte, string) (Attributes, error) {
	return Attributes{}, fmt.Errorf("extract: %w", catalogerrors.ErrExtractionUnavailable)
}

// CheckImage validates an upload and returns its effective MIME type. An
// empty mimeType is sniffed from the content.
func CheckImage(image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("extract: %w - empty image", catalogerrors.ErrExtractionFailed)
	}
	if len(image) > MaxImageBytes {
		return "", fmt.Errorf("extract: %w - image exceeds %d bytes", catalogerrors.ErrExtractionFailed, MaxImageBytes)
	}

	mimeType = strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]))
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(image)
	}
	if !supportedTypes[mimeType] {
		return "", fmt.Errorf("extract: %w - unsupported image type %q", catalogerrors.ErrExtractionFailed, mimeType)
	}
	return mimeType, nil
}

// ParseAttributes decodes a model reply. Markdown code fences are stripped
// and scalar fields may arrive as strings or numbers.
func ParseAttributes(text string) (Attributes, error) {
	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(text, ""))
	if cleaned == "" {
		return Attributes{}, fmt.Errorf("extract: %w - empty reply", catalogerrors.ErrExtractionFailed)
	}

	var reply struct {
		Make         looseString `json:"make"`
		Model        looseString `json:"model"`
		Year         looseString `json:"year"`
		Color        looseString `json:"color"`
		BodyType     looseString `json:"bodyType"`
		FuelType     looseString `json:"fuelType"`
		Transmission looseString `json:"transmission"`
		Price        looseString `json:"price"`
		Mileage      looseString `json:"mileage"`
		Description  looseString `json:"description"`
		Confidence   looseString `json:"confidence"`
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
	dec.UseNumber()
	if err := dec.Decode(&reply); err != nil {
		return Attributes{}, fmt.Errorf("extract: %w - %v", catalogerrors.ErrExtractionFailed, err)
	}

	attrs := Attributes{
		Make:         string(reply.Make),
		Model:        string(reply.Model),
		Year:         string(reply.Year),
		Color:        string(reply.Color),
		BodyType:     string(reply.BodyType),
		FuelType:     string(reply.FuelType),
		Transmission: string(reply.Transmission),
		Price:        string(reply.Price),
		Mileage:      string(reply.Mileage),
		Description:  string(reply.Description),
	}
	if c, err := strconv.ParseFloat(string(reply.Confidence), 64); err == nil && c >= 0 && c <= 1 {
		attrs.Confidence = c
	}
	return attrs, nil
}

// looseString accepts a JSON string, number, bool or null
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch t := v.(type) {
	case nil:
		*s = ""
	case string:
		*s = looseString(strings.TrimSpace(t))
	case json.Number:
		*s = looseString(t.String())
	case bool:
		*s = looseString(strconv.FormatBool(t))
	default:
		return fmt.Errorf("unsupported value %s", string(data))
	}
	return nil
}
