package extract

import (
	"catalog-engine/internal/catalogerrors"
	"catalog-engine/utils"
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const prompt = `
Analyze this car image and extract the following information:
1. Make (manufacturer)
2. Model
3. Year (approximately)
4. Color
5. Body type (SUV, Sedan, Hatchback, Convertible, Coupe, Wagon, Pickup)
6. Mileage (your best guess)
7. Fuel type (Petrol, Diesel, Electric, Hybrid)
8. Transmission type (Automatic, Manual)
9. Price (your best guess)
10. Short description as it would appear in a listing

Respond with JSON only:
{
  "make": "",
  "model": "",
  "year": 0,
  "color": "",
  "price": "",
  "mileage": "",
  "bodyType": "",
  "fuelType": "",
  "transmission": "",
  "description": "",
  "confidence": 0.0
}

confidence is a value between 0 and 1 for the overall identification.
`

// GeminiExtractor asks a Gemini model to describe a photo
type GeminiExtractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiExtractor creates a client for modelName. An empty apiKey yields
// catalogerrors.ErrExtractionUnavailable.
func NewGeminiExtractor(ctx context.Context, apiKey, modelName string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("extract: %w - no API key", catalogerrors.ErrExtractionUnavailable)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("extract: %w: %w", catalogerrors.ErrExtractionUnavailable, err)
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.2)

	return &GeminiExtractor{client: client, model: model}, nil
}

// Extract sends the image with the extraction prompt and parses the reply
func (g *GeminiExtractor) Extract(ctx context.Context, image []byte, mimeType string) (Attributes, error) {
	mimeType, err := CheckImage(image, mimeType)
	if err != nil {
		return Attributes{}, err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Blob{MIMEType: mimeType, Data: image}, genai.Text(prompt))
	if err != nil {
		return Attributes{}, fmt.Errorf("extract: %w: %w", catalogerrors.ErrExtractionUnavailable, err)
	}

	text := replyText(resp)
	attrs, err := ParseAttributes(text)
	if err != nil {
		utils.Warn("unparseable extraction reply", map[string]any{"reply": text, "error": err.Error()})
		return Attributes{}, err
	}

	utils.Info("image attributes extracted", map[string]any{
		"make":       attrs.Make,
		"body_type":  attrs.BodyType,
		"confidence": attrs.Confidence,
	})
	return attrs, nil
}

// Close releases the underlying client
func (g *GeminiExtractor) Close() error {
	return g.client.Close()
}

func replyText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}
