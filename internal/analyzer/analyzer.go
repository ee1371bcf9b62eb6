package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/productfinder/backend/apimodels"
	"github.com/productfinder/backend/internal/llm"
	"github.com/productfinder/backend/internal/metrics"
)

// ErrInvalidImage is returned for empty or non-image uploads, before any
// provider call is made.
var ErrInvalidImage = errors.New("invalid image input")

const (
	analysisMaxTokens   = 500
	analysisTemperature = 0.1
)

var systemPrompt = `You are an expert product recognition AI. Analyze the uploaded image and identify the product with high accuracy.

Return ONLY a valid JSON object with this exact structure:
{
  "title": "Product name/title",
  "brand": "Brand name (or 'Unknown' if not visible)",
  "category": "Product category (e.g., Electronics, Clothing, Home & Garden)",
  "confidence": 0.85,
  "searchQueries": ["alternative search term 1", "alternative search term 2", "generic product type"]
}

Focus on:
- Clear, searchable product titles
- Accurate brand identification
- Realistic confidence scores (0.0-1.0)
- 2-4 alternative search queries that would help find this product
- Be specific but use terms that would work well in e-commerce search`

type Analyzer struct {
	provider llm.Provider
}

func New(provider llm.Provider) *Analyzer {
	return &Analyzer{provider: provider}
}

// Analyze identifies the product on the image and returns a normalized
// result. The model's reply is repaired into a well-formed result even when
// it is not valid JSON; only a provider failure surfaces as an error.
func (a *Analyzer) Analyze(ctx context.Context, imageData []byte, mimeType string) (*apimodels.AnalysisResult, error) {
	startTime := time.Now()

	dataURI, err := encodeImage(imageData, mimeType)
	if err != nil {
		return nil, err
	}

	resp, err := a.provider.Complete(ctx, "",
		[]llm.ContentPart{
			llm.TextPart(systemPrompt + "\n\nPlease analyze this product image and return the JSON response as specified."),
			llm.ImagePart(dataURI),
		},
		func(o *llm.Options) {
			o.MaxTokens = analysisMaxTokens
			o.Temperature = analysisTemperature
		},
	)
	if err != nil {
		slog.Error("product analysis call failed", "error", err)
		return nil, err
	}

	result := Normalize(resp.Content)
	slog.Info("product analysis completed",
		"title", result.Title,
		"confidence", result.Confidence,
		"duration", time.Since(startTime),
		"tokens", resp.Usage.TotalTokens,
	)
	metrics.UpstreamDurationSeconds.WithLabelValues("analyze").Observe(time.Since(startTime).Seconds())

	return result, nil
}
