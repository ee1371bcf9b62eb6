package analyzer

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/productfinder/backend/apimodels"
	"github.com/productfinder/backend/internal/metrics"
)

const (
	defaultTitle      = "Product Detected"
	defaultBrand      = "Unknown"
	defaultCategory   = "General"
	defaultConfidence = 0.5
)

// rawResult tolerates whatever shape the model produced; sanitization
// happens field by field afterwards.
type rawResult struct {
	Title         any `json:"title"`
	Brand         any `json:"brand"`
	Category      any `json:"category"`
	Confidence    any `json:"confidence"`
	SearchQueries any `json:"searchQueries"`
}

// Normalize coerces the model's free-form reply into a well-formed
// AnalysisResult. Unparseable content yields the fixed fallback result
// rather than an error so the caller always gets something to show.
func Normalize(content string) *apimodels.AnalysisResult {
	cleaned := stripFence(content)

	var raw rawResult
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		metrics.AnalysisFallbackTotal.Inc()
		return fallbackResult()
	}

	return &apimodels.AnalysisResult{
		Title:         stringOr(raw.Title, defaultTitle),
		Brand:         stringOr(raw.Brand, defaultBrand),
		Category:      stringOr(raw.Category, defaultCategory),
		Confidence:    clampConfidence(raw.Confidence),
		SearchQueries: queriesOr(raw.SearchQueries),
	}
}

func fallbackResult() *apimodels.AnalysisResult {
	return &apimodels.AnalysisResult{
		Title:         defaultTitle,
		Brand:         defaultBrand,
		Category:      defaultCategory,
		Confidence:    defaultConfidence,
		SearchQueries: []string{"product search", "similar item"},
	}
}

// stripFence removes a leading/trailing markdown code fence if present.
// Content without fences is returned unchanged, so the operation is
// idempotent.
func stripFence(content string) string {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(strings.TrimSpace(s), "```") {
		s = strings.TrimSpace(s)
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

func stringOr(v any, fallback string) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func clampConfidence(v any) float64 {
	var c float64
	switch n := v.(type) {
	case float64:
		c = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return defaultConfidence
		}
		c = parsed
	default:
		return defaultConfidence
	}

	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func queriesOr(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{"product search"}
	}

	queries := make([]string, 0, len(list))
	for _, item := range list {
		if q, ok := item.(string); ok && strings.TrimSpace(q) != "" {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		return []string{"product search"}
	}
	return queries
}
