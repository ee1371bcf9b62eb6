package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/productfinder/backend/apimodels"
	"github.com/productfinder/backend/internal/llm"
	"github.com/productfinder/backend/internal/metrics"
)

// ErrEmptyMessage is returned when the user message is missing, before any
// provider call is made.
var ErrEmptyMessage = errors.New("empty chat message")

const (
	chatMaxTokens   = 800
	chatTemperature = 0.7
)

var systemPrompt = `You are a helpful shopping assistant AI. Help users find products, compare prices, and provide shopping advice.

If the user asks about a specific product they've analyzed, use the context provided to give relevant information about shopping options, alternatives, or related products. If an image of the product is attached, you can describe what is visible in it.

Keep responses concise, helpful, and focused on shopping and product discovery.`

// Relay forwards a single chat turn to the model provider. Each call is a
// stateless request/response transformation; any conversational context is
// supplied by the caller per turn.
type Relay struct {
	provider llm.Provider
}

func New(provider llm.Provider) *Relay {
	return &Relay{provider: provider}
}

// Reply answers one user message. priorResult, when present, is folded into
// the system prompt as conversational context; imageDataURI, when present,
// turns the user turn into multi-part content so the model can see the photo.
func (r *Relay) Reply(ctx context.Context, message string, priorResult *apimodels.AnalysisResult, imageDataURI string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	startTime := time.Now()

	user := []llm.ContentPart{llm.TextPart(message)}
	if imageDataURI != "" {
		user = append(user, llm.ImagePart(imageDataURI))
	}

	resp, err := r.provider.Complete(ctx, composeSystemPrompt(priorResult), user,
		func(o *llm.Options) {
			o.MaxTokens = chatMaxTokens
			o.Temperature = chatTemperature
		},
	)
	if err != nil {
		slog.Error("chat relay call failed", "error", err)
		return "", err
	}

	metrics.UpstreamDurationSeconds.WithLabelValues("chat").Observe(time.Since(startTime).Seconds())
	return resp.Content, nil
}

func composeSystemPrompt(priorResult *apimodels.AnalysisResult) string {
	if priorResult == nil {
		return systemPrompt
	}
	return fmt.Sprintf(
		"%s\n\nCurrent product context: the user analyzed a photo identified as %q by %s (category: %s, confidence: %.2f).",
		systemPrompt, priorResult.Title, priorResult.Brand, priorResult.Category, priorResult.Confidence,
	)
}
