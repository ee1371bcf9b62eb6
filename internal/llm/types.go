package llm

import (
	"context"
	"errors"
)

// ErrUpstreamUnavailable is returned when the completion call itself fails:
// transport errors and non-success HTTP statuses from the provider.
var ErrUpstreamUnavailable = errors.New("model provider unavailable")

// ErrMalformedResponse is returned when the provider answers with a success
// status but the body lacks a first-choice message content.
var ErrMalformedResponse = errors.New("malformed model provider response")

type Provider interface {
	// Complete issues a single non-streaming chat completion and returns
	// the assistant's text.
	Complete(ctx context.Context, system string, user []ContentPart, opts ...Option) (*Response, error)
}

// ContentPart is one element of a user turn: either Text or ImageURL is set.
// Images travel inline as data URIs.
type ContentPart struct {
	Text     string
	ImageURL string
}

func TextPart(text string) ContentPart {
	return ContentPart{Text: text}
}

func ImagePart(dataURI string) ContentPart {
	return ContentPart{ImageURL: dataURI}
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

type Response struct {
	Content string
	Usage   Usage
}
