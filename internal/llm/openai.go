package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/productfinder/backend/internal/config"
)

// OpenAI talks to any OpenAI-compatible chat-completions endpoint
// (OpenRouter by default). One request per Complete call, no retries.
type OpenAI struct {
	client *openai.Client
	cfg    *config.OpenRouterConfig
}

func NewOpenAI(cfg *config.OpenRouterConfig) (*OpenAI, error) {
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.APIEndpoint),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithHeader("HTTP-Referer", cfg.SiteURL),
		option.WithHeader("X-Title", cfg.SiteName),
	)

	return &OpenAI{
		client: client,
		cfg:    cfg,
	}, nil
}

func (o *OpenAI) Complete(ctx context.Context, system string, user []ContentPart, opts ...Option) (*Response, error) {
	options := &Options{
		Model:       o.cfg.Model,
		Temperature: 0,
		MaxTokens:   1000,
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, userMessage(user))

	resp, err := o.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Model:       openai.F(options.Model),
			Messages:    openai.F(messages),
			Temperature: openai.F(options.Temperature),
			MaxTokens:   openai.F(options.MaxTokens),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: no message content in first choice", ErrMalformedResponse)
	}

	return &Response{
		Content: resp.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// userMessage builds a plain-text user turn when possible and falls back to
// multi-part content when an image is attached.
func userMessage(parts []ContentPart) openai.ChatCompletionMessageParamUnion {
	if len(parts) == 1 && parts[0].ImageURL == "" {
		return openai.UserMessage(parts[0].Text)
	}

	union := make([]openai.ChatCompletionContentPartUnionParam, 0, len(parts))
	for _, p := range parts {
		if p.ImageURL != "" {
			union = append(union, openai.ImagePart(p.ImageURL))
		} else {
			union = append(union, openai.TextPart(p.Text))
		}
	}
	return openai.UserMessageParts(union...)
}
