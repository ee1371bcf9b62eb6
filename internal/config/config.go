package config

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server     ServerConfig
	OpenRouter OpenRouterConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"8000"`
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// Origin allowed to call the API from a browser; the web frontend
	// is served separately.
	AllowedOrigin string `envconfig:"SERVER_ALLOWED_ORIGIN" default:"*"`
}

// OpenRouterConfig configures the hosted model provider. APIEndpoint may
// point at any OpenAI-compatible chat-completions service.
type OpenRouterConfig struct {
	APIKey      string        `envconfig:"OPENROUTER_API_KEY" required:"true"`
	APIEndpoint string        `envconfig:"OPENROUTER_ENDPOINT" default:"https://openrouter.ai/api/v1"`
	Model       string        `envconfig:"OPENROUTER_MODEL" default:"x-ai/grok-4-fast:free"`
	Timeout     time.Duration `envconfig:"OPENROUTER_TIMEOUT" default:"30s"`

	// OpenRouter attribution headers sent with every request.
	SiteURL  string `envconfig:"OPENROUTER_SITE_URL" default:"https://productfinder.com"`
	SiteName string `envconfig:"OPENROUTER_SITE_NAME" default:"Product Finder"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}
