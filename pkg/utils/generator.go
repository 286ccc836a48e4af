package utils

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// TextGenerator is a text-generation backend. Implementations return the raw
// generated text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
	Name() string
}

type GeneratorConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// NewTextGenerator builds the backend named by cfg.Provider.
func NewTextGenerator(cfg GeneratorConfig) (TextGenerator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when using OpenAI provider")
		}
		return NewOpenAIGenerator(cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when using Gemini provider")
		}
		return NewGeminiGenerator(cfg.APIKey, cfg.Model, cfg.Timeout)
	case "ollama", "":
		return NewOllamaGenerator(cfg.BaseURL, cfg.Model, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s. Use 'ollama', 'openai' or 'gemini'", cfg.Provider)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
