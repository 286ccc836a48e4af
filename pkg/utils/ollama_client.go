package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "qwen2.5:3b"
)

// OllamaGenerator talks to a local Ollama server.
type OllamaGenerator struct {
	llm     *ollama.LLM
	timeout time.Duration
}

func NewOllamaGenerator(serverURL, model string, timeout time.Duration) (*OllamaGenerator, error) {
	if serverURL == "" {
		serverURL = defaultOllamaURL
	}
	if model == "" {
		model = defaultOllamaModel
	}

	client, err := ollama.New(ollama.WithServerURL(serverURL), ollama.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	return &OllamaGenerator{llm: client, timeout: timeout}, nil
}

func (g *OllamaGenerator) Name() string { return "ollama" }

func (g *OllamaGenerator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	text, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(float64(temperature)))
	if err != nil {
		return "", fmt.Errorf("ollama: %w: %v", ErrGenerationFailed, err)
	}
	return text, nil
}
