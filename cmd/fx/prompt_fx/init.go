package prompt_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"travelplanner/internal/config"
	"travelplanner/pkg/utils"
)

var Module = fx.Provide(
	ProvideTextGenerator)

// ProvideTextGenerator creates the generation backend selected by LLM_PROVIDER
func ProvideTextGenerator(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (utils.TextGenerator, error) {
	genCfg := GeneratorConfig(cfg)

	logger.Info("initializing text generator",
		zap.String("provider", genCfg.Provider),
		zap.String("model", genCfg.Model))

	gen, err := utils.NewTextGenerator(genCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s generator: %w", genCfg.Provider, err)
	}

	if closer, ok := gen.(interface{ Close() error }); ok {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return closer.Close() },
		})
	}
	return gen, nil
}

// GeneratorConfig picks the key and model for the configured provider
func GeneratorConfig(cfg config.Config) utils.GeneratorConfig {
	out := utils.GeneratorConfig{
		Provider: cfg.LLM.Provider,
		Timeout:  cfg.LLM.Timeout,
	}
	switch cfg.LLM.Provider {
	case "openai":
		out.APIKey = cfg.LLM.OpenAIKey
		out.Model = cfg.LLM.OpenAIModel
	case "gemini":
		out.APIKey = cfg.LLM.GeminiKey
		out.Model = cfg.LLM.GeminiModel
	default:
		out.BaseURL = cfg.LLM.OllamaURL
		out.Model = cfg.LLM.OllamaModel
	}
	return out
}
