package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port   string
	AppEnv string

	LLM   LLMConfig
	Data  DataConfig
	Cache CacheConfig

	// AuthJWTSecret enables bearer auth on /plan when non-empty.
	AuthJWTSecret string
}

type LLMConfig struct {
	Provider string
	Timeout  time.Duration

	OllamaURL   string
	OllamaModel string

	OpenAIKey   string
	OpenAIModel string

	GeminiKey   string
	GeminiModel string
}

type DataConfig struct {
	Currency  string
	UserAgent string

	WikiURL         string
	NominatimURL    string
	OpenMeteoURL    string
	OverpassMirrors []string
}

type CacheConfig struct {
	PlacesTTL  time.Duration
	WeatherTTL time.Duration
	WikiTTL    time.Duration
}

var defaults = map[string]any{
	"PORT":    "5000",
	"APP_ENV": "production",

	"LLM_PROVIDER": "ollama",
	"LLM_TIMEOUT":  "120s",
	"OLLAMA_URL":   "http://localhost:11434",
	"OLLAMA_MODEL": "qwen2.5:3b",
	"OPENAI_MODEL": "gpt-4o-mini",
	"GEMINI_MODEL": "gemini-1.5-flash",

	"CURRENCY":         "INR",
	"USER_AGENT":       "AI-Travel-Planner/1.0",
	"WIKI_URL":         "https://en.wikipedia.org/api/rest_v1/page/summary/",
	"NOMINATIM_URL":    "https://nominatim.openstreetmap.org/search",
	"OPEN_METEO_URL":   "https://api.open-meteo.com/v1/forecast",
	"OVERPASS_MIRRORS": "https://overpass.kumi.systems/api/interpreter,https://overpass-api.de/api/interpreter",

	"CACHE_TTL_PLACES":  "30m",
	"CACHE_TTL_WEATHER": "30m",
	"CACHE_TTL_WIKI":    "6h",
}

// Load reads .env files (missing ones are skipped) into the process
// environment and resolves every setting from it, falling back to defaults.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:          v.GetString("PORT"),
		AppEnv:        strings.ToLower(v.GetString("APP_ENV")),
		AuthJWTSecret: v.GetString("AUTH_JWT_SECRET"),
		LLM: LLMConfig{
			Provider:    strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
			Timeout:     v.GetDuration("LLM_TIMEOUT"),
			OllamaURL:   v.GetString("OLLAMA_URL"),
			OllamaModel: v.GetString("OLLAMA_MODEL"),
			OpenAIKey:   v.GetString("OPENAI_API_KEY"),
			OpenAIModel: v.GetString("OPENAI_MODEL"),
			GeminiKey:   v.GetString("GEMINI_API_KEY"),
			GeminiModel: v.GetString("GEMINI_MODEL"),
		},
		Data: DataConfig{
			Currency:        v.GetString("CURRENCY"),
			UserAgent:       v.GetString("USER_AGENT"),
			WikiURL:         v.GetString("WIKI_URL"),
			NominatimURL:    v.GetString("NOMINATIM_URL"),
			OpenMeteoURL:    v.GetString("OPEN_METEO_URL"),
			OverpassMirrors: splitList(v.GetString("OVERPASS_MIRRORS")),
		},
		Cache: CacheConfig{
			PlacesTTL:  v.GetDuration("CACHE_TTL_PLACES"),
			WeatherTTL: v.GetDuration("CACHE_TTL_WEATHER"),
			WikiTTL:    v.GetDuration("CACHE_TTL_WIKI"),
		},
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.LLM.Provider {
	case "ollama":
	case "openai":
		if c.LLM.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case "gemini":
		if c.LLM.GeminiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when using Gemini provider")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q. Use 'ollama', 'openai' or 'gemini'", c.LLM.Provider)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if strings.TrimSpace(c.Data.Currency) == "" {
		return fmt.Errorf("CURRENCY must not be empty")
	}
	return nil
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

// ProviderLabel is the display name of the generation backend, e.g. "Ollama".
func (c Config) ProviderLabel() string {
	switch c.LLM.Provider {
	case "openai":
		return "OpenAI"
	case "gemini":
		return "Gemini"
	default:
		return "Ollama"
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
