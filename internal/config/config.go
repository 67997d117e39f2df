package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ectool/lpscorer/internal/lpscore"
)

// Config holds the settings read from the environment after .env is loaded
type Config struct {
	Port string

	RakutenAppID  string
	RakutenAPIURL string

	Provider      string
	Model         string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OllamaURL     string
	ModelTimeout  time.Duration

	ScrapeTimeout    time.Duration
	ScrapeRules      string
	ProductSelectors string
}

// FromEnv reads the configuration. Unset values take their defaults; malformed
// durations are reported.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:             getenv("PORT", "8888"),
		RakutenAppID:     os.Getenv("RAKUTEN_APP_ID"),
		RakutenAPIURL:    os.Getenv("RAKUTEN_API_URL"),
		Provider:         getenv("LP_PROVIDER", lpscore.DefaultProvider),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		OllamaURL:        getenv("OLLAMA_URL", os.Getenv("OLLAMA_HOST")),
		ScrapeRules:      os.Getenv("SCRAPE_RULES"),
		ProductSelectors: os.Getenv("PRODUCT_SELECTORS"),
	}
	cfg.Model = modelFor(cfg.Provider)

	var err error
	if cfg.ModelTimeout, err = duration("MODEL_TIMEOUT", lpscore.DefaultTimeout); err != nil {
		return nil, err
	}
	if cfg.ScrapeTimeout, err = duration("SCRAPE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ProviderSettings returns the credentials and endpoints for building providers
func (c *Config) ProviderSettings() lpscore.ProviderSettings {
	return lpscore.ProviderSettings{
		GeminiAPIKey:  c.GeminiAPIKey,
		OpenAIAPIKey:  c.OpenAIAPIKey,
		OpenAIBaseURL: c.OpenAIBaseURL,
		OllamaURL:     c.OllamaURL,
	}
}

// ModelFor returns the configured model for provider, or empty for the provider default
func (c *Config) ModelFor(provider string) string {
	if provider == c.Provider {
		return c.Model
	}
	return modelFor(provider)
}

func modelFor(provider string) string {
	if m := os.Getenv("LP_MODEL"); m != "" {
		return m
	}
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_MODEL")
	case "ollama":
		return os.Getenv("OLLAMA_MODEL")
	case "", "gemini":
		return os.Getenv("GEMINI_MODEL")
	default:
		return ""
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
