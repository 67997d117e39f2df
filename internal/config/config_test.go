package config

import (
	"testing"
	"time"

	"github.com/ectool/lpscorer/internal/lpscore"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LP_PROVIDER", "LP_MODEL", "GEMINI_MODEL", "MODEL_TIMEOUT", "SCRAPE_TIMEOUT", "OLLAMA_URL", "OLLAMA_HOST"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Port != "8888" {
		t.Errorf("unexpected port %q", cfg.Port)
	}
	if cfg.Provider != lpscore.DefaultProvider {
		t.Errorf("unexpected provider %q", cfg.Provider)
	}
	if cfg.ModelTimeout != lpscore.DefaultTimeout || cfg.ScrapeTimeout != 30*time.Second {
		t.Errorf("unexpected timeouts %s / %s", cfg.ModelTimeout, cfg.ScrapeTimeout)
	}
	if cfg.Model != "" {
		t.Errorf("model should be empty so the provider default applies, got %q", cfg.Model)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("RAKUTEN_APP_ID", "app-1")
	t.Setenv("LP_PROVIDER", "ollama")
	t.Setenv("LP_MODEL", "")
	t.Setenv("OLLAMA_MODEL", "llama3")
	t.Setenv("OLLAMA_URL", "")
	t.Setenv("OLLAMA_HOST", "http://gpu:11434")
	t.Setenv("MODEL_TIMEOUT", "90s")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Port != "9000" || cfg.RakutenAppID != "app-1" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Model != "llama3" {
		t.Errorf("expected OLLAMA_MODEL to apply, got %q", cfg.Model)
	}
	if cfg.OllamaURL != "http://gpu:11434" {
		t.Errorf("expected OLLAMA_HOST fallback, got %q", cfg.OllamaURL)
	}
	if cfg.ModelTimeout != 90*time.Second {
		t.Errorf("unexpected model timeout %s", cfg.ModelTimeout)
	}

	t.Setenv("LP_MODEL", "override")
	cfg, err = FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Model != "override" || cfg.ModelFor("openai") != "override" {
		t.Errorf("LP_MODEL should override every provider, got %q", cfg.Model)
	}
}

func TestFromEnvInvalidDuration(t *testing.T) {
	t.Setenv("MODEL_TIMEOUT", "")
	t.Setenv("SCRAPE_TIMEOUT", "soon")
	if _, err := FromEnv(); err == nil {
		t.Error("expected error for malformed SCRAPE_TIMEOUT")
	}
}
