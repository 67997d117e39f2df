package lpscore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ectool/lpscorer/internal/gemini"
	"github.com/ectool/lpscorer/internal/metrics"
	"github.com/ectool/lpscorer/internal/ollama"
	"github.com/ectool/lpscorer/internal/openai"
	"github.com/ectool/lpscorer/internal/providers"
)

// ErrModelTimeout is returned when the model does not answer within the configured timeout
var ErrModelTimeout = errors.New("model call timed out")

const (
	// DefaultTimeout bounds a single model call
	DefaultTimeout = 60 * time.Second
	// DefaultTemperature keeps rubric scoring close to deterministic
	DefaultTemperature = 0.2
	// DefaultProvider is used when no provider is named
	DefaultProvider = "gemini"
)

// ProviderSettings holds the credentials and endpoints the providers need
type ProviderSettings struct {
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OllamaURL     string
}

// NewProvider builds the named provider. An empty name selects Gemini.
func NewProvider(name string, settings ProviderSettings) (providers.Provider, error) {
	switch name {
	case "", "gemini":
		return gemini.New(settings.GeminiAPIKey), nil
	case "openai":
		return openai.New(settings.OpenAIAPIKey, settings.OpenAIBaseURL), nil
	case "ollama":
		return ollama.New(settings.OllamaURL), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// DefaultModel returns the model used by a provider when none is configured
func DefaultModel(provider string) string {
	switch provider {
	case "openai":
		return openai.DefaultModel
	case "ollama":
		return ollama.DefaultModel
	default:
		return gemini.DefaultModel
	}
}

// Options configures a Service
type Options struct {
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Service scores landing pages with an LLM provider
type Service struct {
	provider    providers.Provider
	model       string
	temperature float64
	timeout     time.Duration
}

// NewService creates a scoring service. Zero option values fall back to defaults.
func NewService(provider providers.Provider, opts Options) *Service {
	if opts.Model == "" {
		opts.Model = DefaultModel(provider.Name())
	}
	if opts.Temperature == 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Service{
		provider:    provider,
		model:       opts.Model,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
	}
}

// Provider returns the provider name
func (s *Service) Provider() string {
	return s.provider.Name()
}

// Model returns the model name sent to the provider
func (s *Service) Model() string {
	return s.model
}

// Score builds the prompt for input, asks the model and returns the validated score
func (s *Service) Score(ctx context.Context, input LPInput) (*LPScore, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	prompt := BuildPrompt(input)
	name := s.provider.Name()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	slog.Info("Scoring landing page", "title", input.Title, "provider", name, "model", s.model, "images", len(input.Images))

	start := time.Now()
	text, err := s.provider.ExtractText(callCtx, providers.Config{
		Model:       s.model,
		Temperature: s.temperature,
		Prompt:      prompt,
	})
	metrics.ObserveModelLatency(name, time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			metrics.IncScore(name, "timeout")
			return nil, fmt.Errorf("%w after %s", ErrModelTimeout, s.timeout)
		}
		metrics.IncScore(name, "failed")
		return nil, fmt.Errorf("%s request failed: %w", name, err)
	}

	score, err := ExtractScore(text)
	if err != nil {
		switch {
		case errors.Is(err, ErrSchemaViolation):
			metrics.IncScore(name, "schema_violation")
		default:
			metrics.IncScore(name, "malformed")
		}
		slog.Error("Model response rejected", "provider", name, "err", err, "length", len(text))
		return nil, err
	}

	metrics.IncScore(name, "ok")
	slog.Info("Scored landing page", "title", input.Title, "overall", score.OverallScore, "categories", len(score.Scores))
	return score, nil
}
