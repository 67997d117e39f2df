package providers

import (
	"context"
	"errors"
)

// ErrMissingCredentials is returned when a provider is used without its API key
var ErrMissingCredentials = errors.New("provider credentials not configured")

// Config represents the configuration for a single completion request
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
}

// Provider defines the interface for an LLM provider
type Provider interface {
	Name() string
	ExtractText(ctx context.Context, config Config) (string, error)
}
