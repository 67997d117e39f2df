package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ectool/lpscorer/internal/providers"
)

const (
	// DefaultURL is the local Ollama daemon
	DefaultURL = "http://localhost:11434"
	// DefaultModel is used when no model is configured
	DefaultModel = "mistral-small3.2:24b"
)

// Ollama is a provider for a local or remote Ollama server
type Ollama struct {
	url        string
	httpClient *http.Client
}

// New returns a new Ollama provider. An empty url selects the local daemon.
func New(url string) *Ollama {
	if url == "" {
		url = DefaultURL
	}
	return &Ollama{
		url:        strings.TrimRight(url, "/"),
		httpClient: &http.Client{},
	}
}

// Name returns the provider identifier
func (o *Ollama) Name() string {
	return "ollama"
}

// ExtractText runs a non-streaming generate call constrained to JSON output
func (o *Ollama) ExtractText(ctx context.Context, config providers.Config) (string, error) {
	model := config.Model
	if model == "" {
		model = DefaultModel
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"model":  model,
		"prompt": config.Prompt,
		"stream": false,
		"format": "json",
		"options": map[string]interface{}{
			"temperature": config.Temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url+"/api/generate", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	return response.Response, nil
}
