package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ectool/lpscorer/internal/providers"
)

func TestExtractText(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"overallScore\":4}"}}]}`))
	}))
	defer srv.Close()

	o := New("sk-test", srv.URL+"/")
	got, err := o.ExtractText(context.Background(), providers.Config{Prompt: "score this", Temperature: 0.2})
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if got != `{"overallScore":4}` {
		t.Errorf("unexpected content %q", got)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("unexpected Authorization header %q", gotAuth)
	}
	if gotBody["model"] != DefaultModel {
		t.Errorf("expected default model, got %v", gotBody["model"])
	}
}

func TestExtractTextErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := New("", srv.URL).ExtractText(context.Background(), providers.Config{}); !errors.Is(err, providers.ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := New("sk-test", srv.URL).ExtractText(context.Background(), providers.Config{}); err == nil {
		t.Error("expected error on non-200 status")
	}

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer empty.Close()
	if _, err := New("sk-test", empty.URL).ExtractText(context.Background(), providers.Config{}); err == nil {
		t.Error("expected error when no choices are returned")
	}
}
