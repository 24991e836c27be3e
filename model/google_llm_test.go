// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/model"
	"github.com/go-a2a/weather-agent-team/types"
)

func newGeminiServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.0-flash") {
			t.Errorf("request path %q does not name the model", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newTestGemini(t *testing.T, srv *httptest.Server) *model.Gemini {
	t.Helper()
	t.Setenv(model.EnvGoogleGenAIUseVertexAI, "")

	gemini, err := model.NewGemini(t.Context(), "gemini-2.0-flash",
		model.WithAPIKey("test-key"),
		model.WithBaseURL(srv.URL),
		model.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewGemini: %v", err)
	}

	return gemini
}

func TestGemini_GenerateContent(t *testing.T) {
	srv := newGeminiServer(t, `{
		"candidates": [{
			"content": {"role": "model", "parts": [{"text": "hello"}]},
			"finishReason": "STOP"
		}]
	}`)
	gemini := newTestGemini(t, srv)

	got, err := gemini.GenerateContent(t.Context(), types.NewLLMRequest([]*genai.Content{
		genai.NewContentFromText("hi", genai.RoleUser),
	}))
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}

	if got.GetText() != "hello" {
		t.Fatalf("want text 'hello', got %q", got.GetText())
	}
	if got.Partial {
		t.Fatalf("unary response should not be partial")
	}
	if got.FinishReason != genai.FinishReasonStop {
		t.Fatalf("FinishReason = %q, want %q", got.FinishReason, genai.FinishReasonStop)
	}
}

func TestGemini_GenerateContent_APIError(t *testing.T) {
	t.Setenv(model.EnvGoogleGenAIUseVertexAI, "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error": {"code": 400, "message": "API key not valid.", "status": "INVALID_ARGUMENT"}}`)
	}))
	defer srv.Close()

	gemini, err := model.NewGemini(t.Context(), "gemini-2.0-flash",
		model.WithAPIKey("bad-key"),
		model.WithBaseURL(srv.URL),
		model.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewGemini: %v", err)
	}

	_, err = gemini.GenerateContent(t.Context(), types.NewLLMRequest(nil))
	if err == nil {
		t.Fatal("GenerateContent: expected error")
	}
	if !strings.Contains(err.Error(), "gemini API error (status 400)") {
		t.Fatalf("GenerateContent error = %q, want status annotation", err)
	}
}

func TestNewGemini_MissingAPIKey(t *testing.T) {
	t.Setenv(model.EnvGoogleGenAIUseVertexAI, "")
	t.Setenv(model.EnvGoogleAPIKey, "")
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := model.NewGemini(t.Context(), ""); err == nil {
		t.Fatal("NewGemini without API key: expected error")
	}
}
