// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-a2a/weather-agent-team/model"
	"github.com/go-a2a/weather-agent-team/types"
)

func TestLLMRegistry_ResolveLLM(t *testing.T) {
	var resolved string
	creator := func(name string) model.ModelCreatorFunc {
		return func(ctx context.Context, modelName string, opts ...model.Option) (types.Model, error) {
			resolved = name
			return nil, nil
		}
	}

	registry := model.NewLLMRegistry(2)
	for pattern, name := range map[string]string{
		`gemini-.*`: "gemini",
		`claude-.*`: "claude",
		`gpt-.*`:    "openai",
	} {
		if err := registry.RegisterLLM(pattern, creator(name)); err != nil {
			t.Fatalf("RegisterLLM(%q): %v", pattern, err)
		}
	}

	tests := map[string]struct {
		modelName string
		want      string
		wantErr   error
	}{
		"gemini": {
			modelName: "gemini-2.0-flash",
			want:      "gemini",
		},
		"claude": {
			modelName: "claude-3-sonnet-20240229",
			want:      "claude",
		},
		"openai": {
			modelName: "gpt-4o",
			want:      "openai",
		},
		"unknown": {
			modelName: "llama-3",
			wantErr:   types.ErrModelNotFound,
		},
		"pattern must match whole name": {
			modelName: "my-gemini-2.0-flash",
			wantErr:   types.ErrModelNotFound,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			resolved = ""
			_, err := registry.NewLLM(t.Context(), tt.modelName)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewLLM(%q) error = %v, want %v", tt.modelName, err, tt.wantErr)
			}
			if resolved != tt.want {
				t.Fatalf("NewLLM(%q) resolved %q, want %q", tt.modelName, resolved, tt.want)
			}
		})
	}
}

func TestLLMRegistry_RegisterLLM(t *testing.T) {
	registry := model.NewLLMRegistry(8)

	if err := registry.RegisterLLM(`(`, nil); err == nil {
		t.Fatal("RegisterLLM with invalid pattern: expected error")
	}

	calls := 0
	first := func(ctx context.Context, modelName string, opts ...model.Option) (types.Model, error) {
		calls = 1
		return nil, nil
	}
	second := func(ctx context.Context, modelName string, opts ...model.Option) (types.Model, error) {
		calls = 2
		return nil, nil
	}
	if err := registry.RegisterLLM(`fake-.*`, first); err != nil {
		t.Fatal(err)
	}
	if _, err := registry.NewLLM(t.Context(), "fake-1"); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	// replacing the creator also invalidates the cached resolution
	if err := registry.RegisterLLM(`fake-.*`, second); err != nil {
		t.Fatal(err)
	}
	if _, err := registry.NewLLM(t.Context(), "fake-1"); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestDefaultRegistry(t *testing.T) {
	for _, name := range []string{
		"gemini-2.0-flash",
		"projects/p/locations/us-central1/publishers/google/models/gemini-2.0-flash",
		"claude-3-sonnet-20240229",
		"openai/gpt-4o",
		"gpt-4o-mini",
		"o3-mini",
	} {
		if _, err := model.GetRegistry().ResolveLLM(name); err != nil {
			t.Errorf("ResolveLLM(%q): %v", name, err)
		}
	}

	if _, err := model.GetRegistry().ResolveLLM("unknown-model"); !errors.Is(err, types.ErrModelNotFound) {
		t.Errorf("ResolveLLM(unknown-model) error = %v, want %v", err, types.ErrModelNotFound)
	}
}
