// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-a2a/weather-agent-team/internal/fakellm"
	"github.com/go-a2a/weather-agent-team/types"
)

// byName returns a modelFunc serving models from the table, failing for any
// other name.
func byName(models map[string]types.Model) modelFunc {
	return func(ctx context.Context, name string) (types.Model, error) {
		llm, ok := models[name]
		if !ok {
			return nil, fmt.Errorf("model %q: %w", name, types.ErrModelNotFound)
		}
		return llm, nil
	}
}

// answering returns a model that passes validation and answers every query.
func answering(name string) types.Model {
	return fakellm.New(name,
		fakellm.Text("Hello! How can I help?"),
		fakellm.Text("It's cloudy in London."),
		fakellm.Text("I don't have weather information for Paris."),
		fakellm.Text("It's sunny in New York."),
	)
}

func TestRun(t *testing.T) {
	tests := map[string]struct {
		models map[string]types.Model
		want   []string
	}{
		"gemini is used when valid": {
			models: map[string]types.Model{
				"gemini-2.5-flash": answering("gemini-2.5-flash"),
				"openai/gpt-4.1":   answering("openai/gpt-4.1"),
			},
			want: []string{
				"✓ Gemini agent created successfully!",
				"SELECTED AGENT: Gemini",
				"<<< Agent Response: It's sunny in New York.",
				"CONVERSATION COMPLETE",
			},
		},
		"openai when gemini cannot be created": {
			models: map[string]types.Model{
				"openai/gpt-4.1": answering("openai/gpt-4.1"),
			},
			want: []string{
				"✗ Failed to create Gemini agent",
				"SELECTED AGENT: OpenAI GPT-4",
				"<<< Agent Response: It's cloudy in London.",
			},
		},
		"openai when gemini fails validation": {
			models: map[string]types.Model{
				"gemini-2.5-flash": fakellm.NewFailing("gemini-2.5-flash", errors.New("API key not valid")),
				"openai/gpt-4.1":   answering("openai/gpt-4.1"),
			},
			want: []string{
				"✗ Agent 'Gemini' failed validation",
				"SELECTED AGENT: OpenAI GPT-4",
				"CONVERSATION COMPLETE",
			},
		},
		"no agent passes validation": {
			models: map[string]types.Model{
				"gemini-2.5-flash": fakellm.NewFailing("gemini-2.5-flash", errors.New("API key not valid")),
				"openai/gpt-4.1":   fakellm.NewFailing("openai/gpt-4.1", errors.New("quota exceeded")),
			},
			want: []string{
				"CRITICAL ERROR: No agents passed validation.",
				"Aborting conversation due to lack of valid agents.",
			},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(t.Context(), &out, byName(tt.models)); err != nil {
				t.Fatalf("run() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output does not contain %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestRun_NoAgents(t *testing.T) {
	var out bytes.Buffer
	if err := run(t.Context(), &out, byName(nil)); !errors.Is(err, errNoAgents) {
		t.Fatalf("run() error = %v, want %v", err, errNoAgents)
	}
	if !strings.Contains(out.String(), "ERROR: NO AGENTS AVAILABLE") {
		t.Errorf("output does not report the missing agents:\n%s", out.String())
	}
	if strings.Contains(out.String(), "STARTING CONVERSATION") {
		t.Errorf("conversation started without agents:\n%s", out.String())
	}
}
