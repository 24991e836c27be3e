// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-a2a/weather-agent-team/internal/config"
	"github.com/go-a2a/weather-agent-team/internal/fakellm"
	"github.com/go-a2a/weather-agent-team/tool/tools"
	"github.com/go-a2a/weather-agent-team/types"
	"github.com/go-a2a/weather-agent-team/weather"
)

// inOrder returns a modelFunc handing out models in creation order.
func inOrder(t *testing.T, models ...*fakellm.Model) modelFunc {
	t.Helper()

	return func(ctx context.Context, name string) (types.Model, error) {
		if len(models) == 0 {
			t.Fatalf("unexpected model %q", name)
		}
		llm := models[0]
		models = models[1:]
		if llm.Name() != name {
			t.Errorf("model created as %q, want %q", name, llm.Name())
		}
		return llm, nil
	}
}

func transferTo(agentName string) *types.LLMResponse {
	return fakellm.FunctionCall(tools.TransferToAgentName, map[string]any{"agent_name": agentName})
}

func TestRun(t *testing.T) {
	greetingLLM := fakellm.New(modelGemini20Flash,
		fakellm.Text("Hello, srineesh!"),
		transferTo(weather.TeamRootAgentName),
	)
	farewellLLM := fakellm.New(modelGemini20Flash, fakellm.Text("Goodbye! Have a great day."))
	rootLLM := fakellm.New(modelGemini25Flash,
		transferTo("greeting_agent"),
		fakellm.FunctionCall(weather.GetWeatherToolName, map[string]any{"city": "New York"}),
		fakellm.Text("The weather in New York is currently sunny with a temperature of 22°C."),
		transferTo("farewell_agent"),
	)

	var out bytes.Buffer
	if err := run(t.Context(), &out, inOrder(t, greetingLLM, farewellLLM, rootLLM)); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	for _, want := range []string{
		"Sub-agents: [greeting_agent farewell_agent]",
		"User Query: Hello there! my name is srineesh",
		"Hello, srineesh!",
		"--- Tool: get_weather called with city: New York ---",
		"The weather in New York is currently sunny with a temperature of 22°C.",
		"Goodbye! Have a great day.",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q:\n%s", want, out.String())
		}
	}
	if n := greetingLLM.Remaining() + farewellLLM.Remaining() + rootLLM.Remaining(); n != 0 {
		t.Errorf("%d scripted responses unused", n)
	}
}

func TestRun_ModelError(t *testing.T) {
	wantErr := errors.New("API key not valid")
	failing := func(ctx context.Context, name string) (types.Model, error) {
		return nil, wantErr
	}

	var out bytes.Buffer
	if err := run(t.Context(), &out, failing); !errors.Is(err, wantErr) {
		t.Errorf("run() error = %v, want %v", err, wantErr)
	}
}

func TestRun_ConversationError(t *testing.T) {
	// The root model has nothing scripted, so the first interaction fails.
	llms := []*fakellm.Model{
		fakellm.New(modelGemini20Flash),
		fakellm.New(modelGemini20Flash),
		fakellm.New(modelGemini25Flash),
	}

	var out bytes.Buffer
	if err := run(t.Context(), &out, inOrder(t, llms...)); err == nil {
		t.Fatal("run() error = nil")
	}
	if strings.Contains(out.String(), "INTERACTION 2") {
		t.Errorf("conversation continued after a failed interaction:\n%s", out.String())
	}
}

func TestRun_MissingAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", "")

	var out bytes.Buffer
	if err := run(t.Context(), &out, newModel(&config.CLI{})); err == nil {
		t.Fatal("run() without a Google API key error = nil")
	}
}
