// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package console_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/weather-agent-team/agent"
	"github.com/go-a2a/weather-agent-team/internal/console"
	"github.com/go-a2a/weather-agent-team/internal/fakellm"
	"github.com/go-a2a/weather-agent-team/runner"
	"github.com/go-a2a/weather-agent-team/session"
	"github.com/go-a2a/weather-agent-team/types"
)

const (
	appName   = "weather_tutorial_app"
	userID    = "user_1"
	sessionID = "session_001"
)

func newRunner(t *testing.T, opts ...agent.LLMAgentOption) *runner.Runner {
	t.Helper()

	a, err := agent.NewLLMAgent(t.Context(), "weather_agent_v1", opts...)
	if err != nil {
		t.Fatal(err)
	}
	sessionService := session.NewInMemoryService()
	if _, err := sessionService.CreateSession(t.Context(), appName, userID, sessionID, nil); err != nil {
		t.Fatal(err)
	}
	r, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          a,
		SessionService: sessionService,
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestCallAgent(t *testing.T) {
	escalate := func(cctx *types.CallbackContext, _ *types.LLMRequest) (*types.LLMResponse, error) {
		cctx.EventActions().Escalate = true
		return &types.LLMResponse{ErrorCode: "RESOURCE_EXHAUSTED", ErrorMessage: "quota exceeded"}, nil
	}

	invalidKey := errors.New("API key not valid")

	tests := map[string]struct {
		opts    []agent.LLMAgentOption
		want    string
		wantErr error
	}{
		"final response": {
			opts: []agent.LLMAgentOption{agent.WithModel(fakellm.New("gemini-2.5-flash", fakellm.Text("It's cloudy in London.")))},
			want: "<<< Agent Response: It's cloudy in London.\n",
		},
		"run error": {
			opts:    []agent.LLMAgentOption{agent.WithModel(fakellm.NewFailing("gemini-2.5-flash", invalidKey))},
			want:    "<<< Agent Response: Error during agent execution: API key not valid\n",
			wantErr: invalidKey,
		},
		"escalation": {
			opts: []agent.LLMAgentOption{
				agent.WithModel(fakellm.New("gemini-2.5-flash")),
				agent.WithBeforeModelCallback(escalate),
			},
			want: "<<< Agent Response: Agent escalated: quota exceeded\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := newRunner(t, tt.opts...)

			var out bytes.Buffer
			err := console.CallAgent(t.Context(), &out, r, userID, sessionID, "What is the weather like in London?")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CallAgent() error = %v, want %v", err, tt.wantErr)
			}

			want := "\n>>> User Query: What is the weather like in London?\n" + tt.want
			if diff := cmp.Diff(want, out.String()); diff != "" {
				t.Errorf("CallAgent() output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCallTeam(t *testing.T) {
	r := newRunner(t, agent.WithModel(fakellm.New("gemini-2.5-flash", fakellm.Text("Hello, srineesh!"))))

	var out bytes.Buffer
	if err := console.CallTeam(t.Context(), &out, r, userID, sessionID, "Hello there! my name is srineesh"); err != nil {
		t.Fatal(err)
	}

	rule := strings.Repeat("=", 60)
	want := "\n" + rule + "\nUser Query: Hello there! my name is srineesh\n" + rule + "\n" +
		"\nAgent Response:\nHello, srineesh!\n" + strings.Repeat("-", 60) + "\n\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("CallTeam() output mismatch (-want +got):\n%s", diff)
	}
}

func TestCallTeamError(t *testing.T) {
	wantErr := errors.New("boom")
	r := newRunner(t, agent.WithModel(fakellm.NewFailing("gemini-2.5-flash", wantErr)))

	var out bytes.Buffer
	err := console.CallTeam(t.Context(), &out, r, userID, sessionID, "Hi")
	if !errors.Is(err, wantErr) {
		t.Fatalf("CallTeam() error = %v, want %v", err, wantErr)
	}
	if strings.Contains(out.String(), "Agent Response:") {
		t.Errorf("CallTeam() printed a response on error:\n%s", out.String())
	}
}

func TestReporter(t *testing.T) {
	a, err := agent.NewLLMAgent(t.Context(), "weather_agent_openai")
	if err != nil {
		t.Fatal(err)
	}
	candidate := runner.Candidate{Label: "OpenAI GPT-4", Agent: a}

	var out bytes.Buffer
	reporter := &console.Reporter{W: &out}
	reporter.Validating(candidate)
	reporter.Invalid(candidate, errors.New(strings.Repeat("x", 120)))
	reporter.Valid(candidate)
	reporter.Selected(candidate)
	reporter.NoneValid()

	rule := strings.Repeat("=", 80)
	want := "Validating agent: OpenAI GPT-4...\n" +
		"✗ Agent 'OpenAI GPT-4' failed validation: " + strings.Repeat("x", 100) + "...\n" +
		"✓ Agent 'OpenAI GPT-4' is valid and working.\n" +
		"\n" + rule + "\nSELECTED AGENT: OpenAI GPT-4\n" + rule + "\n" +
		"Using agent: weather_agent_openai\nModel: OpenAI GPT-4\n" + rule + "\n\n" +
		"\n" + rule + "\nCRITICAL ERROR: No agents passed validation.\n" + rule + "\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("Reporter output mismatch (-want +got):\n%s", diff)
	}
}

func TestTruncate(t *testing.T) {
	tests := map[string]struct {
		s    string
		n    int
		want string
	}{
		"short":     {s: "abc", n: 5, want: "abc"},
		"exact":     {s: "abcde", n: 5, want: "abcde"},
		"long":      {s: "abcdef", n: 5, want: "abcde"},
		"multibyte": {s: "°C°C°C", n: 3, want: "°C°"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := console.Truncate(tt.s, tt.n); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
			}
		})
	}
}
