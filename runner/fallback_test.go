// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package runner_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/weather-agent-team/agent"
	"github.com/go-a2a/weather-agent-team/internal/fakellm"
	"github.com/go-a2a/weather-agent-team/runner"
	"github.com/go-a2a/weather-agent-team/session"
)

// recorder records the calls of a [runner.Reporter].
type recorder struct {
	calls []string
}

var _ runner.Reporter = (*recorder)(nil)

func (r *recorder) Validating(c runner.Candidate) {
	r.calls = append(r.calls, "validating "+c.Label)
}

func (r *recorder) Valid(c runner.Candidate) {
	r.calls = append(r.calls, "valid "+c.Label)
}

func (r *recorder) Invalid(c runner.Candidate, err error) {
	r.calls = append(r.calls, fmt.Sprintf("invalid %s: %v", c.Label, err))
}

func (r *recorder) Selected(c runner.Candidate) {
	r.calls = append(r.calls, "selected "+c.Label)
}

func (r *recorder) NoneValid() {
	r.calls = append(r.calls, "none valid")
}

func geminiCandidate(t *testing.T, err error) runner.Candidate {
	t.Helper()

	llm := fakellm.NewFailing("gemini-2.5-flash", err)
	return runner.Candidate{Label: "Gemini", Agent: newAgent(t, "weather_agent_gemini", agent.WithModel(llm))}
}

func openAICandidate(t *testing.T) runner.Candidate {
	t.Helper()

	llm := fakellm.New("openai/gpt-4.1", fakellm.Text("Hello! How can I help?"))
	return runner.Candidate{Label: "OpenAI GPT-4", Agent: newAgent(t, "weather_agent_openai", agent.WithModel(llm))}
}

func TestValidate(t *testing.T) {
	if err := runner.Validate(t.Context(), openAICandidate(t)); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	wantErr := errors.New("API key not valid")
	if err := runner.Validate(t.Context(), geminiCandidate(t, wantErr)); !errors.Is(err, wantErr) {
		t.Errorf("Validate() error = %v, want %v", err, wantErr)
	}

	if err := runner.Validate(t.Context(), runner.Candidate{Label: "empty"}); err == nil {
		t.Error("Validate() without an agent error = nil")
	}
}

func TestSelect(t *testing.T) {
	invalidKey := errors.New("API key not valid")
	openai := openAICandidate(t)

	report := &recorder{}
	sessionService := session.NewInMemoryService()
	r, selected, err := runner.Select(t.Context(),
		[]runner.Candidate{geminiCandidate(t, invalidKey), openai},
		runner.Config{AppName: appName, SessionService: sessionService},
		report,
	)
	if err != nil {
		t.Fatal(err)
	}
	if selected.Label != openai.Label || r.Agent() != openai.Agent {
		t.Errorf("selected %s, want %s", selected.Label, openai.Label)
	}
	if r.SessionService() != sessionService || r.AppName() != appName {
		t.Error("runner does not use the given config")
	}

	want := []string{
		"validating Gemini",
		"invalid Gemini: API key not valid",
		"validating OpenAI GPT-4",
		"valid OpenAI GPT-4",
		"selected OpenAI GPT-4",
	}
	if diff := cmp.Diff(want, report.calls); diff != "" {
		t.Errorf("reported calls mismatch (-want +got):\n%s", diff)
	}

	// Validation runs in its own session service.
	if sessions, err := sessionService.ListSessions(t.Context(), "validator", "check"); err != nil || len(sessions) != 0 {
		t.Errorf("ListSessions() = %d sessions, %v, want none", len(sessions), err)
	}
}

func TestSelect_NoneValid(t *testing.T) {
	report := &recorder{}
	_, _, err := runner.Select(t.Context(),
		[]runner.Candidate{geminiCandidate(t, errors.New("quota exceeded"))},
		runner.Config{AppName: appName, SessionService: session.NewInMemoryService()},
		report,
	)
	if !errors.Is(err, runner.ErrNoValidAgent) {
		t.Fatalf("Select() error = %v, want %v", err, runner.ErrNoValidAgent)
	}
	if got := report.calls[len(report.calls)-1]; got != "none valid" {
		t.Errorf("last report = %q, want none valid", got)
	}
}

func TestSelect_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, _, err := runner.Select(ctx,
		[]runner.Candidate{openAICandidate(t)},
		runner.Config{AppName: appName, SessionService: session.NewInMemoryService()},
		nil,
	)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Select() error = %v, want %v", err, context.Canceled)
	}
}
