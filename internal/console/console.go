// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package console prints the conversation trace of the weather programs.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/internal/pool"
	"github.com/go-a2a/weather-agent-team/runner"
	"github.com/go-a2a/weather-agent-team/types"
)

// Banner widths.
const (
	Wide   = 80
	Narrow = 60
)

// NoFinalResponse is printed when the agent yields no final response.
const NoFinalResponse = "Agent did not produce a final response."

// errorLimit is the number of characters of an error that are printed.
const errorLimit = 100

// Rule prints a line of width "=" characters.
func Rule(w io.Writer, width int) {
	fmt.Fprintln(w, strings.Repeat("=", width))
}

// Banner prints title between two rules of width, after an empty line.
func Banner(w io.Writer, width int, title string) {
	fmt.Fprintln(w)
	Rule(w, width)
	fmt.Fprintln(w, title)
	Rule(w, width)
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// CallAgent sends query through r and prints the final response of the agent.
//
// Errors of the run are printed in place of the response, so the
// conversation can continue with the next query. The error is also returned.
func CallAgent(ctx context.Context, w io.Writer, r *runner.Runner, userID, sessionID, query string) error {
	fmt.Fprintf(w, "\n>>> User Query: %s\n", query)

	msg := genai.NewContentFromText(query, genai.RoleUser)
	finalResponseText := NoFinalResponse
	var runErr error
	for event, err := range r.Run(ctx, userID, sessionID, msg, types.RunConfig{}) {
		if err != nil {
			runErr = err
			finalResponseText = "Error during agent execution: " + Truncate(err.Error(), errorLimit)
			break
		}
		if !event.IsFinalResponse() {
			continue
		}

		if content := event.GetContent(); content != nil && len(content.Parts) > 0 {
			finalResponseText = content.Parts[0].Text
		} else if event.Actions != nil && event.Actions.Escalate {
			reason := "No specific message."
			if event.LLMResponse != nil && event.ErrorMessage != "" {
				reason = event.ErrorMessage
			}
			finalResponseText = "Agent escalated: " + reason
		}
		break
	}

	fmt.Fprintf(w, "<<< Agent Response: %s\n", finalResponseText)
	return runErr
}

// CallTeam sends query through r and prints the text of every event of the
// agent team.
func CallTeam(ctx context.Context, w io.Writer, r *runner.Runner, userID, sessionID, query string) error {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", Narrow))
	fmt.Fprintf(w, "User Query: %s\n", query)
	fmt.Fprintln(w, strings.Repeat("=", Narrow))

	buf := pool.Buffer.Get()
	defer pool.Buffer.Put(buf)

	msg := genai.NewContentFromText(query, genai.RoleUser)
	for event, err := range r.Run(ctx, userID, sessionID, msg, types.RunConfig{}) {
		if err != nil {
			return err
		}
		content := event.GetContent()
		if content == nil {
			continue
		}
		for _, part := range content.Parts {
			if part != nil && part.Text != "" {
				buf.WriteString(part.Text)
			}
		}
	}

	fmt.Fprintf(w, "\nAgent Response:\n%s\n", buf.String())
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("-", Narrow))
	return nil
}

// Reporter prints the progress of [runner.Select].
type Reporter struct {
	W io.Writer
}

var _ runner.Reporter = (*Reporter)(nil)

// Validating implements [runner.Reporter].
func (r *Reporter) Validating(candidate runner.Candidate) {
	fmt.Fprintf(r.W, "Validating agent: %s...\n", candidate.Label)
}

// Valid implements [runner.Reporter].
func (r *Reporter) Valid(candidate runner.Candidate) {
	fmt.Fprintf(r.W, "✓ Agent '%s' is valid and working.\n", candidate.Label)
}

// Invalid implements [runner.Reporter].
func (r *Reporter) Invalid(candidate runner.Candidate, err error) {
	fmt.Fprintf(r.W, "✗ Agent '%s' failed validation: %s...\n", candidate.Label, Truncate(err.Error(), errorLimit))
}

// Selected implements [runner.Reporter].
func (r *Reporter) Selected(candidate runner.Candidate) {
	Banner(r.W, Wide, "SELECTED AGENT: "+candidate.Label)
	fmt.Fprintf(r.W, "Using agent: %s\n", candidate.Agent.Name())
	fmt.Fprintf(r.W, "Model: %s\n", candidate.Label)
	Rule(r.W, Wide)
	fmt.Fprintln(r.W)
}

// NoneValid implements [runner.Reporter].
func (r *Reporter) NoneValid() {
	Banner(r.W, Wide, "CRITICAL ERROR: No agents passed validation.")
}
