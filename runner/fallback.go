// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/pkg/logging"
	"github.com/go-a2a/weather-agent-team/session"
	"github.com/go-a2a/weather-agent-team/types"
)

// ErrNoValidAgent is returned by [Select] when no candidate passes validation.
var ErrNoValidAgent = errors.New("no agents passed validation")

const (
	validatorAppName   = "validator"
	validatorUserID    = "check"
	validatorSessionID = "test"
	validatorMessage   = "Hello"
)

// Candidate pairs an agent with the label it is reported under.
type Candidate struct {
	Label string
	Agent types.Agent
}

// Reporter receives the progress of [Select].
type Reporter interface {
	// Validating is called before candidate is validated.
	Validating(candidate Candidate)

	// Valid is called when candidate passed validation.
	Valid(candidate Candidate)

	// Invalid is called with the validation error of candidate.
	Invalid(candidate Candidate, err error)

	// Selected is called with the candidate a runner is returned for.
	Selected(candidate Candidate)

	// NoneValid is called when every candidate failed validation.
	NoneValid()
}

// Validate checks candidate end to end with a throwaway session.
//
// It sends "Hello" through a runner for app "validator" backed by a new
// in-memory session service, drains every event and returns the first error.
// Logs go to the logger of ctx.
func Validate(ctx context.Context, candidate Candidate) error {
	if candidate.Agent == nil {
		return fmt.Errorf("candidate %q has no agent", candidate.Label)
	}

	logger := logging.FromContext(ctx).With(slog.String("candidate", candidate.Label))
	logger.DebugContext(ctx, "validating agent", slog.String("agent", candidate.Agent.Name()))

	sessionService := session.NewInMemoryService(session.WithLogger(logger))
	r, err := New(Config{
		AppName:        validatorAppName,
		Agent:          candidate.Agent,
		SessionService: sessionService,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	if _, err := sessionService.CreateSession(ctx, validatorAppName, validatorUserID, validatorSessionID, nil); err != nil {
		return err
	}

	msg := genai.NewContentFromText(validatorMessage, genai.RoleUser)
	for _, err := range r.Run(ctx, validatorUserID, validatorSessionID, msg, types.RunConfig{}) {
		if err != nil {
			return err
		}
	}

	return nil
}

// Select validates candidates in order and returns a runner for the first
// one that works, along with that candidate.
//
// The runner uses cfg with its Agent replaced by the selected agent. report
// may be nil. When every candidate fails, the error is [ErrNoValidAgent].
func Select(ctx context.Context, candidates []Candidate, cfg Config, report Reporter) (*Runner, Candidate, error) {
	if report == nil {
		report = nopReporter{}
	}

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, Candidate{}, err
		}

		report.Validating(candidate)
		if err := Validate(ctx, candidate); err != nil {
			logging.FromContext(ctx).WarnContext(ctx, "agent failed validation",
				slog.String("candidate", candidate.Label),
				slog.Any("error", err),
			)
			report.Invalid(candidate, err)
			continue
		}
		report.Valid(candidate)
		report.Selected(candidate)

		cfg.Agent = candidate.Agent
		r, err := New(cfg)
		if err != nil {
			return nil, Candidate{}, err
		}
		return r, candidate, nil
	}

	report.NoneValid()
	return nil, Candidate{}, ErrNoValidAgent
}

type nopReporter struct{}

func (nopReporter) Validating(Candidate) {}
func (nopReporter) Valid(Candidate) {}
func (nopReporter) Invalid(Candidate, error) {}
func (nopReporter) Selected(Candidate) {}
func (nopReporter) NoneValid() {}
