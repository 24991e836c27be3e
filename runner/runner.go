// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/types"
)

// Config configures a [Runner].
type Config struct {
	// AppName is the application name sessions are looked up under.
	AppName string

	// Agent is the root agent of the agent tree.
	Agent types.Agent

	// SessionService stores the sessions the runner reads and appends events to.
	SessionService types.SessionService

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Runner runs agents for one app, sending user messages through a session.
type Runner struct {
	appName        string
	agent          types.Agent
	sessionService types.SessionService
	logger         *slog.Logger
}

// New creates a new [Runner] from cfg.
func New(cfg Config) (*Runner, error) {
	switch {
	case cfg.AppName == "":
		return nil, errors.New("runner: app name must not be empty")
	case cfg.Agent == nil:
		return nil, errors.New("runner: agent must not be nil")
	case cfg.SessionService == nil:
		return nil, errors.New("runner: session service must not be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		appName:        cfg.AppName,
		agent:          cfg.Agent,
		sessionService: cfg.SessionService,
		logger:         logger.With(slog.String("app", cfg.AppName)),
	}, nil
}

// AppName returns the app name of the runner.
func (r *Runner) AppName() string {
	return r.appName
}

// Agent returns the root agent of the runner.
func (r *Runner) Agent() types.Agent {
	return r.agent
}

// SessionService returns the session service of the runner.
func (r *Runner) SessionService() types.SessionService {
	return r.sessionService
}

// Run sends msg through the session and yields the events of the invocation.
//
// Every event that is not partial is appended to the session before it is
// yielded. The iteration stops at the first error.
func (r *Runner) Run(ctx context.Context, userID, sessionID string, msg *genai.Content, cfg types.RunConfig) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		session, err := r.sessionService.GetSession(ctx, r.appName, userID, sessionID, nil)
		if err != nil {
			yield(nil, fmt.Errorf("runner: %w", err))
			return
		}

		if msg != nil && msg.Role == "" {
			userMsg := *msg
			userMsg.Role = genai.RoleUser
			msg = &userMsg
		}

		ictx := types.NewInvocationContext(r.agent, session, r.sessionService,
			types.WithUserContent(msg),
			types.WithRunConfig(&cfg),
		)

		if msg != nil {
			userEvent := types.NewEvent(ictx.InvocationID, types.AuthorUser).WithContent(msg)
			if _, err := r.sessionService.AppendEvent(ctx, session, userEvent); err != nil {
				yield(nil, fmt.Errorf("runner: append user message: %w", err))
				return
			}
		}

		ictx.Agent = r.findAgentToRun(ctx, session)
		r.logger.DebugContext(ctx, "running agent",
			slog.String("agent", ictx.Agent.Name()),
			slog.String("session", sessionID),
			slog.String("invocation", ictx.InvocationID),
		)

		for event, err := range ictx.Agent.Run(ctx, ictx) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !event.IsPartial() {
				if _, err := r.sessionService.AppendEvent(ctx, session, event); err != nil {
					yield(nil, fmt.Errorf("runner: append event: %w", err))
					return
				}
			}
			if !yield(event, nil) {
				return
			}
		}
	}
}

// findAgentToRun finds the agent to run to continue the session.
//
// It is the author of the latest agent event, as long as every agent from it
// up to the root allows transfer to its parent. Otherwise it is the root agent.
func (r *Runner) findAgentToRun(ctx context.Context, session *types.Session) types.Agent {
	for i := len(session.Events) - 1; i >= 0; i-- {
		event := session.Events[i]
		if event.Author == types.AuthorUser {
			continue
		}
		if event.Author == r.agent.Name() {
			return r.agent
		}

		agent := r.agent.FindSubAgent(event.Author)
		if agent == nil {
			r.logger.WarnContext(ctx, "event author not found in agent tree", slog.String("author", event.Author))
			continue
		}
		if isTransferableAcrossAgentTree(agent) {
			return agent
		}
	}

	return r.agent
}

// isTransferableAcrossAgentTree reports whether agent can transfer back to the root.
func isTransferableAcrossAgentTree(agent types.Agent) bool {
	for agent != nil {
		llmAgent, ok := agent.(types.LLMAgent)
		if !ok {
			return false
		}
		if llmAgent.ParentAgent() == nil {
			return true
		}
		if llmAgent.DisallowTransferToParent() {
			return false
		}
		agent = llmAgent.ParentAgent()
	}
	return true
}
