// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"unicode"
)

// ExecuteFunc is the core logic of an agent, run by [BaseAgent.RunWith].
type ExecuteFunc func(ctx context.Context, ictx *InvocationContext) iter.Seq2[*Event, error]

// BaseAgent implements the agent tree operations of [Agent] for embedding types.
//
// Embedding types provide Run, usually by calling [BaseAgent.RunWith].
type BaseAgent struct {
	self        Agent
	name        string
	description string
	parentAgent Agent
	subAgents   []Agent

	beforeAgentCallbacks []AgentCallback
	afterAgentCallbacks  []AgentCallback

	logger *slog.Logger
}

// BaseAgentOption configures a [BaseAgent].
type BaseAgentOption func(*BaseAgent)

// WithAgentDescription sets the agent description.
func WithAgentDescription(description string) BaseAgentOption {
	return func(a *BaseAgent) {
		a.description = description
	}
}

// WithAgentSubAgents sets the sub-agents.
func WithAgentSubAgents(subAgents ...Agent) BaseAgentOption {
	return func(a *BaseAgent) {
		a.subAgents = append(a.subAgents, subAgents...)
	}
}

// WithBeforeAgentCallbacks appends callbacks run before the agent.
func WithBeforeAgentCallbacks(callbacks ...AgentCallback) BaseAgentOption {
	return func(a *BaseAgent) {
		a.beforeAgentCallbacks = append(a.beforeAgentCallbacks, callbacks...)
	}
}

// WithAfterAgentCallbacks appends callbacks run after the agent.
func WithAfterAgentCallbacks(callbacks ...AgentCallback) BaseAgentOption {
	return func(a *BaseAgent) {
		a.afterAgentCallbacks = append(a.afterAgentCallbacks, callbacks...)
	}
}

// WithAgentLogger sets the logger.
func WithAgentLogger(logger *slog.Logger) BaseAgentOption {
	return func(a *BaseAgent) {
		a.logger = logger
	}
}

// NewBaseAgent returns a [BaseAgent] for self, the embedding agent.
//
// It validates the name and links every sub-agent to self.
func NewBaseAgent(self Agent, name string, opts ...BaseAgentOption) (*BaseAgent, error) {
	if err := ValidateAgentName(name); err != nil {
		return nil, err
	}

	a := &BaseAgent{
		self: self,
		name: name,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default().With(slog.String("agent", name))
	}

	seen := make(map[string]bool, len(a.subAgents))
	for _, sub := range a.subAgents {
		if seen[sub.Name()] {
			return nil, fmt.Errorf("agent %s: duplicate sub-agent name %q", name, sub.Name())
		}
		seen[sub.Name()] = true

		if err := sub.SetParentAgent(self); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// ValidateAgentName reports whether name is usable as an agent name.
func ValidateAgentName(name string) error {
	if name == "" {
		return errors.New("agent name must not be empty")
	}
	if name == AuthorUser {
		return fmt.Errorf("agent name cannot be %q, it is reserved for end-user input", AuthorUser)
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return fmt.Errorf("agent name %q must be an identifier: letters, digits and underscores, not starting with a digit", name)
	}
	return nil
}

// Name implements [Agent].
func (a *BaseAgent) Name() string {
	return a.name
}

// Description implements [Agent].
func (a *BaseAgent) Description() string {
	return a.description
}

// ParentAgent implements [Agent].
func (a *BaseAgent) ParentAgent() Agent {
	return a.parentAgent
}

// SetParentAgent implements [Agent].
func (a *BaseAgent) SetParentAgent(parent Agent) error {
	if a.parentAgent != nil {
		return fmt.Errorf("agent %s already has a parent agent %s", a.name, a.parentAgent.Name())
	}
	a.parentAgent = parent
	return nil
}

// SubAgents implements [Agent].
func (a *BaseAgent) SubAgents() []Agent {
	return a.subAgents
}

// Logger returns the agent logger.
func (a *BaseAgent) Logger() *slog.Logger {
	return a.logger
}

// RootAgent implements [Agent].
func (a *BaseAgent) RootAgent() Agent {
	root := a.self
	for root.ParentAgent() != nil {
		root = root.ParentAgent()
	}
	return root
}

// FindAgent implements [Agent].
func (a *BaseAgent) FindAgent(name string) Agent {
	if name == a.name {
		return a.self
	}
	return a.FindSubAgent(name)
}

// FindSubAgent implements [Agent].
func (a *BaseAgent) FindSubAgent(name string) Agent {
	for _, subAgent := range a.subAgents {
		if result := subAgent.FindAgent(name); result != nil {
			return result
		}
	}
	return nil
}

// RunWith runs execute for the agent, wrapped with the before and after agent callbacks.
func (a *BaseAgent) RunWith(ctx context.Context, parentContext *InvocationContext, execute ExecuteFunc) iter.Seq2[*Event, error] {
	return func(yield func(*Event, error) bool) {
		ictx := parentContext.ForAgent(a.self)

		beforeEvent, err := a.handleAgentCallbacks(ctx, ictx, a.beforeAgentCallbacks, true)
		if err != nil {
			yield(nil, err)
			return
		}
		if beforeEvent != nil {
			if !yield(beforeEvent, nil) {
				return
			}
		}
		if ictx.EndInvocation {
			return
		}

		for event, err := range execute(ctx, ictx) {
			if !yield(event, err) || err != nil {
				return
			}
		}
		if ictx.EndInvocation {
			return
		}

		afterEvent, err := a.handleAgentCallbacks(ctx, ictx, a.afterAgentCallbacks, false)
		if err != nil {
			yield(nil, err)
			return
		}
		if afterEvent != nil {
			yield(afterEvent, nil)
		}
	}
}

// handleAgentCallbacks runs callbacks in order until one returns content.
//
// A before callback returning content ends the invocation.
func (a *BaseAgent) handleAgentCallbacks(ctx context.Context, ictx *InvocationContext, callbacks []AgentCallback, before bool) (*Event, error) {
	if len(callbacks) == 0 {
		return nil, nil
	}

	cctx := NewCallbackContext(ictx)
	for _, callback := range callbacks {
		content, err := callback(cctx)
		if err != nil {
			a.logger.ErrorContext(ctx, "agent callback error", slog.Bool("before", before), slog.Any("error", err))
			return nil, fmt.Errorf("agent %s callback: %w", a.name, err)
		}
		if content != nil {
			if before {
				ictx.EndInvocation = true
			}
			return NewEvent(ictx.InvocationID, a.name).
				WithBranch(ictx.Branch).
				WithContent(content).
				WithActions(cctx.EventActions()), nil
		}
	}

	if cctx.State().HasDelta() {
		return NewEvent(ictx.InvocationID, a.name).
			WithBranch(ictx.Branch).
			WithActions(cctx.EventActions()), nil
	}

	return nil, nil
}
