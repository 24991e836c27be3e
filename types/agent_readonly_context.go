// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"maps"

	"google.golang.org/genai"
)

// ReadOnlyContext provides read-only access to agent context.
type ReadOnlyContext struct {
	InvocationContext *InvocationContext
}

// NewReadOnlyContext creates a new read-only context.
func NewReadOnlyContext(ictx *InvocationContext) *ReadOnlyContext {
	return &ReadOnlyContext{
		InvocationContext: ictx,
	}
}

// UserContent returns the user content that started this invocation.
func (rc *ReadOnlyContext) UserContent() *genai.Content {
	return rc.InvocationContext.UserContent
}

// InvocationID returns the current invocation id.
func (rc *ReadOnlyContext) InvocationID() string {
	return rc.InvocationContext.InvocationID
}

// AgentName returns the name of the agent that is currently running.
func (rc *ReadOnlyContext) AgentName() string {
	return rc.InvocationContext.Agent.Name()
}

// State returns a copy of the state of the current session.
func (rc *ReadOnlyContext) State() map[string]any {
	return maps.Clone(rc.InvocationContext.Session.State)
}
