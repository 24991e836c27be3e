// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"sync/atomic"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

// invocationCostManager keeps track of the cost of an invocation.
type invocationCostManager struct {
	llmCalls atomic.Int64
}

// incrementAndEnforceLLMCallsLimit increments the call counter and enforces limit.
func (mgr *invocationCostManager) incrementAndEnforceLLMCallsLimit(limit int) error {
	n := mgr.llmCalls.Add(1)
	if limit > 0 && n > int64(limit) {
		return &LLMCallsLimitExceededError{Limit: limit}
	}
	return nil
}

// InvocationContext represents the data of a single invocation of an agent.
//
// An invocation:
//
//   - Starts with a user message and ends with a final response.
//   - Can contain one or multiple agent calls.
//   - Is handled by the runner.
//
// An invocation runs an agent until it does not request to transfer to another
// agent.
//
// An LLM agent runs steps in a loop until:
//
//   - A final response is generated.
//   - The agent transfers to another agent.
//   - EndInvocation is set to true by any callbacks or tools.
//
// A step calls the LLM only once and yields its response, then calls the tools
// and yields their responses if requested.
//
//	┌─────────────────────── invocation ──────────────────────────┐
//	┌──────────── llm_agent_call_1 ────────────┐ ┌─ agent_call_2 ─┐
//	┌──── step_1 ────────┐ ┌───── step_2 ──────┐
//	[call_llm] [call_tool] [call_llm] [transfer]
type InvocationContext struct {
	SessionService SessionService

	// InvocationID is the id of this invocation context. Readonly.
	InvocationID string

	// Branch is the branch of the invocation context.
	//
	// The format is like agent_1.agent_2.agent_3, where agent_1 is the parent of
	// agent_2, and agent_2 is the parent of agent_3.
	Branch string

	// Agent is the current agent of this invocation context. Readonly.
	Agent Agent

	// UserContent is the user content that started this invocation. Readonly.
	UserContent *genai.Content

	// Session is the current session of this invocation context. Readonly.
	Session *Session

	// EndInvocation terminates this invocation when set by callbacks or tools.
	EndInvocation bool

	// RunConfig configures runtime behavior for this invocation.
	RunConfig *RunConfig

	costManager *invocationCostManager
}

// InvocationContextOption is a function that modifies the [InvocationContext].
type InvocationContextOption func(*InvocationContext)

// WithInvocationID overrides the generated invocation ID.
func WithInvocationID(id string) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.InvocationID = id
	}
}

// WithBranch sets the branch.
func WithBranch(branch string) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.Branch = branch
	}
}

// WithUserContent sets the user content that started the invocation.
func WithUserContent(content *genai.Content) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.UserContent = content
	}
}

// WithRunConfig sets the [RunConfig].
func WithRunConfig(config *RunConfig) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.RunConfig = config
	}
}

// NewInvocationContext creates a new [InvocationContext].
func NewInvocationContext(agent Agent, session *Session, sessionSvc SessionService, opts ...InvocationContextOption) *InvocationContext {
	ictx := &InvocationContext{
		InvocationID:   NewInvocationContextID(),
		Agent:          agent,
		Session:        session,
		SessionService: sessionSvc,
		RunConfig:      &RunConfig{},
		costManager:    &invocationCostManager{},
	}
	for _, opt := range opts {
		opt(ictx)
	}

	return ictx
}

// ForAgent returns a shallow copy of ictx that runs agent.
//
// The copy shares the LLM call budget with ictx, and extends the branch with
// the agent name when ictx already has a branch.
func (ictx *InvocationContext) ForAgent(agent Agent) *InvocationContext {
	child := *ictx
	child.Agent = agent
	if ictx.Branch != "" {
		child.Branch = ictx.Branch + "." + agent.Name()
	}
	if child.costManager == nil {
		child.costManager = &invocationCostManager{}
		ictx.costManager = child.costManager
	}
	return &child
}

// IncrementLLMCallCount tracks number of llm calls made.
func (ictx *InvocationContext) IncrementLLMCallCount() error {
	if ictx.costManager == nil {
		ictx.costManager = &invocationCostManager{}
	}
	return ictx.costManager.incrementAndEnforceLLMCallsLimit(ictx.RunConfig.llmCallsLimit())
}

// AppName returns the app name of the session.
func (ictx *InvocationContext) AppName() string {
	return ictx.Session.AppName
}

// UserID returns the user ID of the session.
func (ictx *InvocationContext) UserID() string {
	return ictx.Session.UserID
}

// NewInvocationContextID generates a new invocation context ID.
func NewInvocationContextID() string {
	return `e-` + uuid.NewString()
}
