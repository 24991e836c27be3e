// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"iter"

	"google.golang.org/genai"
)

// AgentCallback is invoked before or after an agent runs.
//
// Returning non-nil content replaces the agent output with that content.
type AgentCallback func(cctx *CallbackContext) (*genai.Content, error)

// Agent represents an agent in an agent tree.
type Agent interface {
	// Name returns the agent's name.
	//
	// Agent name must be an identifier and unique within the agent tree.
	// Agent name cannot be "user", since it's reserved for end-user's input.
	Name() string

	// Description returns the description about the agent's capability.
	//
	// The model uses this to determine whether to delegate control to the agent.
	Description() string

	// ParentAgent is the parent agent of this agent, or nil for the root.
	ParentAgent() Agent

	// SetParentAgent links the agent under parent.
	//
	// An agent can only be added as sub-agent once.
	SetParentAgent(parent Agent) error

	// SubAgents returns the sub-agents of this agent.
	SubAgents() []Agent

	// RootAgent returns the root of the agent tree.
	RootAgent() Agent

	// FindAgent finds the agent with the given name in this agent and its descendants.
	FindAgent(name string) Agent

	// FindSubAgent finds the agent with the given name in this agent's descendants.
	FindSubAgent(name string) Agent

	// Run is the entry method to run an agent via text-based conversation.
	Run(ctx context.Context, parentContext *InvocationContext) iter.Seq2[*Event, error]
}

// InstructionProvider is a function that provides instructions based on context.
type InstructionProvider func(rctx *ReadOnlyContext) (string, error)

// BeforeModelCallback is called before sending a request to the model.
//
// Returning a non-nil response skips the model call.
type BeforeModelCallback func(cctx *CallbackContext, request *LLMRequest) (*LLMResponse, error)

// AfterModelCallback is called after receiving a response from the model.
//
// Returning a non-nil response replaces the model response.
type AfterModelCallback func(cctx *CallbackContext, response *LLMResponse) (*LLMResponse, error)

// BeforeToolCallback is called before executing a tool.
//
// Returning a non-nil result skips the tool.
type BeforeToolCallback func(tool Tool, args map[string]any, toolCtx *ToolContext) (map[string]any, error)

// AfterToolCallback is called after executing a tool.
//
// Returning a non-nil result replaces the tool result.
type AfterToolCallback func(tool Tool, args map[string]any, toolCtx *ToolContext, toolResponse map[string]any) (map[string]any, error)

// IncludeContents whether to include contents in the model request.
type IncludeContents string

const (
	IncludeContentsDefault IncludeContents = "default"
	IncludeContentsNone    IncludeContents = "none"
)

// LLMAgent is an [Agent] driven by a large language model.
//
// The LLM flow reads the agent configuration through this interface.
type LLMAgent interface {
	Agent

	// CanonicalModel returns the model of the agent, inheriting from the
	// nearest LLMAgent ancestor when unset.
	CanonicalModel(ctx context.Context) (Model, error)

	// CanonicalInstruction returns the resolved instruction and whether it
	// came from an [InstructionProvider].
	CanonicalInstruction(rctx *ReadOnlyContext) (string, bool, error)

	// CanonicalGlobalInstruction is like CanonicalInstruction for the global instruction.
	CanonicalGlobalInstruction(rctx *ReadOnlyContext) (string, bool, error)

	// CanonicalTools returns the tools of the agent.
	CanonicalTools(rctx *ReadOnlyContext) []Tool

	// GenerateContentConfig returns the base [*genai.GenerateContentConfig] for requests.
	GenerateContentConfig() *genai.GenerateContentConfig

	// DisallowTransferToParent reports whether LLM-controlled transfer to the parent agent is disabled.
	DisallowTransferToParent() bool

	// DisallowTransferToPeers reports whether LLM-controlled transfer to peer agents is disabled.
	DisallowTransferToPeers() bool

	// IncludeContents returns the mode of include contents in the model request.
	IncludeContents() IncludeContents

	// OutputSchema returns the structured output schema, or nil.
	OutputSchema() *genai.Schema

	BeforeModelCallbacks() []BeforeModelCallback
	AfterModelCallbacks() []AfterModelCallback
	BeforeToolCallbacks() []BeforeToolCallback
	AfterToolCallbacks() []AfterToolCallback
}
