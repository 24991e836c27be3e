// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"

	"google.golang.org/genai"
)

// Tool is a capability an agent can call through function calling.
type Tool interface {
	// Name returns the name the model uses to call the tool.
	Name() string

	// Description returns the description of the tool.
	Description() string

	// IsLongRunning reports whether the tool returns a resource id first and
	// finishes the operation later.
	IsLongRunning() bool

	// GetDeclaration returns the function declaration of the tool, or nil when
	// the tool does not need to be declared to the model.
	GetDeclaration() *genai.FunctionDeclaration

	// Run runs the tool with the arguments decoded from the model's function call.
	Run(ctx context.Context, args map[string]any, toolCtx *ToolContext) (any, error)

	// ProcessLLMRequest lets the tool amend the outgoing LLM request, usually
	// by declaring itself.
	ProcessLLMRequest(ctx context.Context, toolCtx *ToolContext, request *LLMRequest) error
}
