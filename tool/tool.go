// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/types"
)

// Tool represents a base class for all tools.
//
// Concrete tools embed *Tool and provide GetDeclaration and Run.
type Tool struct {
	// The name of the tool.
	name string

	// The description of the tool.
	description string

	// Whether the tool is a long running operation, which typically returns a
	// resource id first and finishes the operation later.
	isLongRunning bool
}

// NewTool returns the tool with the given name, description and isLongRunning.
func NewTool(name, description string, isLongRunning bool) *Tool {
	return &Tool{
		name:          name,
		description:   description,
		isLongRunning: isLongRunning,
	}
}

// Name implements [types.Tool].
func (t *Tool) Name() string {
	return t.name
}

// Description implements [types.Tool].
func (t *Tool) Description() string {
	return t.description
}

// IsLongRunning implements [types.Tool].
func (t *Tool) IsLongRunning() bool {
	return t.isLongRunning
}

// SetLongRunning marks the tool as a long running operation.
func (t *Tool) SetLongRunning(isLongRunning bool) {
	t.isLongRunning = isLongRunning
}

// GetDeclaration implements [types.Tool].
func (t *Tool) GetDeclaration() *genai.FunctionDeclaration {
	return nil
}

// Run implements [types.Tool].
func (t *Tool) Run(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	return nil, types.NotImplementedError(fmt.Sprintf("tool %s: Run is not implemented", t.name))
}

// ProcessLLMRequest implements [types.Tool].
//
// The base tool has no declaration, so the request is left as is.
func (t *Tool) ProcessLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
	return nil
}

// Declare adds the declaration of t to request and registers t in the request tool map.
//
// Tools embedding [Tool] call it from their own ProcessLLMRequest.
func Declare(t types.Tool, request *types.LLMRequest) error {
	if t.GetDeclaration() == nil {
		return fmt.Errorf("tool %s has no function declaration", t.Name())
	}
	request.AppendTools(t)
	return nil
}
