// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"
	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/tool"
	"github.com/go-a2a/weather-agent-team/types"
)

// Function is a typed tool function.
//
// Args is decoded from the arguments of the model's function call. Result is
// sent back to the model as the function response.
type Function[Args, Result any] func(ctx context.Context, args Args) (Result, error)

// ContextFunction is a [Function] that also receives the [types.ToolContext],
// for tools that read or write session state.
type ContextFunction[Args, Result any] func(ctx context.Context, toolCtx *types.ToolContext, args Args) (Result, error)

// Option configures a [FunctionTool].
type Option func(*functionConfig)

type functionConfig struct {
	name          string
	description   string
	isLongRunning bool
}

// WithName sets the name the model calls the function by.
//
// It defaults to the Go function name.
func WithName(name string) Option {
	return func(c *functionConfig) {
		c.name = name
	}
}

// WithDescription sets the description of the function.
//
// The model relies on the description to decide when to call the tool.
func WithDescription(description string) Option {
	return func(c *functionConfig) {
		c.description = description
	}
}

// WithLongRunning marks the function as a long running operation.
func WithLongRunning() Option {
	return func(c *functionConfig) {
		c.isLongRunning = true
	}
}

// FunctionTool is a tool that wraps a typed Go function.
type FunctionTool[Args, Result any] struct {
	*tool.Tool

	fn          ContextFunction[Args, Result]
	declaration *genai.FunctionDeclaration
}

var _ types.Tool = (*FunctionTool[struct{}, any])(nil)

// NewFunctionTool returns a [FunctionTool] for fn.
//
// The parameters schema is derived from Args, which must be a struct. See
// [NewContextFunctionTool] for functions that need the tool context.
func NewFunctionTool[Args, Result any](fn Function[Args, Result], opts ...Option) (*FunctionTool[Args, Result], error) {
	if fn == nil {
		return nil, fmt.Errorf("function cannot be nil")
	}

	name := functionName(fn)
	return newFunctionTool(name, func(ctx context.Context, _ *types.ToolContext, args Args) (Result, error) {
		return fn(ctx, args)
	}, opts...)
}

// NewContextFunctionTool returns a [FunctionTool] for fn, which receives the tool context.
func NewContextFunctionTool[Args, Result any](fn ContextFunction[Args, Result], opts ...Option) (*FunctionTool[Args, Result], error) {
	if fn == nil {
		return nil, fmt.Errorf("function cannot be nil")
	}

	return newFunctionTool(functionName(fn), fn, opts...)
}

func newFunctionTool[Args, Result any](name string, fn ContextFunction[Args, Result], opts ...Option) (*FunctionTool[Args, Result], error) {
	config := &functionConfig{name: name}
	for _, opt := range opts {
		opt(config)
	}

	decl, err := buildFunctionDeclaration(config.name, config.description, reflect.TypeFor[Args]())
	if err != nil {
		return nil, err
	}

	return &FunctionTool[Args, Result]{
		Tool:        tool.NewTool(config.name, config.description, config.isLongRunning),
		fn:          fn,
		declaration: decl,
	}, nil
}

// GetDeclaration implements [types.Tool].
func (t *FunctionTool[Args, Result]) GetDeclaration() *genai.FunctionDeclaration {
	return t.declaration
}

// Run implements [types.Tool].
//
// A call missing mandatory arguments is answered with an error result instead
// of invoking the function, so the model can correct the call.
func (t *FunctionTool[Args, Result]) Run(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	if missing := t.missingArgs(args); len(missing) > 0 {
		return map[string]any{
			"error": fmt.Sprintf("Invoking `%s()` failed as the following mandatory input parameters are not present:\n%s\nYou could retry calling this tool, but it is IMPORTANT for you to provide all the mandatory parameters.",
				t.Name(), strings.Join(missing, "\n")),
		}, nil
	}

	typed, err := decodeArgs[Args](args)
	if err != nil {
		return nil, fmt.Errorf("tool %s: decode arguments: %w", t.Name(), err)
	}

	result, err := t.fn(ctx, toolCtx, typed)
	if err != nil {
		return nil, err
	}

	return NormalizeResult(result)
}

// ProcessLLMRequest implements [types.Tool].
func (t *FunctionTool[Args, Result]) ProcessLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
	return tool.Declare(t, request)
}

func (t *FunctionTool[Args, Result]) missingArgs(args map[string]any) []string {
	if t.declaration.Parameters == nil {
		return nil
	}

	var missing []string
	for _, name := range t.declaration.Parameters.Required {
		if _, ok := args[name]; !ok {
			missing = append(missing, name)
		}
	}
	slices.Sort(missing)

	return missing
}

// decodeArgs decodes the function call arguments into T.
func decodeArgs[T any](args map[string]any) (T, error) {
	var typed T
	if args == nil {
		args = map[string]any{}
	}

	data, err := json.Marshal(args)
	if err != nil {
		return typed, err
	}
	if err := json.Unmarshal(data, &typed, json.MatchCaseInsensitiveNames(true)); err != nil {
		return typed, err
	}

	return typed, nil
}

// NormalizeResult converts a tool result into the JSON object sent to the model.
//
// Results that do not encode as a JSON object are wrapped as {"result": value}.
func NormalizeResult(result any) (map[string]any, error) {
	if m, ok := result.(map[string]any); ok && m != nil {
		return m, nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decode tool result: %w", err)
	}
	if m, ok := decoded.(map[string]any); ok {
		return m, nil
	}

	return map[string]any{"result": decoded}, nil
}
