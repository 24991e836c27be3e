// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

// ToolContext represents a context of the tool.
//
// It carries the invocation context, the function call ID and the event
// actions that the tool response event will be emitted with.
type ToolContext struct {
	*CallbackContext

	functionCallID string
}

// NewToolContext creates a new [ToolContext] with the given invocation context.
func NewToolContext(ictx *InvocationContext) *ToolContext {
	return &ToolContext{
		CallbackContext: NewCallbackContext(ictx),
	}
}

// WithFunctionCallID sets the function call ID for the [*ToolContext].
func (tc *ToolContext) WithFunctionCallID(funcCallID string) *ToolContext {
	tc.functionCallID = funcCallID
	return tc
}

// FunctionCallID returns the function call ID for the tool context.
func (tc *ToolContext) FunctionCallID() string {
	return tc.functionCallID
}

// Actions returns the event actions for the tool context.
func (tc *ToolContext) Actions() *EventActions {
	return tc.eventActions
}
