// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

// SingleFlow is the LLM flow that handles tools calls.
//
// A single flow only consider an agent itself and tools.
// No sub-agents are allowed for single flow.
type SingleFlow struct {
	*LLMFlow
}

var _ Flow = (*SingleFlow)(nil)

// NewSingleFlow creates a new [SingleFlow] with the default request processors.
func NewSingleFlow() *SingleFlow {
	flow := &SingleFlow{
		LLMFlow: NewLLMFlow(),
	}
	flow.WithRequestProcessors(SingleRequestProcessors()...)

	return flow
}

// SingleRequestProcessors returns the default [LLMRequestProcessor]s for [SingleFlow].
func SingleRequestProcessors() []LLMRequestProcessor {
	return []LLMRequestProcessor{
		&BasicLLMRequestProcessor{},
		&InstructionsLLMRequestProcessor{},
		&IdentityLLMRequestProcessor{},
		&ContentLLMRequestProcessor{},
	}
}
