// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

// AutoFlow is [SingleFlow] with agent transfer capability.
//
// Agent transfer is allowed in the following direction:
//
//  1. from parent to sub-agent;
//  2. from sub-agent to parent;
//  3. from sub-agent to its peer agents;
//
// For peer-agent transfers, it's only enabled when all below conditions are met:
//
//   - The parent agent is also an LLM agent;
//   - DisallowTransferToPeers of this agent is false (default).
//
// The agent transferred to stays the active agent, and responds to the user's
// next message directly unless it disallows transfer to its parent.
type AutoFlow struct {
	*LLMFlow
}

var _ Flow = (*AutoFlow)(nil)

// NewAutoFlow creates a new [AutoFlow] with the default request processors.
func NewAutoFlow() *AutoFlow {
	flow := &AutoFlow{
		LLMFlow: NewLLMFlow(),
	}
	flow.WithRequestProcessors(AutoRequestProcessors()...)

	return flow
}

// AutoRequestProcessors returns the default [LLMRequestProcessor]s for [AutoFlow].
func AutoRequestProcessors() []LLMRequestProcessor {
	return append(SingleRequestProcessors(), &AgentTransferLLMRequestProcessor{})
}
