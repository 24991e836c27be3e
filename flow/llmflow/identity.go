// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"iter"

	"github.com/go-a2a/weather-agent-team/types"
)

// IdentityLLMRequestProcessor gives the agent identity from the framework.
type IdentityLLMRequestProcessor struct{}

var _ LLMRequestProcessor = (*IdentityLLMRequestProcessor)(nil)

// Run implements [LLMRequestProcessor].
func (p *IdentityLLMRequestProcessor) Run(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		request.AppendInstructions(identityInstruction(ictx.Agent))
	}
}

func identityInstruction(agent types.Agent) string {
	si := `You are an agent. Your internal name is "` + agent.Name() + `".`
	if desc := agent.Description(); desc != "" {
		si += ` The description about you is "` + desc + `"`
	}
	return si
}
