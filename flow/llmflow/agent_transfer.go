// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/go-a2a/weather-agent-team/tool/tools"
	"github.com/go-a2a/weather-agent-team/types"
)

// AgentTransferLLMRequestProcessor lets the model transfer the conversation to another agent.
//
// It lists the transfer targets in the system instruction and declares the
// transfer_to_agent function.
type AgentTransferLLMRequestProcessor struct{}

var _ LLMRequestProcessor = (*AgentTransferLLMRequestProcessor)(nil)

// Run implements [LLMRequestProcessor].
func (p *AgentTransferLLMRequestProcessor) Run(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		llmAgent, ok := ictx.Agent.(types.LLMAgent)
		if !ok {
			return
		}

		transferTargets := getTransferTargets(llmAgent)
		if len(transferTargets) == 0 {
			return
		}

		request.AppendInstructions(buildTargetAgentsInstructions(llmAgent, transferTargets))

		transferTool := tools.NewTransferToAgentTool()
		if err := transferTool.ProcessLLMRequest(ctx, types.NewToolContext(ictx), request); err != nil {
			yield(nil, fmt.Errorf("declare %s: %w", tools.TransferToAgentName, err))
		}
	}
}

func buildTargetAgentsInfo(targetAgent types.Agent) string {
	return "\nAgent name: " + targetAgent.Name() + "\nAgent description: " + targetAgent.Description() + "\n"
}

func buildTargetAgentsInstructions(llmAgent types.LLMAgent, targetAgents []types.Agent) string {
	infos := make([]string, len(targetAgents))
	for i, targetAgent := range targetAgents {
		infos[i] = buildTargetAgentsInfo(targetAgent)
	}

	var sb strings.Builder
	sb.WriteString("\nYou have a list of other agents to transfer to:\n\n")
	sb.WriteString(strings.Join(infos, "\n"))
	sb.WriteString(`

If you are the best to answer the question according to your description, you
can answer it.

If another agent is better for answering the question according to its
description, call ` + "`" + tools.TransferToAgentName + "`" + ` function to transfer the
question to that agent. When transferring, do not generate any text other than
the function call.
`)

	if parent := llmAgent.ParentAgent(); parent != nil && !llmAgent.DisallowTransferToParent() {
		sb.WriteString(`
Your parent agent is ` + parent.Name() + `. If neither the other agents nor
you are best for answering the question according to the descriptions, transfer
to your parent agent.
`)
	}

	return sb.String()
}

// getTransferTargets returns the agents llmAgent may transfer to.
//
// Sub-agents are always targets. The parent and the peers are targets only
// when the parent is an [types.LLMAgent] and transfer to them is allowed.
func getTransferTargets(llmAgent types.LLMAgent) []types.Agent {
	targets := append([]types.Agent(nil), llmAgent.SubAgents()...)

	parent, ok := llmAgent.ParentAgent().(types.LLMAgent)
	if !ok {
		return targets
	}

	if !llmAgent.DisallowTransferToParent() {
		targets = append(targets, parent)
	}

	if !llmAgent.DisallowTransferToPeers() {
		for _, peer := range parent.SubAgents() {
			if peer.Name() != llmAgent.Name() {
				targets = append(targets, peer)
			}
		}
	}

	return targets
}
