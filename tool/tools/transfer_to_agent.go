// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/go-a2a/weather-agent-team/types"
)

// TransferToAgentName is the name of the function the model calls to hand the
// conversation over to another agent.
const TransferToAgentName = "transfer_to_agent"

// TransferToAgentArgs are the arguments of transfer_to_agent.
type TransferToAgentArgs struct {
	AgentName string `json:"agent_name" description:"The name of the agent to transfer to."`
}

// TransferToAgent transfers the question to another agent.
//
// It only records the target on the event actions; the flow performs the transfer.
func TransferToAgent(ctx context.Context, toolCtx *types.ToolContext, args TransferToAgentArgs) (map[string]any, error) {
	toolCtx.Actions().TransferToAgent = args.AgentName
	return map[string]any{}, nil
}

// NewTransferToAgentTool returns the transfer_to_agent tool.
func NewTransferToAgentTool() *FunctionTool[TransferToAgentArgs, map[string]any] {
	t, err := NewContextFunctionTool(TransferToAgent,
		WithName(TransferToAgentName),
		WithDescription("Transfer the question to another agent."),
	)
	if err != nil {
		// TransferToAgentArgs is a fixed struct, so the declaration always builds.
		panic(err)
	}
	return t
}
