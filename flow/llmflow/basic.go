// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"fmt"
	"iter"

	"github.com/tiendc/go-deepcopy"
	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/types"
)

// BasicLLMRequestProcessor sets the model name, generation config and output schema of the request.
type BasicLLMRequestProcessor struct{}

var _ LLMRequestProcessor = (*BasicLLMRequestProcessor)(nil)

// Run implements [LLMRequestProcessor].
func (p *BasicLLMRequestProcessor) Run(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		llmAgent, ok := ictx.Agent.(types.LLMAgent)
		if !ok {
			return
		}

		model, err := llmAgent.CanonicalModel(ctx)
		if err != nil {
			yield(nil, err)
			return
		}
		request.Model = model.Name()

		// The request config is appended to by later processors and tools, so
		// the agent config is copied rather than shared between steps.
		config := &genai.GenerateContentConfig{}
		if agentConfig := llmAgent.GenerateContentConfig(); agentConfig != nil {
			if err := deepcopy.Copy(config, agentConfig); err != nil {
				yield(nil, fmt.Errorf("copy generate content config: %w", err))
				return
			}
		}
		request.Config = config

		if outputSchema := llmAgent.OutputSchema(); outputSchema != nil {
			request.SetOutputSchema(outputSchema)
		}
	}
}
