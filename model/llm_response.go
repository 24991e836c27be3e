// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/types"
)

// CreateLLMResponse creates an [types.LLMResponse] from a [*genai.GenerateContentResponse].
//
// The content is taken from the first candidate. A candidate without content,
// or a blocked prompt, yields an error response.
func CreateLLMResponse(resp *genai.GenerateContentResponse) *types.LLMResponse {
	response := &types.LLMResponse{}

	if resp == nil {
		response.ErrorCode = "UNKNOWN_ERROR"
		response.ErrorMessage = "Generate content response is nil."
		return response
	}
	response.UsageMetadata = resp.UsageMetadata

	switch {
	case len(resp.Candidates) > 0:
		candidate := resp.Candidates[0]
		response.FinishReason = candidate.FinishReason
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			response.Content = candidate.Content
			response.GroundingMetadata = candidate.GroundingMetadata
		} else {
			response.ErrorCode = string(candidate.FinishReason)
			response.ErrorMessage = candidate.FinishMessage
		}

	case resp.PromptFeedback != nil:
		response.ErrorCode = string(resp.PromptFeedback.BlockReason)
		response.ErrorMessage = resp.PromptFeedback.BlockReasonMessage
		if response.ErrorCode == "" {
			response.ErrorCode = "UNKNOWN_BLOCK"
		}
		if response.ErrorMessage == "" {
			response.ErrorMessage = "Content was blocked. Check prompt feedback for details."
		}

	default:
		response.ErrorCode = "UNKNOWN_ERROR"
		response.ErrorMessage = "Unknown error in generate content response."
	}

	return response
}

func newAggregateText(s string) *types.LLMResponse {
	return &types.LLMResponse{
		Content:      genai.NewContentFromText(s, genai.RoleModel),
		FinishReason: genai.FinishReasonStop,
	}
}

// containsText returns true when the first part has a non-empty Text field.
func containsText(r *types.LLMResponse) bool {
	return r.Content != nil && len(r.Content.Parts) > 0 && r.Content.Parts[0].Text != ""
}

// finishStop reports whether the first candidate finished with STOP.
func finishStop(r *genai.GenerateContentResponse) bool {
	return r != nil && len(r.Candidates) > 0 && r.Candidates[0].FinishReason == genai.FinishReasonStop
}

const responseLogFmt = `
LLM Response:
-----------------------------------------------------------
Text:
%s
-----------------------------------------------------------
Function calls:
%s
-----------------------------------------------------------
`

// buildResponseLog renders the text and function calls of a response for debug logs.
func buildResponseLog(resp *types.LLMResponse) slog.Attr {
	var (
		texts []string
		calls []string
	)
	if resp.Content != nil {
		for _, part := range resp.Content.Parts {
			switch {
			case part.Text != "":
				texts = append(texts, part.Text)
			case part.FunctionCall != nil:
				calls = append(calls, fmt.Sprintf("name: %s, args: %v", part.FunctionCall.Name, part.FunctionCall.Args))
			}
		}
	}

	return slog.String("response", fmt.Sprintf(responseLogFmt, strings.Join(texts, ""), strings.Join(calls, "\n")))
}
