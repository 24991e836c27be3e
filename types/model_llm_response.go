// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"google.golang.org/genai"
)

// LLMResponse represents a response from a language model.
type LLMResponse struct {
	// Content is the content of the response.
	Content *genai.Content

	// Partial indicates whether the text content is part of an unfinished text stream.
	// Only used for streaming mode and when the content is plain text.
	Partial bool

	// TurnComplete indicates whether the response from the model is complete.
	// Only used for streaming mode.
	TurnComplete bool

	// FinishReason is why the model stopped generating, when known.
	FinishReason genai.FinishReason

	// GroundingMetadata is the grounding metadata of the response.
	GroundingMetadata *genai.GroundingMetadata

	// ErrorCode is the error code if the response is an error. Code varies by model.
	ErrorCode string

	// ErrorMessage is the error message if the response is an error.
	ErrorMessage string

	// Interrupted indicates that LLM was interrupted when generating the content.
	Interrupted bool

	// UsageMetadata reports token usage when the provider returns it.
	UsageMetadata *genai.GenerateContentResponseUsageMetadata

	// CustomMetadata is an optional key-value label for the response.
	CustomMetadata map[string]any
}

// IsError reports whether the response carries an error code or message.
func (r *LLMResponse) IsError() bool {
	return r.ErrorCode != "" || r.ErrorMessage != ""
}

// GetText returns the first non-empty text of the content, or "".
func (r *LLMResponse) GetText() string {
	if r.Content == nil {
		return ""
	}
	for _, part := range r.Content.Parts {
		if part != nil && part.Text != "" {
			return part.Text
		}
	}
	return ""
}
