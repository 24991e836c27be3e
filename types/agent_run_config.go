// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

// DefaultMaxLLMCalls is the default limit on the total number of llm calls.
const DefaultMaxLLMCalls = 500

// StreamingMode is the streaming mode.
type StreamingMode int

const (
	StreamingModeNone StreamingMode = iota
	StreamingModeSSE
)

// String returns a string representation of the StreamingMode.
func (mode StreamingMode) String() string {
	switch mode {
	case StreamingModeNone:
		return "none"
	case StreamingModeSSE:
		return "sse"
	}
	return ""
}

// RunConfig represents a configs for runtime behavior of agents.
type RunConfig struct {
	// StreamingMode selects unary or server-sent streaming model calls.
	StreamingMode StreamingMode

	// MaxLLMCalls is a limit on the total number of llm calls for a given run.
	//
	// Zero means [DefaultMaxLLMCalls]; a negative value disables the limit.
	MaxLLMCalls int
}

// llmCallsLimit resolves the effective limit of c.
func (c *RunConfig) llmCallsLimit() int {
	if c == nil || c.MaxLLMCalls == 0 {
		return DefaultMaxLLMCalls
	}
	return c.MaxLLMCalls
}
