// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package llmflow implements the step loop that drives an LLM agent.
//
// A step builds a [types.LLMRequest] through the request processors, calls
// the model, and turns the response into events. When the model requests
// function calls the flow runs the tools and yields a function response
// event, then steps again. The loop stops at the first final response.
//
//	┌──────────────── step ────────────────┐
//	[processors] [call_llm] [call_tools] [transfer]
//
// [SingleFlow] only sees the agent and its tools. [AutoFlow] adds the
// transfer_to_agent function, so the model can hand the conversation to a
// sub-agent, the parent or a peer.
//
// Model calls honour [types.RunConfig.MaxLLMCalls], and before/after model
// and tool callbacks of the agent run around each call.
package llmflow
