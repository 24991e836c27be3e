// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package agent provides [LLMAgent], an agent driven by a large language model.
//
// An agent holds a model, instructions and tools, and may have sub-agents it
// can hand the conversation to:
//
//	greeter, err := agent.NewLLMAgent(ctx, "greeting_agent",
//		agent.WithModelName("gemini-2.0-flash"),
//		agent.WithDescription("Handles simple greetings and hellos."),
//		agent.WithInstruction("You are the Greeting Agent."),
//		agent.WithTools(sayHello),
//	)
//
// Agents without a model inherit the model of their nearest LLM ancestor.
package agent
