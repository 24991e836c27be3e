// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package types defines the data model shared by agents, models, tools,
// sessions and the runner.
//
// # Agents
//
// An [Agent] is a node in an agent tree. Concrete agents embed [BaseAgent],
// which implements naming, parent links and lookup, and wrap their core logic
// with [BaseAgent.RunWith] to get before and after agent callbacks:
//
//	func (a *MyAgent) Run(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
//		return a.RunWith(ctx, ictx, a.execute)
//	}
//
// [LLMAgent] is the read side of a model-driven agent, used by the LLM flow.
//
// # Events
//
// Every interaction is an [Event]: user input, model output, function calls
// and their responses. An event embeds the [LLMResponse] it came from and
// carries [EventActions] such as a state delta or an agent transfer.
// [Event.IsFinalResponse] marks the event that ends an agent turn.
//
// # Sessions and state
//
// A [Session] holds the events and state of one conversation, managed by a
// [SessionService]. State keys are scoped by prefix:
//
//	StateDelta["app:units"] = "celsius"     // shared across users of the app
//	StateDelta["user:name"] = "srineesh"    // shared across the user's sessions
//	StateDelta["temp:last_city"] = "Tokyo"  // dropped when the event is stored
//	StateDelta["last_city"] = "Tokyo"       // this session only
//
// Callbacks and tools write state through [CallbackContext.State], which
// records writes into the event actions so the session service can persist
// them.
package types
