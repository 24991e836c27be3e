// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner sends user messages through an agent tree and a session.
//
// A [Runner] loads the session, records the user message, picks the agent
// that should answer and records every event the agent yields.
//
// [Select] implements model fallback: it validates a list of candidate
// agents in order and returns a runner for the first one that answers a
// test message without error.
package runner
