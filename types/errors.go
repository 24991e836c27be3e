// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned when a session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionAlreadyExists is returned when creating a session whose ID is taken.
	ErrSessionAlreadyExists = errors.New("session already exists")

	// ErrAgentNotFound is returned when an agent name cannot be resolved in the agent tree.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrToolNotFound is returned when the model calls a function that is not registered.
	ErrToolNotFound = errors.New("tool not found")

	// ErrModelNotFound is returned when no model implementation matches a model name.
	ErrModelNotFound = errors.New("model not found")
)

// NotImplementedError is the error type for unimplemented behaviour.
type NotImplementedError string

// Error returns a string representation of the [NotImplementedError].
func (e NotImplementedError) Error() string {
	return string(e)
}

// LLMCallsLimitExceededError is returned when the number of LLM calls exceeds [RunConfig.MaxLLMCalls].
type LLMCallsLimitExceededError struct {
	Limit int
}

// Error implements error.
func (e *LLMCallsLimitExceededError) Error() string {
	return fmt.Sprintf("max number of llm calls limit of %d exceeded", e.Limit)
}
