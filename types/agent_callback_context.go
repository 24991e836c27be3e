// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

// CallbackContext provides the context of various callbacks within an agent run.
type CallbackContext struct {
	*ReadOnlyContext

	eventActions *EventActions
	state        *State
}

// NewCallbackContext creates a new [*CallbackContext] recording state changes into fresh [EventActions].
func NewCallbackContext(ictx *InvocationContext) *CallbackContext {
	return NewCallbackContextWithActions(ictx, NewEventActions())
}

// NewCallbackContextWithActions creates a new [*CallbackContext] recording state changes into actions.
func NewCallbackContextWithActions(ictx *InvocationContext, actions *EventActions) *CallbackContext {
	if actions.StateDelta == nil {
		actions.StateDelta = make(map[string]any)
	}
	if ictx.Session.State == nil {
		ictx.Session.State = make(map[string]any)
	}

	return &CallbackContext{
		ReadOnlyContext: NewReadOnlyContext(ictx),
		eventActions:    actions,
		state:           NewState(ictx.Session.State, actions.StateDelta),
	}
}

// EventActions returns the event actions collected by this context.
func (cc *CallbackContext) EventActions() *EventActions {
	return cc.eventActions
}

// State returns the delta-aware state of the current session.
//
// Writes are visible to the session immediately and recorded in [CallbackContext.EventActions].
func (cc *CallbackContext) State() *State {
	return cc.state
}
