// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import "maps"

// EventActions represents the actions attached to an event.
type EventActions struct {
	// SkipSummarization if true, it won't call model to summarize function response.
	//
	// Only used for functionResponse event.
	SkipSummarization bool

	// StateDelta indicates that the event is updating the state with the given delta.
	StateDelta map[string]any

	// TransferToAgent if set, the event transfers to the specified agent.
	TransferToAgent string

	// Escalate is the agent is escalating to a higher level agent.
	Escalate bool
}

// NewEventActions creates a new [EventActions] instance with default values.
func NewEventActions() *EventActions {
	return &EventActions{
		StateDelta: make(map[string]any),
	}
}

// WithSkipSummarization configures the skipSummarization to the [EventActions].
func (ea *EventActions) WithSkipSummarization(skipSummarization bool) *EventActions {
	ea.SkipSummarization = skipSummarization
	return ea
}

// WithStateDelta configures the stateDelta to the [EventActions].
func (ea *EventActions) WithStateDelta(stateDelta map[string]any) *EventActions {
	ea.StateDelta = stateDelta
	return ea
}

// WithTransferToAgent configures the transferToAgent to the [EventActions].
func (ea *EventActions) WithTransferToAgent(transferToAgent string) *EventActions {
	ea.TransferToAgent = transferToAgent
	return ea
}

// WithEscalate configures the escalate to the [EventActions].
func (ea *EventActions) WithEscalate(escalate bool) *EventActions {
	ea.Escalate = escalate
	return ea
}

// IsEmpty reports whether no action is set.
func (ea *EventActions) IsEmpty() bool {
	return ea == nil || (!ea.SkipSummarization && len(ea.StateDelta) == 0 && ea.TransferToAgent == "" && !ea.Escalate)
}

// Merge folds other into ea. Later values win.
func (ea *EventActions) Merge(other *EventActions) {
	if other == nil {
		return
	}
	if ea.StateDelta == nil {
		ea.StateDelta = make(map[string]any, len(other.StateDelta))
	}
	maps.Copy(ea.StateDelta, other.StateDelta)
	ea.SkipSummarization = ea.SkipSummarization || other.SkipSummarization
	ea.Escalate = ea.Escalate || other.Escalate
	if other.TransferToAgent != "" {
		ea.TransferToAgent = other.TransferToAgent
	}
}
