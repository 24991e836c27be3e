// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package session provides conversation tracking and state management for agent interactions.
//
// [InMemoryService] implements [types.SessionService]. Sessions are organized
// hierarchically:
//
//	{appName} -> {userID} -> {sessionID} -> Session
//
// # State Management
//
// The service supports three tiers of state, selected by key prefix:
//
//   - App State ("app:"): shared across all users of an application
//   - User State ("user:"): specific to a user across all their sessions
//   - Session State (no prefix): specific to a single conversation session
//
// Keys with the "temp:" prefix are visible during an invocation but are never
// stored.
//
// # Basic Usage
//
//	service := session.NewInMemoryService()
//
//	ses, err := service.CreateSession(ctx, "weather_tutorial_app", "user_1", "session_001", nil)
//	if err != nil {
//		return err
//	}
//
//	event := types.NewEvent(invocationID, "weather_agent_v1")
//	event.Actions.StateDelta["user:last_city"] = "London"
//	if _, err := service.AppendEvent(ctx, ses, event); err != nil {
//		return err
//	}
//
// Every session returned by the service is a deep copy; mutate state only
// through events.
//
// # Error Handling
//
//	ses, err := service.GetSession(ctx, appName, userID, sessionID, nil)
//	if errors.Is(err, types.ErrSessionNotFound) {
//		ses, err = service.CreateSession(ctx, appName, userID, sessionID, nil)
//	}
package session
