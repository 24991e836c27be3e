// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"time"
)

// GetSessionConfig is the configuration of getting a session.
type GetSessionConfig struct {
	// NumRecentEvents limits the returned events to the most recent n when positive.
	NumRecentEvents int

	// AfterTimestamp keeps only events at or after the given time when non-zero.
	AfterTimestamp time.Time
}

// SessionService manages sessions and their events.
type SessionService interface {
	// CreateSession creates a new session with the given parameters.
	//
	// An empty sessionID makes the service generate one.
	CreateSession(ctx context.Context, appName, userID, sessionID string, state map[string]any) (*Session, error)

	// GetSession retrieves a specific session.
	//
	// It returns an error wrapping [ErrSessionNotFound] when the session does not exist.
	GetSession(ctx context.Context, appName, userID, sessionID string, config *GetSessionConfig) (*Session, error)

	// ListSessions lists all sessions for a user/app. The events are not set.
	ListSessions(ctx context.Context, appName, userID string) ([]*Session, error)

	// DeleteSession removes a specific session.
	DeleteSession(ctx context.Context, appName, userID, sessionID string) error

	// AppendEvent adds an event to a session and updates session state.
	AppendEvent(ctx context.Context, session *Session, event *Event) (*Event, error)
}
