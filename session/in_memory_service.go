// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"

	"github.com/go-a2a/weather-agent-team/types"
)

// InMemoryService is an in-memory implementation of the [types.SessionService].
//
// It is safe for concurrent use. Sessions are lost when the process exits.
type InMemoryService struct {
	mu sync.RWMutex

	// sessions is a map from app name to a map from user ID to a map from session ID to session.
	sessions map[string]map[string]map[string]*types.Session

	// userState is a map from app name to a map from user ID to a map from key to value.
	userState map[string]map[string]map[string]any

	// appState is a map from app name to a map from key to value.
	appState map[string]map[string]any

	logger *slog.Logger
}

var _ types.SessionService = (*InMemoryService)(nil)

// Option configures an [InMemoryService].
type Option func(*InMemoryService)

// WithLogger sets the logger of the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *InMemoryService) {
		s.logger = logger
	}
}

// NewInMemoryService creates a new [InMemoryService].
func NewInMemoryService(opts ...Option) *InMemoryService {
	s := &InMemoryService{
		sessions:  make(map[string]map[string]map[string]*types.Session),
		userState: make(map[string]map[string]map[string]any),
		appState:  make(map[string]map[string]any),
		logger:    slog.Default().With(slog.String("session_service", "in_memory")),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateSession implements [types.SessionService].
func (s *InMemoryService) CreateSession(ctx context.Context, appName, userID, sessionID string, state map[string]any) (*types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if _, ok := s.sessions[appName][userID][sessionID]; ok {
		return nil, fmt.Errorf("session %s for user %s in app %s: %w", sessionID, userID, appName, types.ErrSessionAlreadyExists)
	}

	s.logger.InfoContext(ctx, "Creating session",
		slog.String("app_name", appName),
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)

	ses := &types.Session{
		ID:             sessionID,
		AppName:        appName,
		UserID:         userID,
		State:          make(map[string]any),
		Events:         []*types.Event{},
		LastUpdateTime: time.Now(),
	}
	s.applyState(ses, state)

	if _, ok := s.sessions[appName]; !ok {
		s.sessions[appName] = make(map[string]map[string]*types.Session)
	}
	if _, ok := s.sessions[appName][userID]; !ok {
		s.sessions[appName][userID] = make(map[string]*types.Session)
	}
	s.sessions[appName][userID][sessionID] = ses

	copied, err := copySession(ses)
	if err != nil {
		return nil, err
	}
	return s.mergeState(copied), nil
}

// GetSession implements [types.SessionService].
func (s *InMemoryService) GetSession(ctx context.Context, appName, userID, sessionID string, config *types.GetSessionConfig) (*types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ses, ok := s.sessions[appName][userID][sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s not found for user %s in app %s: %w", sessionID, userID, appName, types.ErrSessionNotFound)
	}

	copied, err := copySession(ses)
	if err != nil {
		return nil, err
	}

	if config != nil {
		if n := config.NumRecentEvents; n > 0 && n < len(copied.Events) {
			copied.Events = copied.Events[len(copied.Events)-n:]
		}
		if !config.AfterTimestamp.IsZero() {
			i := 0
			for i < len(copied.Events) && copied.Events[i].Timestamp.Before(config.AfterTimestamp) {
				i++
			}
			copied.Events = copied.Events[i:]
		}
	}

	return s.mergeState(copied), nil
}

// ListSessions implements [types.SessionService].
func (s *InMemoryService) ListSessions(ctx context.Context, appName, userID string) ([]*types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := s.sessions[appName][userID]
	sessions := make([]*types.Session, 0, len(byID))
	for _, ses := range byID {
		sessions = append(sessions, &types.Session{
			ID:             ses.ID,
			AppName:        ses.AppName,
			UserID:         ses.UserID,
			State:          make(map[string]any),
			LastUpdateTime: ses.LastUpdateTime,
		})
	}

	return sessions, nil
}

// DeleteSession implements [types.SessionService].
func (s *InMemoryService) DeleteSession(ctx context.Context, appName, userID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[appName][userID][sessionID]; !ok {
		return nil
	}

	s.logger.InfoContext(ctx, "Deleting session",
		slog.String("app_name", appName),
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)
	delete(s.sessions[appName][userID], sessionID)

	return nil
}

// AppendEvent implements [types.SessionService].
//
// Partial events are returned unchanged and not recorded. The state delta of
// the event is applied to both ses and the stored session, except temp: keys.
func (s *InMemoryService) AppendEvent(ctx context.Context, ses *types.Session, event *types.Event) (*types.Event, error) {
	if event.IsPartial() {
		return event, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.DebugContext(ctx, "Appending event to session",
		slog.String("session_id", ses.ID),
		slog.Any("event", event),
	)

	delta := persistentDelta(event)
	if ses.State == nil {
		ses.State = make(map[string]any)
	}
	maps.Copy(ses.State, delta)
	ses.Events = append(ses.Events, event)
	ses.LastUpdateTime = event.Timestamp

	stored, ok := s.sessions[ses.AppName][ses.UserID][ses.ID]
	if !ok {
		s.logger.WarnContext(ctx, "session not found, event not stored",
			slog.String("app_name", ses.AppName),
			slog.String("user_id", ses.UserID),
			slog.String("session_id", ses.ID),
		)
		return event, nil
	}

	var copied types.Event
	if err := deepcopy.Copy(&copied, event); err != nil {
		return nil, fmt.Errorf("copy event %s: %w", event.ID, err)
	}
	stored.Events = append(stored.Events, &copied)
	stored.LastUpdateTime = event.Timestamp
	s.applyState(stored, delta)

	return event, nil
}

// applyState writes delta into ses, routing app: and user: keys into the shared maps.
func (s *InMemoryService) applyState(ses *types.Session, delta map[string]any) {
	for key, value := range delta {
		switch {
		case strings.HasPrefix(key, types.AppPrefix):
			if _, ok := s.appState[ses.AppName]; !ok {
				s.appState[ses.AppName] = make(map[string]any)
			}
			s.appState[ses.AppName][strings.TrimPrefix(key, types.AppPrefix)] = value

		case strings.HasPrefix(key, types.UserPrefix):
			if _, ok := s.userState[ses.AppName]; !ok {
				s.userState[ses.AppName] = make(map[string]map[string]any)
			}
			if _, ok := s.userState[ses.AppName][ses.UserID]; !ok {
				s.userState[ses.AppName][ses.UserID] = make(map[string]any)
			}
			s.userState[ses.AppName][ses.UserID][strings.TrimPrefix(key, types.UserPrefix)] = value

		case types.IsTempKey(key):
			// never persisted

		default:
			ses.State[key] = value
		}
	}
}

// mergeState merges app and user state into the session state.
func (s *InMemoryService) mergeState(ses *types.Session) *types.Session {
	for key, value := range s.appState[ses.AppName] {
		ses.State[types.AppPrefix+key] = value
	}
	for key, value := range s.userState[ses.AppName][ses.UserID] {
		ses.State[types.UserPrefix+key] = value
	}

	return ses
}

// persistentDelta returns the state delta of event without temp: keys.
func persistentDelta(event *types.Event) map[string]any {
	if event.Actions == nil || len(event.Actions.StateDelta) == 0 {
		return nil
	}

	delta := make(map[string]any, len(event.Actions.StateDelta))
	for key, value := range event.Actions.StateDelta {
		if !types.IsTempKey(key) {
			delta[key] = value
		}
	}
	return delta
}

// copySession creates a deep copy of a session.
func copySession(ses *types.Session) (*types.Session, error) {
	var copied types.Session
	if err := deepcopy.Copy(&copied, ses); err != nil {
		return nil, fmt.Errorf("copy session %s: %w", ses.ID, err)
	}
	if copied.State == nil {
		copied.State = make(map[string]any)
	}
	if copied.Events == nil {
		copied.Events = []*types.Event{}
	}
	return &copied, nil
}
