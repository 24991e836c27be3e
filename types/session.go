// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"time"

	"github.com/bytedance/sonic"
	"google.golang.org/genai"
)

// Session is a series of interactions between a user and agents.
type Session struct {
	// ID is the unique identifier of the session.
	ID string

	// AppName is the name of the app.
	AppName string

	// UserID is the id of the user.
	UserID string

	// State is the state of the session, merged with app and user scoped state.
	State map[string]any

	// Events are the events of the session, e.g. user input, model response,
	// function call/response, etc.
	Events []*Event

	// LastUpdateTime is the last update time of the session.
	LastUpdateTime time.Time
}

// LastEvent returns the most recent event, or nil.
func (s *Session) LastEvent() *Event {
	if len(s.Events) == 0 {
		return nil
	}
	return s.Events[len(s.Events)-1]
}

// EncodeContent encodes a Content object to a JSON dictionary.
func EncodeContent(content *genai.Content) (map[string]any, error) {
	if content == nil {
		return nil, nil
	}

	data, err := sonic.ConfigFastest.Marshal(content)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := sonic.ConfigFastest.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	return result, nil
}
