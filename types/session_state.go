// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"maps"
	"strings"
	"sync"
)

// State key prefixes.
const (
	// AppPrefix marks keys shared by every user and session of an app.
	AppPrefix = "app:"

	// UserPrefix marks keys shared by every session of a user.
	UserPrefix = "user:"

	// TempPrefix marks keys that live only for the current invocation and are never persisted.
	TempPrefix = "temp:"
)

// State is a session state view that records every write as a pending delta.
type State struct {
	mu sync.RWMutex

	// value is the committed state, usually the session's own map.
	value map[string]any

	// delta is the pending change to value that hasn't been committed.
	delta map[string]any
}

// NewState creates a new State with the given value and delta maps.
//
// The maps are used in place, so writes are visible through them.
func NewState(value, delta map[string]any) *State {
	if value == nil {
		value = make(map[string]any)
	}
	if delta == nil {
		delta = make(map[string]any)
	}

	return &State{
		value: value,
		delta: delta,
	}
}

// Get returns the value for the given key, preferring pending delta values.
func (s *State) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if val, ok := s.delta[key]; ok {
		return val, true
	}
	val, ok := s.value[key]
	return val, ok
}

// GetString returns the value for key formatted as a string when it is one.
func (s *State) GetString(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Set writes val to both the committed value and the delta.
func (s *State) Set(key string, val any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value[key] = val
	s.delta[key] = val
}

// Update writes every entry of update as with [State.Set].
func (s *State) Update(update map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	maps.Copy(s.value, update)
	maps.Copy(s.delta, update)
}

// Has reports whether the state contains the given key.
func (s *State) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// HasDelta reports whether there are any pending changes.
func (s *State) HasDelta() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.delta) > 0
}

// ToMap returns a merged copy of the state with delta values taking precedence.
func (s *State) ToMap() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]any, len(s.value)+len(s.delta))
	maps.Copy(result, s.value)
	maps.Copy(result, s.delta)

	return result
}

// GetDelta returns a copy of the pending changes.
func (s *State) GetDelta() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.delta)
}

// ClearDelta drops pending changes without touching the committed value.
func (s *State) ClearDelta() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.delta)
}

// ApplyDelta commits pending changes to the value and clears the delta.
func (s *State) ApplyDelta() {
	s.mu.Lock()
	defer s.mu.Unlock()

	maps.Copy(s.value, s.delta)
	clear(s.delta)
}

// GetApp retrieves a value with the app prefix.
func (s *State) GetApp(key string) (any, bool) {
	return s.Get(AppPrefix + key)
}

// SetApp sets a value with the app prefix.
func (s *State) SetApp(key string, val any) {
	s.Set(AppPrefix+key, val)
}

// GetUser retrieves a value with the user prefix.
func (s *State) GetUser(key string) (any, bool) {
	return s.Get(UserPrefix + key)
}

// SetUser sets a value with the user prefix.
func (s *State) SetUser(key string, val any) {
	s.Set(UserPrefix+key, val)
}

// GetTemp retrieves a value with the temp prefix.
func (s *State) GetTemp(key string) (any, bool) {
	return s.Get(TempPrefix + key)
}

// SetTemp sets a value with the temp prefix.
func (s *State) SetTemp(key string, val any) {
	s.Set(TempPrefix+key, val)
}

// IsTempKey reports whether key is scoped to a single invocation.
func IsTempKey(key string) bool {
	return strings.HasPrefix(key, TempPrefix)
}
