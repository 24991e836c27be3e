// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/session"
	"github.com/go-a2a/weather-agent-team/types"
)

const (
	appName   = "weather_tutorial_app"
	userID    = "user_1"
	sessionID = "session_001"
)

func TestInMemoryService_CreateSession(t *testing.T) {
	svc := session.NewInMemoryService()

	ses, err := svc.CreateSession(t.Context(), appName, userID, sessionID, map[string]any{
		"app:units": "celsius",
		"user:name": "srineesh",
		"city":      "London",
		"temp:x":    1,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if ses.ID != sessionID || ses.AppName != appName || ses.UserID != userID {
		t.Errorf("CreateSession() = %s/%s/%s", ses.AppName, ses.UserID, ses.ID)
	}
	want := map[string]any{
		"app:units": "celsius",
		"user:name": "srineesh",
		"city":      "London",
	}
	if diff := cmp.Diff(want, ses.State); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.CreateSession(t.Context(), appName, userID, sessionID, nil); !errors.Is(err, types.ErrSessionAlreadyExists) {
		t.Errorf("second CreateSession error = %v, want ErrSessionAlreadyExists", err)
	}

	generated, err := svc.CreateSession(t.Context(), appName, userID, "", nil)
	if err != nil {
		t.Fatalf("CreateSession with generated id: %v", err)
	}
	if generated.ID == "" {
		t.Error("generated session id is empty")
	}
	// App and user state are shared with other sessions of the same user.
	if got := generated.State["user:name"]; got != "srineesh" {
		t.Errorf("user:name in second session = %v", got)
	}
}

func TestInMemoryService_GetSession_NotFound(t *testing.T) {
	svc := session.NewInMemoryService()

	_, err := svc.GetSession(t.Context(), appName, userID, "missing", nil)
	if !errors.Is(err, types.ErrSessionNotFound) {
		t.Fatalf("GetSession error = %v, want ErrSessionNotFound", err)
	}
}

func TestInMemoryService_AppendEvent(t *testing.T) {
	ctx := t.Context()
	svc := session.NewInMemoryService()

	ses, err := svc.CreateSession(ctx, appName, userID, sessionID, nil)
	if err != nil {
		t.Fatal(err)
	}

	user := types.NewEvent("e-1", types.AuthorUser).WithContent(genai.NewContentFromText("What is the weather like in London?", genai.RoleUser))
	if _, err := svc.AppendEvent(ctx, ses, user); err != nil {
		t.Fatal(err)
	}

	reply := types.NewEvent("e-1", "weather_agent_v1").WithContent(genai.NewContentFromText("It's cloudy in London.", genai.RoleModel))
	reply.Actions.StateDelta = map[string]any{
		"last_city":      "London",
		"user:last_city": "London",
		"temp:scratch":   "ignored",
	}
	if _, err := svc.AppendEvent(ctx, ses, reply); err != nil {
		t.Fatal(err)
	}

	partial := types.NewEvent("e-1", "weather_agent_v1").WithContent(genai.NewContentFromText("It's", genai.RoleModel))
	partial.Partial = true
	if _, err := svc.AppendEvent(ctx, ses, partial); err != nil {
		t.Fatal(err)
	}

	if n := len(ses.Events); n != 2 {
		t.Errorf("caller session has %d events, want 2", n)
	}

	got, err := svc.GetSession(ctx, appName, userID, sessionID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(got.Events); n != 2 {
		t.Fatalf("stored session has %d events, want 2", n)
	}
	if got.Events[1].Text() != "It's cloudy in London." {
		t.Errorf("stored event text = %q", got.Events[1].Text())
	}
	wantState := map[string]any{
		"last_city":      "London",
		"user:last_city": "London",
	}
	if diff := cmp.Diff(wantState, got.State); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}

	// Returned sessions are copies.
	got.Events[0].Author = "tampered"
	got.State["last_city"] = "Paris"
	again, err := svc.GetSession(ctx, appName, userID, sessionID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if again.Events[0].Author != types.AuthorUser {
		t.Errorf("stored event author = %q, want %q", again.Events[0].Author, types.AuthorUser)
	}
	if again.State["last_city"] != "London" {
		t.Errorf("stored last_city = %v, want London", again.State["last_city"])
	}
}

func TestInMemoryService_GetSession_Config(t *testing.T) {
	ctx := t.Context()
	svc := session.NewInMemoryService()

	ses, err := svc.CreateSession(ctx, appName, userID, sessionID, nil)
	if err != nil {
		t.Fatal(err)
	}

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, text := range []string{"one", "two", "three", "four"} {
		ev := types.NewEvent("e-1", types.AuthorUser).WithContent(genai.NewContentFromText(text, genai.RoleUser))
		ev.Timestamp = base.Add(time.Duration(i) * time.Minute)
		if _, err := svc.AppendEvent(ctx, ses, ev); err != nil {
			t.Fatal(err)
		}
	}

	texts := func(s *types.Session) []string {
		var out []string
		for _, ev := range s.Events {
			out = append(out, ev.Text())
		}
		return out
	}

	tests := []struct {
		name   string
		config *types.GetSessionConfig
		want   []string
	}{
		{
			name: "all",
			want: []string{"one", "two", "three", "four"},
		},
		{
			name:   "recent",
			config: &types.GetSessionConfig{NumRecentEvents: 2},
			want:   []string{"three", "four"},
		},
		{
			name:   "after",
			config: &types.GetSessionConfig{AfterTimestamp: base.Add(time.Minute)},
			want:   []string{"two", "three", "four"},
		},
		{
			name:   "recent and after",
			config: &types.GetSessionConfig{NumRecentEvents: 3, AfterTimestamp: base.Add(2 * time.Minute)},
			want:   []string{"three", "four"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetSession(ctx, appName, userID, sessionID, tt.config)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, texts(got)); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInMemoryService_ListAndDelete(t *testing.T) {
	ctx := t.Context()
	svc := session.NewInMemoryService()

	for _, id := range []string{"a", "b"} {
		if _, err := svc.CreateSession(ctx, appName, userID, id, nil); err != nil {
			t.Fatal(err)
		}
	}

	list, err := svc.ListSessions(ctx, appName, userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("ListSessions() returned %d sessions, want 2", len(list))
	}

	if err := svc.DeleteSession(ctx, appName, userID, "a"); err != nil {
		t.Fatal(err)
	}
	// Deleting twice is fine.
	if err := svc.DeleteSession(ctx, appName, userID, "a"); err != nil {
		t.Fatal(err)
	}

	list, err = svc.ListSessions(ctx, appName, userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != "b" {
		t.Errorf("ListSessions() after delete = %v", list)
	}

	empty, err := svc.ListSessions(ctx, "other_app", userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("ListSessions(other_app) = %v, want empty", empty)
	}
}
