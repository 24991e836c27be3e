// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"testing"
)

func TestInjectSessionState(t *testing.T) {
	state := map[string]any{
		"name":       "Ann",
		"app:limit":  3,
		"user:units": "celsius",
	}

	tests := map[string]struct {
		template string
		want     string
		wantErr  bool
	}{
		"no placeholders": {
			template: "You are a helpful weather assistant.",
			want:     "You are a helpful weather assistant.",
		},
		"plain key": {
			template: "Greet {name} politely.",
			want:     "Greet Ann politely.",
		},
		"spaces inside braces": {
			template: "Greet { name }.",
			want:     "Greet Ann.",
		},
		"prefixed keys": {
			template: "Use {user:units}, at most {app:limit} calls.",
			want:     "Use celsius, at most 3 calls.",
		},
		"optional missing key": {
			template: "City: {user:city?}.",
			want:     "City: .",
		},
		"optional present key": {
			template: "Hi {name?}",
			want:     "Hi Ann",
		},
		"not a state name": {
			template: `Reply as JSON like {"status": "ok"}.`,
			want:     `Reply as JSON like {"status": "ok"}.`,
		},
		"unknown prefix": {
			template: "Keep {bogus:key} as is.",
			want:     "Keep {bogus:key} as is.",
		},
		"missing key": {
			template: "Hello {nobody}",
			wantErr:  true,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := InjectSessionState(tt.template, state)
			if (err != nil) != tt.wantErr {
				t.Fatalf("InjectSessionState() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("InjectSessionState() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsValidStateName(t *testing.T) {
	tests := map[string]bool{
		"city":         true,
		"_private":     true,
		"city2":        true,
		"2city":        false,
		"user:city":    true,
		"app:limit":    true,
		"temp:scratch": true,
		"other:city":   false,
		"user:":        false,
		"a b":          false,
		"":             false,
	}
	for name, want := range tests {
		if got := isValidStateName(name); got != want {
			t.Errorf("isValidStateName(%q) = %v, want %v", name, got, want)
		}
	}
}
