// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-a2a/weather-agent-team/pkg/logging"
)

func TestFromContext(t *testing.T) {
	if got := logging.FromContext(t.Context()); got != slog.Default() {
		t.Errorf("FromContext() without a logger = %v, want slog.Default()", got)
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := logging.NewContext(t.Context(), logger)
	if got := logging.FromContext(ctx); got != logger {
		t.Fatalf("FromContext() = %v, want the stored logger", got)
	}

	logging.FromContext(ctx).InfoContext(ctx, "hello", slog.String("agent", "weather_agent_v1"))
	if !strings.Contains(buf.String(), "agent=weather_agent_v1") {
		t.Errorf("log output = %q", buf.String())
	}
}
