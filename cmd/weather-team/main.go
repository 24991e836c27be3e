// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command weather-team runs the weather agent team: a root agent answering
// weather requests that delegates greetings and farewells to sub-agents.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-a2a/weather-agent-team/internal/config"
	"github.com/go-a2a/weather-agent-team/internal/console"
	"github.com/go-a2a/weather-agent-team/model"
	"github.com/go-a2a/weather-agent-team/pkg/logging"
	"github.com/go-a2a/weather-agent-team/runner"
	"github.com/go-a2a/weather-agent-team/session"
	"github.com/go-a2a/weather-agent-team/types"
	"github.com/go-a2a/weather-agent-team/weather"
)

const (
	appName   = "weather_tutorial_agent_team"
	userID    = "user_1_agent_team"
	sessionID = "session_001_agent_team"

	modelGemini20Flash = "gemini-2.0-flash"
	modelGemini25Flash = "gemini-2.5-flash"
)

var interactions = []struct {
	title string
	query string
}{
	{"INTERACTION 1: GREETING (should delegate to greeting_agent)", "Hello there! my name is srineesh"},
	{"INTERACTION 2: WEATHER REQUEST (handled by root agent)", "What is the weather in New York?"},
	{"INTERACTION 3: FAREWELL (should delegate to farewell_agent)", "Thanks, bye!"},
}

func main() {
	cli := config.MustParse("weather-team", "Weather agent team with delegation.")
	logger := cli.Logger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logging.NewContext(ctx, logger)

	w := os.Stdout
	console.Banner(w, console.Narrow, "AGENT TEAM TUTORIAL - STEP 3")
	fmt.Fprintln(w, "\nExecuting agent team conversation...")

	if err := run(ctx, w, newModel(cli)); err != nil {
		logger.ErrorContext(ctx, "agent team conversation failed", slog.Any("error", err))
		console.Banner(w, console.Narrow, fmt.Sprintf("❌ AN ERROR OCCURRED: %v", err))
		cancel()
		os.Exit(1)
	}
	console.Banner(w, console.Narrow, "✅ AGENT TEAM CONVERSATION COMPLETED SUCCESSFULLY")
}

// modelFunc creates the model of an agent by name.
type modelFunc func(ctx context.Context, name string) (types.Model, error)

// newModel returns a [modelFunc] resolving names through the model registry
// with the credentials of cli.
func newModel(cli *config.CLI) modelFunc {
	return func(ctx context.Context, name string) (types.Model, error) {
		return model.NewLLM(ctx, name, cli.ModelOptions(name, logging.FromContext(ctx))...)
	}
}

func run(ctx context.Context, w io.Writer, newLLM modelFunc) error {
	logger := logging.FromContext(ctx)
	tools := &weather.Tools{Out: w}

	greetingModel, err := newLLM(ctx, modelGemini20Flash)
	if err != nil {
		return err
	}
	greeting, err := weather.NewGreetingAgent(ctx, tools, greetingModel)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "✅ Agent '%s' created using model '%s'\n", greeting.Name(), modelGemini20Flash)

	farewellModel, err := newLLM(ctx, modelGemini20Flash)
	if err != nil {
		return err
	}
	farewell, err := weather.NewFarewellAgent(ctx, tools, farewellModel)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "✅ Agent '%s' created using model '%s'\n", farewell.Name(), modelGemini20Flash)

	console.Banner(w, console.Narrow, "TESTING AGENT TEAM DELEGATION")

	sessionService := session.NewInMemoryService(session.WithLogger(logger))
	if _, err := sessionService.CreateSession(ctx, appName, userID, sessionID, nil); err != nil {
		return err
	}
	fmt.Fprintln(w, "\n✅ Session created:")
	fmt.Fprintf(w, "   App: '%s'\n", appName)
	fmt.Fprintf(w, "   User: '%s'\n", userID)
	fmt.Fprintf(w, "   Session: '%s'\n", sessionID)

	rootModel, err := newLLM(ctx, modelGemini25Flash)
	if err != nil {
		return err
	}
	root, err := weather.NewTeamRootAgent(ctx, tools, rootModel, greeting, farewell)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "✅ Root Agent '%s' created using model '%s'\n", root.Name(), modelGemini25Flash)
	subAgentNames := make([]string, 0, len(root.SubAgents()))
	for _, sub := range root.SubAgents() {
		subAgentNames = append(subAgentNames, sub.Name())
	}
	fmt.Fprintf(w, "   Sub-agents: %v\n", subAgentNames)

	r, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          root,
		SessionService: sessionService,
		Logger:         logger,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n✅ Runner created for agent '%s'\n", root.Name())

	for _, interaction := range interactions {
		console.Banner(w, console.Narrow, interaction.title)
		if err := console.CallTeam(ctx, w, r, userID, sessionID, interaction.query); err != nil {
			return err
		}
	}

	return nil
}
