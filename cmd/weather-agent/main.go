// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command weather-agent runs a single weather agent through a short
// conversation about the weather in London, Paris and New York.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"

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
	appName   = "weather_tutorial_app"
	userID    = "user_1"
	sessionID = "session_001"

	agentName  = "weather_agent_v1"
	agentModel = "gemini-2.5-flash"
)

// errAllQueriesFailed reports a conversation in which no query got an answer.
var errAllQueriesFailed = errors.New("every query of the conversation failed")

var queries = []string{
	"What is the weather like in London?",
	"How about Paris?",
	"Tell me the weather in New York",
}

func main() {
	cli := config.MustParse("weather-agent", "Basic weather lookup with a single agent.")
	logger := cli.Logger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logging.NewContext(ctx, logger)

	console.Banner(os.Stdout, console.Wide, "STEP 1: YOUR FIRST AGENT - BASIC WEATHER LOOKUP")
	fmt.Print(heredoc.Doc(`
		Running the ADK Agent Team Tutorial - Step 1
		This demonstrates the 5 core steps:
		  1. Define the get_weather Tool
		  2. Define the Agent (weather_agent)
		  3. Initialize Session Service and Runner
		  4. Define Agent Interaction Function
		  5. Run the Conversation
	`))
	console.Rule(os.Stdout, console.Wide)
	fmt.Println()

	if err := run(ctx, os.Stdout, newModel(cli)); err != nil {
		fmt.Printf("An error occurred: %v\n", err)
		cancel()
		os.Exit(1)
	}
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

	llm, err := newLLM(ctx, agentModel)
	if err != nil {
		return err
	}
	weatherAgent, err := weather.NewWeatherAgent(ctx, &weather.Tools{Out: w}, agentName, llm,
		"Provides weather information for specific cities.")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Agent '%s' created using model '%s'.\n", weatherAgent.Name(), agentModel)

	sessionService := session.NewInMemoryService(session.WithLogger(logger))
	r, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          weatherAgent,
		SessionService: sessionService,
		Logger:         logger,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Runner created for agent '%s'.\n", r.Agent().Name())

	if _, err := sessionService.CreateSession(ctx, appName, userID, sessionID, nil); err != nil {
		return err
	}
	fmt.Fprintf(w, "Session created: App='%s', User='%s', Session='%s'\n", appName, userID, sessionID)

	var failed int
	for _, query := range queries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := console.CallAgent(ctx, w, r, userID, sessionID, query); err != nil {
			logger.ErrorContext(ctx, "query failed", slog.String("query", query), slog.Any("error", err))
			failed++
		}
	}
	if failed == len(queries) {
		return errAllQueriesFailed
	}

	return nil
}
