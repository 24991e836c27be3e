// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command weather-fallback runs the weather conversation on the first model
// that passes validation, falling back from Gemini to OpenAI.
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

	"github.com/go-a2a/weather-agent-team/agent"
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
)

type agentSpec struct {
	label       string
	display     string
	name        string
	model       string
	description string
}

var agentSpecs = []agentSpec{
	{
		label:       "Gemini",
		display:     "GEMINI",
		name:        "weather_agent_gemini",
		model:       "gemini-2.5-flash",
		description: "Provides weather information using Gemini.",
	},
	{
		label:       "OpenAI GPT-4",
		display:     "OPENAI",
		name:        "weather_agent_openai",
		model:       "openai/gpt-4.1",
		description: "Provides weather information using GPT-4.",
	},
}

// errNoAgents reports that none of the candidate agents could be created.
var errNoAgents = errors.New("no agents available")

var queries = []string{
	"What is the weather like in London?",
	"How about Paris?",
	"Tell me the weather in New York",
}

func main() {
	cli := config.MustParse("weather-fallback", "Weather agent with model fallback.")
	logger := cli.Logger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logging.NewContext(ctx, logger)

	w := os.Stdout
	printKeys(w, cli)

	if err := run(ctx, w, newModel(cli)); err != nil {
		if !errors.Is(err, errNoAgents) {
			fmt.Fprintf(w, "\nAn error occurred: %v\n", err)
		}
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

func printKeys(w io.Writer, cli *config.CLI) {
	console.Rule(w, console.Wide)
	fmt.Fprintln(w, "API KEYS CONFIGURED")
	console.Rule(w, console.Wide)
	if cli.UseVertexAI {
		fmt.Fprintf(w, "Google: Vertex AI (project %q, location %q)\n", cli.CloudProject, cli.CloudLocation)
	} else {
		fmt.Fprintf(w, "Google API Key: %s\n", config.MaskKey(cli.GoogleAPIKey, 20))
	}
	openAIStatus := "NOT SET"
	if cli.OpenAIAPIKey != "" {
		openAIStatus = "SET ✓"
	}
	fmt.Fprintf(w, "OpenAI API Key: %s\n", openAIStatus)
	console.Rule(w, console.Wide)
	fmt.Fprintln(w)
}

// buildCandidates creates the agents in fallback order, skipping those whose
// model cannot be created.
func buildCandidates(ctx context.Context, w io.Writer, newLLM modelFunc) []runner.Candidate {
	tools := &weather.Tools{Out: w}

	var candidates []runner.Candidate
	for _, spec := range agentSpecs {
		console.Banner(w, console.Wide, fmt.Sprintf("ATTEMPTING TO CREATE %s AGENT...", spec.display))

		a, err := newAgent(ctx, tools, spec, newLLM)
		if err != nil {
			fmt.Fprintf(w, "✗ Failed to create %s agent: %s\n", spec.label, console.Truncate(err.Error(), 100))
			continue
		}
		fmt.Fprintf(w, "✓ %s agent created successfully!\n", spec.label)
		candidates = append(candidates, runner.Candidate{Label: spec.label, Agent: a})
	}

	return candidates
}

func newAgent(ctx context.Context, tools *weather.Tools, spec agentSpec, newLLM modelFunc) (*agent.LLMAgent, error) {
	llm, err := newLLM(ctx, spec.model)
	if err != nil {
		return nil, err
	}
	return weather.NewWeatherAgent(ctx, tools, spec.name, llm, spec.description)
}

func run(ctx context.Context, w io.Writer, newLLM modelFunc) error {
	logger := logging.FromContext(ctx)

	candidates := buildCandidates(ctx, w, newLLM)
	if len(candidates) == 0 {
		console.Banner(w, console.Wide, "ERROR: NO AGENTS AVAILABLE")
		fmt.Fprintln(w, "Both Gemini and OpenAI agents failed to initialize.")
		fmt.Fprintln(w, "Please check your API keys and try again.")
		console.Rule(w, console.Wide)
		return errNoAgents
	}

	console.Banner(w, console.Wide, "WEATHER AGENT WITH MODEL FALLBACK")
	fmt.Fprint(w, heredoc.Doc(`
		This program demonstrates automatic fallback:
		1. Tries the Gemini agent first
		2. Falls back to the OpenAI GPT-4 agent
		3. Uses whichever agent passes validation
	`))
	console.Rule(w, console.Wide)

	sessionService := session.NewInMemoryService(session.WithLogger(logger))
	if _, err := sessionService.CreateSession(ctx, appName, userID, sessionID, nil); err != nil {
		return err
	}
	fmt.Fprintf(w, "Session created: App='%s', User='%s', Session='%s'\n", appName, userID, sessionID)

	r, _, err := runner.Select(ctx, candidates, runner.Config{
		AppName:        appName,
		SessionService: sessionService,
		Logger:         logger,
	}, &console.Reporter{W: w})
	if errors.Is(err, runner.ErrNoValidAgent) {
		fmt.Fprintln(w, "Aborting conversation due to lack of valid agents.")
		return nil
	}
	if err != nil {
		return err
	}

	console.Banner(w, console.Wide, "STARTING CONVERSATION")
	for _, query := range queries {
		if err := ctx.Err(); err != nil {
			return err
		}
		console.CallAgent(ctx, w, r, userID, sessionID, query)
	}
	console.Banner(w, console.Wide, "CONVERSATION COMPLETE")

	return nil
}
