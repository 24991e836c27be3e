// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config holds the command line and environment configuration shared
// by the weather programs.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/go-a2a/weather-agent-team/model"
)

// Google holds the Gemini configuration.
type Google struct {
	GoogleAPIKey  string `name:"google-api-key" env:"GOOGLE_API_KEY" help:"Google AI Studio API key."`
	UseVertexAI   bool   `name:"vertexai" env:"GOOGLE_GENAI_USE_VERTEXAI" help:"Use the Vertex AI backend for Gemini models."`
	CloudProject  string `name:"project" env:"GOOGLE_CLOUD_PROJECT" help:"Vertex AI project."`
	CloudLocation string `name:"location" env:"GOOGLE_CLOUD_LOCATION" help:"Vertex AI location."`
}

// OpenAI holds the OpenAI configuration.
type OpenAI struct {
	OpenAIAPIKey string `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key."`
}

// Anthropic holds the Anthropic configuration.
type Anthropic struct {
	AnthropicAPIKey string `name:"anthropic-api-key" env:"ANTHROPIC_API_KEY" help:"Anthropic API key."`
}

// CLI is the configuration of a weather program.
type CLI struct {
	Google    `embed:"" group:"Google"`
	OpenAI    `embed:"" group:"OpenAI"`
	Anthropic `embed:"" group:"Anthropic"`

	LogLevel string `name:"log-level" env:"ADK_LOG_LEVEL" default:"error" help:"Log level: debug, info, warn or error."`
}

// Parse parses the command line and environment into a [CLI].
func Parse(name, description string, args []string) (*CLI, error) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name(name),
		kong.Description(description),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}

	return &cli, nil
}

// MustParse parses os.Args, exiting the process on invalid input.
func MustParse(name, description string) *CLI {
	var cli CLI
	kong.Parse(&cli,
		kong.Name(name),
		kong.Description(description),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	return &cli
}

// Level returns the slog level of LogLevel, or [slog.LevelError] when it is
// not a level name.
func (c *CLI) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelError
	}
	return level
}

// Logger returns a text logger on stderr at the configured level.
func (c *CLI) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: c.Level(),
	}))
}

// ModelOptions returns the options to create the model modelName with.
//
// The API key is picked by the provider of the model.
func (c *CLI) ModelOptions(modelName string, logger *slog.Logger) []model.Option {
	var opts []model.Option
	if logger != nil {
		opts = append(opts, model.WithLogger(logger))
	}

	switch provider(modelName) {
	case providerGoogle:
		if c.UseVertexAI {
			return append(opts, model.WithVertexAI(c.CloudProject, c.CloudLocation))
		}
		if c.GoogleAPIKey != "" {
			opts = append(opts, model.WithAPIKey(c.GoogleAPIKey))
		}
	case providerOpenAI:
		if c.OpenAIAPIKey != "" {
			opts = append(opts, model.WithAPIKey(c.OpenAIAPIKey))
		}
	case providerAnthropic:
		if c.AnthropicAPIKey != "" {
			opts = append(opts, model.WithAPIKey(c.AnthropicAPIKey))
		}
	}

	return opts
}

type providerKind int

const (
	providerUnknown providerKind = iota
	providerGoogle
	providerOpenAI
	providerAnthropic
)

func provider(modelName string) providerKind {
	switch {
	case strings.HasPrefix(modelName, "gemini-"), strings.HasPrefix(modelName, "projects/"):
		return providerGoogle
	case strings.HasPrefix(modelName, "openai/"), strings.HasPrefix(modelName, "gpt-"):
		return providerOpenAI
	case strings.HasPrefix(modelName, "claude-"):
		return providerAnthropic
	}
	return providerUnknown
}

// MaskKey returns the first n characters of key followed by "...", or a
// placeholder when key is empty.
func MaskKey(key string, n int) string {
	if key == "" {
		return "(not set)"
	}
	runes := []rune(key)
	if len(runes) <= n {
		return key + "..."
	}
	return string(runes[:n]) + "..."
}
