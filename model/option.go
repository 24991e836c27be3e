// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"log/slog"
	"net/http"
)

// Config holds the settings shared by every model implementation.
type Config struct {
	// apiKey overrides the provider API key environment variable.
	apiKey string

	// baseURL overrides the provider endpoint.
	baseURL string

	// vertexAI selects the Vertex AI backend for Gemini models.
	vertexAI bool
	project  string
	location string

	// maxTokens caps the output of providers that require a limit.
	maxTokens int64

	httpClient *http.Client

	// logger is the logger used for logging.
	logger *slog.Logger
}

func newConfig() Config {
	return Config{
		logger: slog.Default().With(slog.String("component", "model")),
	}
}

// Option is a function that modifies the [Config] model.
type Option interface {
	apply(base Config) Config
}

type optionFunc func(Config) Config

func (f optionFunc) apply(base Config) Config {
	return f(base)
}

// WithAPIKey sets the provider API key.
//
// Without it the key is read from the provider environment variable.
func WithAPIKey(apiKey string) Option {
	return optionFunc(func(base Config) Config {
		base.apiKey = apiKey
		return base
	})
}

// WithBaseURL overrides the provider endpoint.
func WithBaseURL(baseURL string) Option {
	return optionFunc(func(base Config) Config {
		base.baseURL = baseURL
		return base
	})
}

// WithVertexAI makes Gemini models use the Vertex AI backend of project in location.
func WithVertexAI(project, location string) Option {
	return optionFunc(func(base Config) Config {
		base.vertexAI = true
		base.project = project
		base.location = location
		return base
	})
}

// WithMaxTokens sets the maximum number of output tokens for providers that require one.
func WithMaxTokens(maxTokens int64) Option {
	return optionFunc(func(base Config) Config {
		base.maxTokens = maxTokens
		return base
	})
}

// WithHTTPClient sets the HTTP client used by the provider SDK.
func WithHTTPClient(client *http.Client) Option {
	return optionFunc(func(base Config) Config {
		base.httpClient = client
		return base
	})
}

type loggerOption struct{ *slog.Logger }

func (o loggerOption) apply(base Config) Config {
	base.logger = o.Logger
	return base
}

// WithLogger sets the logger for the model.
func WithLogger(logger *slog.Logger) Option {
	return loggerOption{logger}
}
