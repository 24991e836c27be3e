// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"os"
	"strconv"
	"strings"

	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/types"
)

const (
	// GeminiLLMDefaultModel is the default model name for [Gemini].
	GeminiLLMDefaultModel = "gemini-2.5-flash"

	// EnvGoogleAPIKey is the environment variable name for the Google AI API key.
	EnvGoogleAPIKey = "GOOGLE_API_KEY"

	// EnvGoogleGenAIUseVertexAI selects the Vertex AI backend when set to true or 1.
	EnvGoogleGenAIUseVertexAI = "GOOGLE_GENAI_USE_VERTEXAI"

	// EnvGoogleCloudProject is the Vertex AI project.
	EnvGoogleCloudProject = "GOOGLE_CLOUD_PROJECT"

	// EnvGoogleCloudLocation is the Vertex AI location.
	EnvGoogleCloudLocation = "GOOGLE_CLOUD_LOCATION"

	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
)

// Gemini represents a Google Gemini Large Language Model.
type Gemini struct {
	*BaseLLM

	genAIClient *genai.Client
}

var _ types.Model = (*Gemini)(nil)

// NewGemini creates a new [Gemini] instance.
//
// The Gemini API is used with the key from [WithAPIKey] or [EnvGoogleAPIKey].
// With [WithVertexAI], or [EnvGoogleGenAIUseVertexAI] set, the Vertex AI
// backend is used with Application Default Credentials.
func NewGemini(ctx context.Context, modelName string, opts ...Option) (*Gemini, error) {
	if modelName == "" {
		modelName = GeminiLLMDefaultModel
	}
	base := NewBaseLLM(modelName, opts...)

	config := &genai.ClientConfig{
		HTTPClient: base.httpClient,
	}
	if base.baseURL != "" {
		config.HTTPOptions.BaseURL = base.baseURL
	}

	if base.vertexAI || envBool(EnvGoogleGenAIUseVertexAI) {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes: []string{cloudPlatformScope},
		})
		if err != nil {
			return nil, fmt.Errorf("detect default credentials for Vertex AI: %w", err)
		}
		config.Backend = genai.BackendVertexAI
		config.Credentials = creds
		config.Project = cmp.Or(base.project, os.Getenv(EnvGoogleCloudProject))
		config.Location = cmp.Or(base.location, os.Getenv(EnvGoogleCloudLocation))
	} else {
		apiKey := base.apiKeyOr(EnvGoogleAPIKey)
		if apiKey == "" {
			return nil, fmt.Errorf("either WithAPIKey option or %q environment variable must be set", EnvGoogleAPIKey)
		}
		config.Backend = genai.BackendGeminiAPI
		config.APIKey = apiKey
	}

	genAIClient, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{
		BaseLLM:     base,
		genAIClient: genAIClient,
	}, nil
}

// GenerateContent implements [types.Model].
func (m *Gemini) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	contents := appendUserContent(request.Contents)

	m.logger.DebugContext(ctx, "sending request to gemini", "model", m.modelName, "contents", len(contents))
	resp, err := m.genAIClient.Models.GenerateContent(ctx, m.modelName, contents, request.Config)
	if err != nil {
		return nil, wrapAPIError("gemini", err)
	}

	llmResp := CreateLLMResponse(resp)
	m.logger.DebugContext(ctx, "received response from gemini", buildResponseLog(llmResp))

	return llmResp, nil
}

// StreamGenerateContent implements [types.Model].
//
// Text chunks are yielded as partial responses; the aggregated text follows
// as one non-partial response when the stream finishes with STOP.
func (m *Gemini) StreamGenerateContent(ctx context.Context, request *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		contents := appendUserContent(request.Contents)
		stream := m.genAIClient.Models.GenerateContentStream(ctx, m.modelName, contents, request.Config)

		var (
			buf      strings.Builder
			lastResp *genai.GenerateContentResponse
		)
		for resp, err := range stream {
			// catch error first
			if err != nil {
				yield(nil, wrapAPIError("gemini", err))
				return
			}
			if ctx.Err() != nil || resp == nil {
				return
			}

			lastResp = resp
			llmResp := CreateLLMResponse(resp)

			switch {
			case containsText(llmResp):
				buf.WriteString(llmResp.Content.Parts[0].Text)
				llmResp.Partial = true

			case buf.Len() > 0:
				if !yield(newAggregateText(buf.String()), nil) {
					return
				}
				buf.Reset()
			}

			if !yield(llmResp, nil) {
				return
			}
		}

		if buf.Len() > 0 && finishStop(lastResp) {
			yield(newAggregateText(buf.String()), nil)
		}
	}
}

// envBool reports whether the environment variable key holds a true value.
func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
