// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"cmp"
	"os"
	"slices"
	"strings"

	"google.golang.org/genai"
)

// BaseLLM holds the model name and [Config] of a provider model.
type BaseLLM struct {
	Config

	// modelName represents the specific LLM model name.
	modelName string
}

// NewBaseLLM returns the new [BaseLLM] with the specified model name.
func NewBaseLLM(modelName string, opts ...Option) *BaseLLM {
	llm := &BaseLLM{
		Config:    newConfig(),
		modelName: modelName,
	}
	for _, opt := range opts {
		llm.Config = opt.apply(llm.Config)
	}

	return llm
}

// Name implements [types.Model].
func (m *BaseLLM) Name() string {
	return m.modelName
}

// apiKeyOr returns the configured API key, or the value of the env environment variable.
func (m *BaseLLM) apiKeyOr(env string) string {
	return cmp.Or(m.apiKey, os.Getenv(env))
}

// appendUserContent checks if the last message is from the user and if not, appends a user message.
//
// Providers reject a conversation that does not end with a user turn.
func appendUserContent(contents []*genai.Content) []*genai.Content {
	switch {
	case len(contents) == 0:
		return append(slices.Clip(contents), genai.NewContentFromText(`Handle the requests as specified in the System Instruction.`, genai.RoleUser))

	case strings.ToLower(contents[len(contents)-1].Role) != genai.RoleUser:
		return append(slices.Clip(contents), genai.NewContentFromText(`Continue processing previous requests as instructed. Exit or provide a summary if no more outputs are needed.`, genai.RoleUser))

	default:
		return contents
	}
}
