// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"google.golang.org/genai"
)

// Role represents the role of a participant in a conversation.
type Role = string

const (
	// RoleSystem is the role of the system.
	RoleSystem Role = "system"

	// RoleAssistant is the role of the assistant.
	RoleAssistant Role = "assistant"

	// RoleUser is the role of the user.
	RoleUser Role = genai.RoleUser

	// RoleModel is the role of the model.
	RoleModel Role = genai.RoleModel
)

// wrapAPIError annotates a provider SDK error with the provider name and HTTP status.
func wrapAPIError(provider string, err error) error {
	var (
		geminiErr genai.APIError
		claudeErr *anthropic.Error
		openaiErr *openai.Error
	)
	switch {
	case errors.As(err, &geminiErr):
		return fmt.Errorf("%s API error (status %d): %w", provider, geminiErr.Code, err)
	case errors.As(err, &claudeErr):
		return fmt.Errorf("%s API error (status %d): %w", provider, claudeErr.StatusCode, err)
	case errors.As(err, &openaiErr):
		return fmt.Errorf("%s API error (status %d): %w", provider, openaiErr.StatusCode, err)
	}

	return fmt.Errorf("%s API error: %w", provider, err)
}

// schemaToJSON converts a [*genai.Schema] into a JSON Schema object.
//
// genai spells types in upper case; JSON Schema needs them in lower case.
func schemaToJSON(schema *genai.Schema) map[string]any {
	if schema == nil {
		return nil
	}

	out := make(map[string]any)
	if schema.Type != genai.TypeUnspecified && schema.Type != "" {
		out["type"] = strings.ToLower(string(schema.Type))
	}
	if schema.Description != "" {
		out["description"] = schema.Description
	}
	if schema.Format != "" {
		out["format"] = schema.Format
	}
	if len(schema.Enum) > 0 {
		out["enum"] = schema.Enum
	}
	if schema.Items != nil {
		out["items"] = schemaToJSON(schema.Items)
	}
	if len(schema.Properties) > 0 {
		props := make(map[string]any, len(schema.Properties))
		for name, prop := range schema.Properties {
			props[name] = schemaToJSON(prop)
		}
		out["properties"] = props
	}
	if len(schema.Required) > 0 {
		out["required"] = schema.Required
	}
	if len(schema.AnyOf) > 0 {
		anyOf := make([]any, len(schema.AnyOf))
		for i, s := range schema.AnyOf {
			anyOf[i] = schemaToJSON(s)
		}
		out["anyOf"] = anyOf
	}
	if schema.Nullable != nil && *schema.Nullable {
		out["nullable"] = true
	}

	return out
}

// parametersToJSON returns the JSON Schema of function parameters, which is
// always an object schema.
func parametersToJSON(decl *genai.FunctionDeclaration) map[string]any {
	params := schemaToJSON(decl.Parameters)
	if params == nil {
		params = make(map[string]any)
	}
	params["type"] = "object"
	if _, ok := params["properties"]; !ok {
		params["properties"] = map[string]any{}
	}

	return params
}
