// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package model provides multi-provider LLM integration behind the [types.Model] interface.
//
// Every provider speaks google.golang.org/genai content: requests carry
// [*genai.Content] turns and function declarations, and responses come back
// as [types.LLMResponse] with text and function call parts.
//
// # Supported Providers
//
//   - Google Gemini through the Gemini API or Vertex AI ([NewGemini])
//   - Anthropic Claude ([NewClaude])
//   - OpenAI chat completions ([NewOpenAI])
//
// # Model Registry
//
// Model names resolve to providers by regular expression. A pattern must
// match the whole name:
//
//	gemini-2.0-flash                    // Gemini
//	claude-3-sonnet-20240229            // Claude
//	openai/gpt-4o, gpt-4o-mini, o3-mini // OpenAI
//
// Use [NewLLM] to create a model by name:
//
//	llm, err := model.NewLLM(ctx, "gemini-2.0-flash", model.WithAPIKey(key))
//	if err != nil {
//		return err
//	}
//
// Names no provider accepts fail with [types.ErrModelNotFound]. Additional
// providers are added with [RegisterLLM].
//
// # Configuration
//
// API keys are read from [WithAPIKey] or the provider environment variable
// ([EnvGoogleAPIKey], [EnvAnthropicAPIKey], [EnvOpenAIAPIKey]). Set
// [EnvGoogleGenAIUseVertexAI] or pass [WithVertexAI] to use Vertex AI with
// Application Default Credentials.
package model
