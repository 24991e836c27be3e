// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/types"
)

const (
	// OpenAIDefaultModel is the default model name for [OpenAI].
	OpenAIDefaultModel = "gpt-4o"

	// EnvOpenAIAPIKey is the environment variable name for the OpenAI API key.
	EnvOpenAIAPIKey = "OPENAI_API_KEY"

	// EnvOpenAIBaseURL overrides the OpenAI API endpoint.
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"

	openAIModelPrefix = "openai/"
)

// OpenAI represents an OpenAI chat completion model.
//
// Model names may carry an "openai/" prefix, which is stripped before the request.
type OpenAI struct {
	*BaseLLM

	client openai.Client
}

var _ types.Model = (*OpenAI)(nil)

// NewOpenAI creates a new [OpenAI] instance.
func NewOpenAI(ctx context.Context, modelName string, opts ...Option) (*OpenAI, error) {
	if modelName == "" {
		modelName = OpenAIDefaultModel
	}
	base := NewBaseLLM(modelName, opts...)

	apiKey := base.apiKeyOr(EnvOpenAIAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("either WithAPIKey option or %q environment variable must be set", EnvOpenAIAPIKey)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := cmp.Or(base.baseURL, os.Getenv(EnvOpenAIBaseURL)); baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	if base.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(base.httpClient))
	}

	return &OpenAI{
		BaseLLM: base,
		client:  openai.NewClient(reqOpts...),
	}, nil
}

// GenerateContent implements [types.Model].
func (m *OpenAI) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	params, err := m.completionParams(request)
	if err != nil {
		return nil, err
	}

	m.logger.DebugContext(ctx, "sending request to openai", "model", params.Model, "messages", len(params.Messages))
	completion, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, wrapAPIError("openai", err)
	}

	llmResp, err := openAICompletionToLLMResponse(completion)
	if err != nil {
		return nil, err
	}
	m.logger.DebugContext(ctx, "received response from openai", buildResponseLog(llmResp))

	return llmResp, nil
}

// StreamGenerateContent implements [types.Model].
func (m *OpenAI) StreamGenerateContent(ctx context.Context, request *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		yield(m.GenerateContent(ctx, request))
	}
}

func (m *OpenAI) completionParams(request *types.LLMRequest) (openai.ChatCompletionNewParams, error) {
	contents := appendUserContent(request.Contents)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(contents)+1)
	if system := request.SystemInstructionText(); system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	for _, content := range contents {
		msgs, err := contentToOpenAIMessages(content)
		if err != nil {
			return openai.ChatCompletionNewParams{}, err
		}
		messages = append(messages, msgs...)
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(strings.TrimPrefix(m.modelName, openAIModelPrefix)),
		Messages: messages,
	}
	if m.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(m.maxTokens)
	}

	if config := request.Config; config != nil {
		if config.MaxOutputTokens > 0 {
			params.MaxCompletionTokens = openai.Int(int64(config.MaxOutputTokens))
		}
		if config.Temperature != nil {
			params.Temperature = openai.Float(float64(*config.Temperature))
		}
		if config.TopP != nil {
			params.TopP = openai.Float(float64(*config.TopP))
		}
		if len(config.StopSequences) > 0 {
			params.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: config.StopSequences}
		}
	}

	for _, decl := range request.FunctionDeclarations() {
		if decl.Name == "" {
			return openai.ChatCompletionNewParams{}, fmt.Errorf("functionDeclaration name is empty")
		}
		def := shared.FunctionDefinitionParam{
			Name:       decl.Name,
			Parameters: shared.FunctionParameters(parametersToJSON(decl)),
		}
		if decl.Description != "" {
			def.Description = openai.String(decl.Description)
		}
		params.Tools = append(params.Tools, openai.ChatCompletionToolParam{Function: def})
	}

	return params, nil
}

// contentToOpenAIMessages converts a [*genai.Content] into chat messages.
//
// Function responses become separate tool messages, one per call ID.
func contentToOpenAIMessages(content *genai.Content) ([]openai.ChatCompletionMessageParamUnion, error) {
	var (
		texts     []string
		toolCalls []openai.ChatCompletionMessageToolCallParam
		toolMsgs  []openai.ChatCompletionMessageParamUnion
	)
	for _, part := range content.Parts {
		switch {
		case part.Thought:
			continue

		case part.Text != "":
			texts = append(texts, part.Text)

		case part.FunctionCall != nil:
			callArgs := part.FunctionCall.Args
			if callArgs == nil {
				callArgs = map[string]any{}
			}
			args, err := sonic.ConfigFastest.MarshalToString(callArgs)
			if err != nil {
				return nil, fmt.Errorf("marshal function call %s args: %w", part.FunctionCall.Name, err)
			}
			toolCalls = append(toolCalls, openai.ChatCompletionMessageToolCallParam{
				ID: part.FunctionCall.ID,
				Function: openai.ChatCompletionMessageToolCallFunctionParam{
					Name:      part.FunctionCall.Name,
					Arguments: args,
				},
			})

		case part.FunctionResponse != nil:
			resp, err := sonic.ConfigFastest.MarshalToString(part.FunctionResponse.Response)
			if err != nil {
				return nil, fmt.Errorf("marshal function response %s: %w", part.FunctionResponse.Name, err)
			}
			toolMsgs = append(toolMsgs, openai.ToolMessage(resp, part.FunctionResponse.ID))
		}
	}

	text := strings.Join(texts, "\n")
	var msgs []openai.ChatCompletionMessageParamUnion
	switch strings.ToLower(content.Role) {
	case RoleModel, RoleAssistant:
		if text == "" && len(toolCalls) == 0 {
			break
		}
		assistant := openai.ChatCompletionAssistantMessageParam{ToolCalls: toolCalls}
		if text != "" {
			assistant.Content.OfString = openai.String(text)
		}
		msgs = append(msgs, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})

	default:
		if text != "" {
			msgs = append(msgs, openai.UserMessage(text))
		}
	}

	return append(msgs, toolMsgs...), nil
}

func openAIFinishReason(reason string) genai.FinishReason {
	switch reason {
	case "stop", "tool_calls", "function_call":
		return genai.FinishReasonStop
	case "length":
		return genai.FinishReasonMaxTokens
	case "content_filter":
		return genai.FinishReasonSafety
	default:
		return genai.FinishReasonUnspecified
	}
}

func openAICompletionToLLMResponse(completion *openai.ChatCompletion) (*types.LLMResponse, error) {
	if len(completion.Choices) == 0 {
		return &types.LLMResponse{
			ErrorCode:    "UNKNOWN_ERROR",
			ErrorMessage: "Chat completion returned no choices.",
		}, nil
	}
	choice := completion.Choices[0]

	var parts []*genai.Part
	if choice.Message.Content != "" {
		parts = append(parts, genai.NewPartFromText(choice.Message.Content))
	}
	for _, call := range choice.Message.ToolCalls {
		var args map[string]any
		if call.Function.Arguments != "" {
			if err := sonic.ConfigFastest.UnmarshalFromString(call.Function.Arguments, &args); err != nil {
				return nil, fmt.Errorf("unmarshal tool call %s arguments: %w", call.Function.Name, err)
			}
		}
		part := genai.NewPartFromFunctionCall(call.Function.Name, args)
		part.FunctionCall.ID = call.ID
		parts = append(parts, part)
	}

	return &types.LLMResponse{
		Content: &genai.Content{
			Role:  RoleModel,
			Parts: parts,
		},
		FinishReason: openAIFinishReason(choice.FinishReason),
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     int32(completion.Usage.PromptTokens),
			CandidatesTokenCount: int32(completion.Usage.CompletionTokens),
			TotalTokenCount:      int32(completion.Usage.TotalTokens),
		},
	}, nil
}
