// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/bytedance/sonic"
	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/types"
)

const (
	// ClaudeDefaultModel is the default model name for [Claude].
	ClaudeDefaultModel = "claude-sonnet-4-0"

	// EnvAnthropicAPIKey is the environment variable name for the Anthropic API key.
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"

	claudeDefaultMaxTokens = 8192
)

// Claude represents a Claude Large Language Model.
type Claude struct {
	*BaseLLM

	anthropicClient anthropic.Client
}

var _ types.Model = (*Claude)(nil)

// NewClaude creates a new Claude LLM instance.
func NewClaude(ctx context.Context, modelName string, opts ...Option) (*Claude, error) {
	if modelName == "" {
		modelName = ClaudeDefaultModel
	}
	base := NewBaseLLM(modelName, opts...)

	apiKey := base.apiKeyOr(EnvAnthropicAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("either WithAPIKey option or %q environment variable must be set", EnvAnthropicAPIKey)
	}
	if base.maxTokens == 0 {
		base.maxTokens = claudeDefaultMaxTokens
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if base.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(base.baseURL))
	}
	if base.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(base.httpClient))
	}

	return &Claude{
		BaseLLM:         base,
		anthropicClient: anthropic.NewClient(reqOpts...),
	}, nil
}

// GenerateContent implements [types.Model].
func (m *Claude) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	params, err := m.messageParams(request)
	if err != nil {
		return nil, err
	}

	m.logger.DebugContext(ctx, "sending request to claude", "model", m.modelName, "messages", len(params.Messages))
	message, err := m.anthropicClient.Messages.New(ctx, params)
	if err != nil {
		return nil, wrapAPIError("claude", err)
	}

	llmResp, err := claudeMessageToLLMResponse(message)
	if err != nil {
		return nil, err
	}
	m.logger.DebugContext(ctx, "received response from claude", buildResponseLog(llmResp))

	return llmResp, nil
}

// StreamGenerateContent implements [types.Model].
//
// Claude answers with a single non-partial response.
func (m *Claude) StreamGenerateContent(ctx context.Context, request *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		yield(m.GenerateContent(ctx, request))
	}
}

func (m *Claude) messageParams(request *types.LLMRequest) (anthropic.MessageNewParams, error) {
	contents := appendUserContent(request.Contents)

	messages := make([]anthropic.MessageParam, 0, len(contents))
	for _, content := range contents {
		msg, err := contentToClaudeMessageParam(content)
		if err != nil {
			return anthropic.MessageNewParams{}, err
		}
		if len(msg.Content) > 0 {
			messages = append(messages, msg)
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(m.modelName),
		Messages:  messages,
		MaxTokens: m.maxTokens,
	}
	if system := request.SystemInstructionText(); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	if config := request.Config; config != nil {
		if config.MaxOutputTokens > 0 {
			params.MaxTokens = int64(config.MaxOutputTokens)
		}
		if config.Temperature != nil {
			params.Temperature = anthropic.Float(float64(*config.Temperature))
		}
		if config.TopK != nil {
			params.TopK = anthropic.Int(int64(*config.TopK))
		}
		if config.TopP != nil {
			params.TopP = anthropic.Float(float64(*config.TopP))
		}
		params.StopSequences = config.StopSequences
	}

	for _, decl := range request.FunctionDeclarations() {
		toolUnion, err := functionDeclarationToToolParam(decl)
		if err != nil {
			return anthropic.MessageNewParams{}, err
		}
		params.Tools = append(params.Tools, toolUnion)
	}

	return params, nil
}

func functionDeclarationToToolParam(funcDeclaration *genai.FunctionDeclaration) (anthropic.ToolUnionParam, error) {
	if funcDeclaration.Name == "" {
		return anthropic.ToolUnionParam{}, errors.New("functionDeclaration name is empty")
	}

	params := parametersToJSON(funcDeclaration)
	inputSchema := anthropic.ToolInputSchemaParam{
		Properties: params["properties"],
	}
	if required, ok := params["required"].([]string); ok {
		inputSchema.Required = required
	}

	toolUnion := anthropic.ToolUnionParamOfTool(inputSchema, funcDeclaration.Name)
	if funcDeclaration.Description != "" {
		toolUnion.OfTool.Description = anthropic.String(funcDeclaration.Description)
	}

	return toolUnion, nil
}

// asClaudeRole maps a genai role to the Claude message role.
func asClaudeRole(role string) anthropic.MessageParamRole {
	switch strings.ToLower(role) {
	case RoleModel, RoleAssistant:
		return anthropic.MessageParamRoleAssistant
	default:
		return anthropic.MessageParamRoleUser
	}
}

// asFinishReason maps a Claude stop reason to a genai finish reason.
func asFinishReason(stopReason anthropic.StopReason) genai.FinishReason {
	switch stopReason {
	case anthropic.StopReasonEndTurn, anthropic.StopReasonStopSequence, anthropic.StopReasonToolUse:
		return genai.FinishReasonStop
	case anthropic.StopReasonMaxTokens:
		return genai.FinishReasonMaxTokens
	default:
		return genai.FinishReasonUnspecified
	}
}

func partToClaudeMessageBlock(part *genai.Part) (anthropic.ContentBlockParamUnion, bool, error) {
	switch {
	case part.Thought:
		return anthropic.ContentBlockParamUnion{}, false, nil

	case part.Text != "":
		return anthropic.NewTextBlock(part.Text), true, nil

	case part.FunctionCall != nil:
		funcCall := part.FunctionCall
		if funcCall.Name == "" {
			return anthropic.ContentBlockParamUnion{}, false, errors.New("FunctionCall name is empty")
		}
		args := funcCall.Args
		if args == nil {
			args = map[string]any{}
		}
		return anthropic.NewToolUseBlock(funcCall.ID, args, funcCall.Name), true, nil

	case part.FunctionResponse != nil:
		funcResp := part.FunctionResponse
		content, err := sonic.ConfigFastest.MarshalToString(funcResp.Response)
		if err != nil {
			return anthropic.ContentBlockParamUnion{}, false, fmt.Errorf("marshal function response %s: %w", funcResp.Name, err)
		}
		return anthropic.NewToolResultBlock(funcResp.ID, content, false), true, nil
	}

	return anthropic.ContentBlockParamUnion{}, false, nil
}

// contentToClaudeMessageParam converts [*genai.Content] to [anthropic.MessageParam].
func contentToClaudeMessageParam(content *genai.Content) (anthropic.MessageParam, error) {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(content.Parts))
	for _, part := range content.Parts {
		block, ok, err := partToClaudeMessageBlock(part)
		if err != nil {
			return anthropic.MessageParam{}, err
		}
		if ok {
			blocks = append(blocks, block)
		}
	}

	return anthropic.MessageParam{
		Role:    asClaudeRole(content.Role),
		Content: blocks,
	}, nil
}

func claudeContentBlockToPart(block anthropic.ContentBlockUnion) (*genai.Part, error) {
	switch block.Type {
	case "text":
		return genai.NewPartFromText(block.Text), nil

	case "tool_use":
		var args map[string]any
		if len(block.Input) > 0 {
			if err := sonic.ConfigFastest.Unmarshal(block.Input, &args); err != nil {
				return nil, fmt.Errorf("unmarshal tool_use input: %w", err)
			}
		}
		part := genai.NewPartFromFunctionCall(block.Name, args)
		part.FunctionCall.ID = block.ID
		return part, nil
	}

	return nil, nil
}

func claudeMessageToLLMResponse(message *anthropic.Message) (*types.LLMResponse, error) {
	parts := make([]*genai.Part, 0, len(message.Content))
	for _, block := range message.Content {
		part, err := claudeContentBlockToPart(block)
		if err != nil {
			return nil, err
		}
		if part != nil {
			parts = append(parts, part)
		}
	}

	inputTokens := int32(message.Usage.InputTokens)
	outputTokens := int32(message.Usage.OutputTokens)
	return &types.LLMResponse{
		Content: &genai.Content{
			Role:  RoleModel,
			Parts: parts,
		},
		FinishReason: asFinishReason(message.StopReason),
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     inputTokens,
			CandidatesTokenCount: outputTokens,
			TotalTokenCount:      inputTokens + outputTokens,
		},
	}, nil
}
