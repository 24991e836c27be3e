// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package fakellm provides a scripted [types.Model] for tests.
package fakellm

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/types"
)

// Model replays scripted responses, one per call, and records every request.
type Model struct {
	name string

	mu        sync.Mutex
	responses []*types.LLMResponse
	requests  []*types.LLMRequest
	err       error
}

var _ types.Model = (*Model)(nil)

// New returns a [Model] that answers calls with responses in order.
func New(name string, responses ...*types.LLMResponse) *Model {
	return &Model{
		name:      name,
		responses: responses,
	}
}

// NewFailing returns a [Model] whose every call fails with err.
func NewFailing(name string, err error) *Model {
	return &Model{
		name: name,
		err:  err,
	}
}

// Name implements [types.Model].
func (m *Model) Name() string {
	return m.name
}

// GenerateContent implements [types.Model].
func (m *Model) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, request)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return nil, fmt.Errorf("fakellm: no response scripted for call %d", len(m.requests))
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

// StreamGenerateContent implements [types.Model].
func (m *Model) StreamGenerateContent(ctx context.Context, request *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		yield(m.GenerateContent(ctx, request))
	}
}

// Requests returns the requests received so far.
func (m *Model) Requests() []*types.LLMRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*types.LLMRequest(nil), m.requests...)
}

// Remaining reports how many scripted responses have not been used.
func (m *Model) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.responses)
}

// Text returns a final model response with text.
func Text(text string) *types.LLMResponse {
	return &types.LLMResponse{
		Content:      genai.NewContentFromText(text, genai.RoleModel),
		FinishReason: genai.FinishReasonStop,
	}
}

// FunctionCall returns a model response calling the function name with args.
func FunctionCall(name string, args map[string]any) *types.LLMResponse {
	return FunctionCalls(&genai.FunctionCall{Name: name, Args: args})
}

// FunctionCalls returns a model response with several parallel function calls.
func FunctionCalls(calls ...*genai.FunctionCall) *types.LLMResponse {
	parts := make([]*genai.Part, len(calls))
	for i, call := range calls {
		parts[i] = &genai.Part{FunctionCall: call}
	}

	return &types.LLMResponse{
		Content:      genai.NewContentFromParts(parts, genai.RoleModel),
		FinishReason: genai.FinishReasonStop,
	}
}
