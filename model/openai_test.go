// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/types"
)

func TestOpenAI_GenerateContent(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.Header.Get("Authorization"), "Bearer test-key"; got != want {
			t.Errorf("Authorization = %q, want %q", got, want)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		if err := sonic.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("unmarshal body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o",
			"choices": [{
				"index": 0,
				"finish_reason": "tool_calls",
				"message": {
					"role": "assistant",
					"content": null,
					"tool_calls": [{
						"id": "call_1",
						"type": "function",
						"function": {"name": "get_weather", "arguments": "{\"city\":\"Paris\"}"}
					}]
				}
			}],
			"usage": {"prompt_tokens": 3, "completion_tokens": 4, "total_tokens": 7}
		}`)
	}))
	defer srv.Close()

	llm, err := NewOpenAI(t.Context(), "openai/gpt-4o",
		WithAPIKey("test-key"),
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewOpenAI: %v", err)
	}
	if got, want := llm.Name(), "openai/gpt-4o"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}

	request := types.NewLLMRequest([]*genai.Content{
		genai.NewContentFromText("Weather in Paris?", genai.RoleUser),
	})
	request.AppendInstructions("You are a helpful weather assistant.")

	got, err := llm.GenerateContent(t.Context(), request)
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}

	wantCall := genai.NewPartFromFunctionCall("get_weather", map[string]any{"city": "Paris"})
	wantCall.FunctionCall.ID = "call_1"
	want := &types.LLMResponse{
		Content: &genai.Content{
			Role:  genai.RoleModel,
			Parts: []*genai.Part{wantCall},
		},
		FinishReason: genai.FinishReasonStop,
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     3,
			CandidatesTokenCount: 4,
			TotalTokenCount:      7,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("GenerateContent() mismatch (-want +got):\n%s", diff)
	}

	if got, want := gotBody["model"], "gpt-4o"; got != want {
		t.Errorf("model = %v, want %v", got, want)
	}
	messages, _ := gotBody["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("messages = %v, want system and user", gotBody["messages"])
	}
	if got := messages[0].(map[string]any)["role"]; got != "system" {
		t.Errorf("messages[0].role = %v, want system", got)
	}
}

func TestContentToOpenAIMessages(t *testing.T) {
	call := genai.NewPartFromFunctionCall("get_weather", map[string]any{"city": "Paris"})
	call.FunctionCall.ID = "call_1"
	resp := genai.NewPartFromFunctionResponse("get_weather", map[string]any{"status": "success"})
	resp.FunctionResponse.ID = "call_1"

	tests := map[string]struct {
		content  *genai.Content
		wantRole []string
	}{
		"user text": {
			content:  genai.NewContentFromText("hi", genai.RoleUser),
			wantRole: []string{"user"},
		},
		"model text and call": {
			content:  &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{genai.NewPartFromText("checking"), call}},
			wantRole: []string{"assistant"},
		},
		"function response": {
			content:  &genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{resp}},
			wantRole: []string{"tool"},
		},
		"empty model turn": {
			content:  &genai.Content{Role: genai.RoleModel},
			wantRole: []string{},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			msgs, err := contentToOpenAIMessages(tt.content)
			if err != nil {
				t.Fatalf("contentToOpenAIMessages: %v", err)
			}
			gotRole := make([]string, 0, len(msgs))
			for _, msg := range msgs {
				b, err := sonic.Marshal(msg)
				if err != nil {
					t.Fatal(err)
				}
				var payload struct {
					Role string `json:"role"`
				}
				if err := sonic.Unmarshal(b, &payload); err != nil {
					t.Fatal(err)
				}
				gotRole = append(gotRole, payload.Role)
			}
			if diff := cmp.Diff(tt.wantRole, gotRole); diff != "" {
				t.Errorf("roles mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOpenAIFinishReason(t *testing.T) {
	tests := map[string]genai.FinishReason{
		"stop":           genai.FinishReasonStop,
		"tool_calls":     genai.FinishReasonStop,
		"length":         genai.FinishReasonMaxTokens,
		"content_filter": genai.FinishReasonSafety,
		"":               genai.FinishReasonUnspecified,
	}
	for reason, want := range tests {
		if got := openAIFinishReason(reason); got != want {
			t.Errorf("openAIFinishReason(%q) = %q, want %q", reason, got, want)
		}
	}
}
