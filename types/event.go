// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"log/slog"
	rand "math/rand/v2"
	"slices"
	"time"

	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/internal/pool"
)

// AuthorUser is the author of events that carry end-user input.
const AuthorUser = "user"

// Event represents an event in a conversation between agents and users.
//
// It is used to store the content of the conversation, as well as the actions
// taken by the agents like function calls, etc.
type Event struct {
	*LLMResponse

	// InvocationID is the invocation ID of the event.
	InvocationID string

	// Author is the 'user' or the name of the agent, indicating who appended the event to the session.
	Author string

	// Actions is the actions taken by the agent.
	Actions *EventActions

	// LongRunningToolIDs is the set of ids of the long running function calls.
	//
	// Agent client will know from this field about which function call is long running.
	// Only valid for function call event.
	LongRunningToolIDs []string

	// Branch is the branch of the event.
	//
	// The format is like agent_1.agent_2.agent_3, where agent_1 is the parent of
	// agent_2, and agent_2 is the parent of agent_3.
	//
	// Branch is used when multiple sub-agent shouldn't see their peer agents'
	// conversation history.
	Branch string

	// ID is the unique identifier of the event.
	ID string

	// Timestamp is the creation time of the event.
	Timestamp time.Time
}

// NewEvent creates a new event with a unique ID, timestamp and empty actions.
func NewEvent(invocationID, author string) *Event {
	return &Event{
		LLMResponse:  new(LLMResponse),
		InvocationID: invocationID,
		Author:       author,
		Actions:      NewEventActions(),
		ID:           NewEventID(),
		Timestamp:    time.Now(),
	}
}

// WithLLMResponse sets the LLMResponse for the event.
func (e *Event) WithLLMResponse(response *LLMResponse) *Event {
	e.LLMResponse = response
	return e
}

// WithContent sets the content of the event's LLMResponse.
func (e *Event) WithContent(content *genai.Content) *Event {
	if e.LLMResponse == nil {
		e.LLMResponse = new(LLMResponse)
	}
	e.LLMResponse.Content = content
	return e
}

// WithActions sets the actions of the event.
func (e *Event) WithActions(actions *EventActions) *Event {
	e.Actions = actions
	return e
}

// WithLongRunningToolIDs sets the long running tool IDs of the event.
func (e *Event) WithLongRunningToolIDs(ids ...string) *Event {
	for _, id := range ids {
		if !slices.Contains(e.LongRunningToolIDs, id) {
			e.LongRunningToolIDs = append(e.LongRunningToolIDs, id)
		}
	}
	return e
}

// WithBranch sets the branch of the event.
func (e *Event) WithBranch(branch string) *Event {
	e.Branch = branch
	return e
}

// IsFinalResponse returns whether the event is the final response of the agent.
func (e *Event) IsFinalResponse() bool {
	if (e.Actions != nil && e.Actions.SkipSummarization) || len(e.LongRunningToolIDs) > 0 {
		return true
	}

	return len(e.GetFunctionCalls()) == 0 && len(e.GetFunctionResponses()) == 0 && !e.IsPartial()
}

// IsPartial reports whether the event carries an unfinished streaming chunk.
func (e *Event) IsPartial() bool {
	return e.LLMResponse != nil && e.Partial
}

// GetContent returns the event content, or nil.
func (e *Event) GetContent() *genai.Content {
	if e.LLMResponse == nil {
		return nil
	}
	return e.Content
}

// GetFunctionCalls returns the function calls in the event.
func (e *Event) GetFunctionCalls() []*genai.FunctionCall {
	content := e.GetContent()
	if content == nil {
		return nil
	}

	var funcCalls []*genai.FunctionCall
	for _, part := range content.Parts {
		if part != nil && part.FunctionCall != nil {
			funcCalls = append(funcCalls, part.FunctionCall)
		}
	}

	return funcCalls
}

// GetFunctionResponses returns the function responses in the event.
func (e *Event) GetFunctionResponses() []*genai.FunctionResponse {
	content := e.GetContent()
	if content == nil {
		return nil
	}

	var funcResponses []*genai.FunctionResponse
	for _, part := range content.Parts {
		if part != nil && part.FunctionResponse != nil {
			funcResponses = append(funcResponses, part.FunctionResponse)
		}
	}

	return funcResponses
}

// Text returns the concatenated text of all content parts.
func (e *Event) Text() string {
	content := e.GetContent()
	if content == nil {
		return ""
	}

	buf := pool.Buffer.Get()
	defer pool.Buffer.Put(buf)

	for _, part := range content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			buf.WriteString(part.Text)
		}
	}
	return buf.String()
}

// LogValue implements [slog.LogValuer].
//
// The content is encoded only when the record is actually logged.
func (e *Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("id", e.ID),
		slog.String("author", e.Author),
	}
	if e.Branch != "" {
		attrs = append(attrs, slog.String("branch", e.Branch))
	}
	if content := e.GetContent(); content != nil {
		if encoded, err := EncodeContent(content); err == nil {
			attrs = append(attrs, slog.Any("content", encoded))
		}
	}
	return slog.GroupValue(attrs...)
}

const (
	letterBytes   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	letterIdxBits = 6                    // 6 bits to represent a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

// NewEventID returns a random 8 character event ID.
func NewEventID() string {
	b := make([]byte, 8)
	for i, cache, remain := len(b)-1, rand.Int64(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache = rand.Int64()
			remain = letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			b[i] = letterBytes[idx]
			i--
		}
		cache >>= letterIdxBits
		remain--
	}

	return string(b)
}
