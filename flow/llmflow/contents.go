// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/tiendc/go-deepcopy"
	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/types"
)

// ContentLLMRequestProcessor builds the contents for the LLM request from the session events.
type ContentLLMRequestProcessor struct{}

var _ LLMRequestProcessor = (*ContentLLMRequestProcessor)(nil)

// Run implements [LLMRequestProcessor].
func (p *ContentLLMRequestProcessor) Run(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		llmAgent, ok := ictx.Agent.(types.LLMAgent)
		if !ok {
			return
		}
		if llmAgent.IncludeContents() == types.IncludeContentsNone {
			return
		}

		contents, err := getContents(ictx.Branch, ictx.Session.Events, llmAgent.Name())
		if err != nil {
			yield(nil, err)
			return
		}
		request.Contents = contents
	}
}

// getContents get the contents for the LLM request.
func getContents(currentBranch string, events []*types.Event, agentName string) ([]*genai.Content, error) {
	var filteredEvents []*types.Event
	for _, event := range events {
		switch {
		case isEmptyEvent(event):
			// Events purely for mutating session states.
			continue
		case !isEventBelongsToBranch(currentBranch, event):
			continue
		case isAuthEvent(event):
			continue
		}

		if isOtherAgentReply(agentName, event) {
			event = convertForeignEvent(event)
		}
		filteredEvents = append(filteredEvents, event)
	}

	resultEvents, err := rearrangeEventsForLatestFunctionResponse(filteredEvents)
	if err != nil {
		return nil, err
	}
	resultEvents, err = rearrangeEventsForAsyncFunctionResponsesInHistory(resultEvents)
	if err != nil {
		return nil, err
	}

	contents := make([]*genai.Content, 0, len(resultEvents))
	for _, event := range resultEvents {
		content, err := copyContent(event.Content)
		if err != nil {
			return nil, err
		}
		contents = append(contents, RemoveClientFunctionCallID(content))
	}

	return contents, nil
}

func copyContent(content *genai.Content) (*genai.Content, error) {
	copied := &genai.Content{}
	if err := deepcopy.Copy(copied, content); err != nil {
		return nil, fmt.Errorf("copy content: %w", err)
	}
	return copied, nil
}

// isEmptyEvent reports whether event has no role or no part with text, a
// function call or a function response.
func isEmptyEvent(event *types.Event) bool {
	content := event.GetContent()
	if content == nil || content.Role == "" {
		return true
	}
	for _, part := range content.Parts {
		if part != nil && (part.Text != "" || part.FunctionCall != nil || part.FunctionResponse != nil) {
			return false
		}
	}
	return true
}

// rearrangeEventsForAsyncFunctionResponsesInHistory rearrange the async function_response events in the history.
//
// Every function call event is followed by the events answering it.
func rearrangeEventsForAsyncFunctionResponsesInHistory(events []*types.Event) ([]*types.Event, error) {
	funcCallIDToResponseEventIndex := make(map[string]int)
	for i, event := range events {
		for _, funcResponse := range event.GetFunctionResponses() {
			funcCallIDToResponseEventIndex[funcResponse.ID] = i
		}
	}

	resultEvents := make([]*types.Event, 0, len(events))
	for _, event := range events {
		if len(event.GetFunctionResponses()) > 0 {
			// function_response should be handled together with function_call below.
			continue
		}

		funcCalls := event.GetFunctionCalls()
		if len(funcCalls) == 0 {
			resultEvents = append(resultEvents, event)
			continue
		}

		var responseIndices []int
		for _, funcCall := range funcCalls {
			if idx, ok := funcCallIDToResponseEventIndex[funcCall.ID]; ok && !slices.Contains(responseIndices, idx) {
				responseIndices = append(responseIndices, idx)
			}
		}

		resultEvents = append(resultEvents, event)
		switch len(responseIndices) {
		case 0:
			continue
		case 1:
			resultEvents = append(resultEvents, events[responseIndices[0]])
		default:
			slices.Sort(responseIndices)
			responseEvents := make([]*types.Event, len(responseIndices))
			for i, idx := range responseIndices {
				responseEvents[i] = events[idx]
			}
			merged, err := mergeFunctionResponseEvents(responseEvents)
			if err != nil {
				return nil, err
			}
			resultEvents = append(resultEvents, merged)
		}
	}

	return resultEvents, nil
}

// rearrangeEventsForLatestFunctionResponse rearrange the events for the latest function_response.
//
// If the latest function_response is for an async function_call, all events
// between the initial function_call and the latest function_response will be
// removed.
func rearrangeEventsForLatestFunctionResponse(events []*types.Event) ([]*types.Event, error) {
	if len(events) < 2 {
		return events, nil
	}

	funcResponses := events[len(events)-1].GetFunctionResponses()
	if len(funcResponses) == 0 {
		// No need to process, since the latest event is not function_response.
		return events, nil
	}

	funcResponseIDs := make(map[string]bool, len(funcResponses))
	for _, funcResponse := range funcResponses {
		funcResponseIDs[funcResponse.ID] = true
	}

	for _, funcCall := range events[len(events)-2].GetFunctionCalls() {
		// The latest function_response is already matched
		if funcResponseIDs[funcCall.ID] {
			return events, nil
		}
	}

	funcCallEventIdx := -1
	// look for corresponding function call event reversely
	for idx := len(events) - 2; idx >= 0; idx-- {
		funcCalls := events[idx].GetFunctionCalls()
		if len(funcCalls) == 0 {
			continue
		}
		for _, funcCall := range funcCalls {
			if funcResponseIDs[funcCall.ID] {
				funcCallEventIdx = idx
				break
			}
		}
		if funcCallEventIdx != -1 {
			// in case the last response event only have part of the responses
			// for the function calls in the function call event
			for _, funcCall := range funcCalls {
				funcResponseIDs[funcCall.ID] = true
			}
			break
		}
	}
	if funcCallEventIdx == -1 {
		ids := make([]string, 0, len(funcResponseIDs))
		for id := range funcResponseIDs {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		return nil, fmt.Errorf("no function call event found for function responses ids: %v", ids)
	}

	// collect all function response between last function response event
	// and function call event
	var funcResponseEvents []*types.Event
	for _, event := range events[funcCallEventIdx+1 : len(events)-1] {
		if responses := event.GetFunctionResponses(); len(responses) > 0 && funcResponseIDs[responses[0].ID] {
			funcResponseEvents = append(funcResponseEvents, event)
		}
	}
	funcResponseEvents = append(funcResponseEvents, events[len(events)-1])

	merged, err := mergeFunctionResponseEvents(funcResponseEvents)
	if err != nil {
		return nil, err
	}

	return append(slices.Clone(events[:funcCallEventIdx+1]), merged), nil
}

// isOtherAgentReply whether the event is a reply from another agent.
func isOtherAgentReply(currentAgentName string, event *types.Event) bool {
	return currentAgentName != "" && event.Author != currentAgentName && event.Author != types.AuthorUser
}

// convertForeignEvent converts an event authored by another agent as a user-content event.
//
// This is to provide another agent's output as context to the current agent, so
// that current agent can continue to respond, such as summarizing previous
// agent's reply, etc.
func convertForeignEvent(event *types.Event) *types.Event {
	content := event.GetContent()
	if content == nil || len(content.Parts) == 0 {
		return event
	}

	parts := []*genai.Part{genai.NewPartFromText("For context:")}
	for _, part := range content.Parts {
		switch {
		case part == nil:
			continue
		case part.Text != "":
			if part.Thought {
				continue
			}
			parts = append(parts, genai.NewPartFromText(fmt.Sprintf("[%s] said: %s", event.Author, part.Text)))
		case part.FunctionCall != nil:
			parts = append(parts, genai.NewPartFromText(fmt.Sprintf("[%s] called tool `%s` with parameters: %v",
				event.Author, part.FunctionCall.Name, part.FunctionCall.Args)))
		case part.FunctionResponse != nil:
			parts = append(parts, genai.NewPartFromText(fmt.Sprintf("[%s] `%s` returned result: %v",
				event.Author, part.FunctionResponse.Name, part.FunctionResponse.Response)))
		default:
			parts = append(parts, part)
		}
	}

	converted := types.NewEvent(event.InvocationID, types.AuthorUser).
		WithContent(genai.NewContentFromParts(parts, genai.RoleUser)).
		WithBranch(event.Branch)
	converted.Timestamp = event.Timestamp

	return converted
}

// mergeFunctionResponseEvents merges a list of function_response events into one event.
//
// The key goal is to ensure:
//  1. function_call and function_response are always of the same number.
//  2. The function_call and function_response are consecutively in the content.
//
// A later response to the same function call replaces the earlier one.
func mergeFunctionResponseEvents(funcResponseEvents []*types.Event) (*types.Event, error) {
	if len(funcResponseEvents) == 0 {
		return nil, errors.New("at least one function_response event is required")
	}

	base := funcResponseEvents[0]
	if base.GetContent() == nil || len(base.Content.Parts) == 0 {
		return nil, errors.New("there should be at least one function_response part")
	}
	content, err := copyContent(base.Content)
	if err != nil {
		return nil, err
	}

	partIndices := make(map[string]int)
	for i, part := range content.Parts {
		if part.FunctionResponse != nil {
			partIndices[part.FunctionResponse.ID] = i
		}
	}

	for _, event := range funcResponseEvents[1:] {
		if event.GetContent() == nil || len(event.Content.Parts) == 0 {
			return nil, errors.New("there should be at least one function_response part")
		}
		for _, part := range event.Content.Parts {
			if part.FunctionResponse == nil {
				content.Parts = append(content.Parts, part)
				continue
			}
			if idx, ok := partIndices[part.FunctionResponse.ID]; ok {
				content.Parts[idx] = part
				continue
			}
			content.Parts = append(content.Parts, part)
			partIndices[part.FunctionResponse.ID] = len(content.Parts) - 1
		}
	}

	merged := *base
	merged.LLMResponse = &types.LLMResponse{Content: content}
	return &merged, nil
}

// isEventBelongsToBranch Event belongs to a branch, when event.branch is prefix of the invocation branch.
func isEventBelongsToBranch(invocationBranch string, event *types.Event) bool {
	if invocationBranch == "" || event.Branch == "" {
		return true
	}
	return strings.HasPrefix(invocationBranch, event.Branch)
}

func isAuthEvent(event *types.Event) bool {
	for _, part := range event.GetContent().Parts {
		if part == nil {
			continue
		}
		if part.FunctionCall != nil && part.FunctionCall.Name == RequestEUCFunctionCallName {
			return true
		}
		if part.FunctionResponse != nil && part.FunctionResponse.Name == RequestEUCFunctionCallName {
			return true
		}
	}
	return false
}
