// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/tool/tools"
	"github.com/go-a2a/weather-agent-team/types"
)

const (
	// FunctionCallIDPrefix marks function call IDs generated on the client side.
	FunctionCallIDPrefix = "adk-"

	// RequestEUCFunctionCallName is the function call name of end-user credential requests.
	RequestEUCFunctionCallName = "adk_request_credential"
)

// GenerateClientFunctionCallID generates a unique function call ID for the client.
func GenerateClientFunctionCallID() string {
	return FunctionCallIDPrefix + uuid.NewString()
}

// PopulateClientFunctionCallID populates the function call ID for each function call in the model response event.
func PopulateClientFunctionCallID(modelResponseEvent *types.Event) {
	for _, funcCall := range modelResponseEvent.GetFunctionCalls() {
		if funcCall.ID == "" {
			funcCall.ID = GenerateClientFunctionCallID()
		}
	}
}

// RemoveClientFunctionCallID removes the client generated function call IDs from content.
//
// Model generated IDs are kept.
func RemoveClientFunctionCallID(content *genai.Content) *genai.Content {
	if content == nil {
		return nil
	}

	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		if part.FunctionCall != nil && strings.HasPrefix(part.FunctionCall.ID, FunctionCallIDPrefix) {
			part.FunctionCall.ID = ""
		}
		if part.FunctionResponse != nil && strings.HasPrefix(part.FunctionResponse.ID, FunctionCallIDPrefix) {
			part.FunctionResponse.ID = ""
		}
	}
	return content
}

// GetLongRunningFunctionCalls returns the IDs of the function calls whose tool is long running.
func GetLongRunningFunctionCalls(funcCalls []*genai.FunctionCall, toolMap map[string]types.Tool) []string {
	var ids []string
	for _, funcCall := range funcCalls {
		if t, ok := toolMap[funcCall.Name]; ok && t != nil && t.IsLongRunning() {
			ids = append(ids, funcCall.ID)
		}
	}
	return ids
}

// HandleFunctionCalls calls the tools requested by functionCallEvent and
// returns the merged function response event.
//
// Several calls run concurrently. A nil event with a nil error means no tool
// produced a response, which happens when only long running tools were called.
func HandleFunctionCalls(ctx context.Context, ictx *types.InvocationContext, functionCallEvent *types.Event, toolMap map[string]types.Tool) (*types.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	llmAgent, ok := ictx.Agent.(types.LLMAgent)
	if !ok {
		return nil, nil
	}

	funcCalls := functionCallEvent.GetFunctionCalls()
	if len(funcCalls) == 1 {
		event, err := handleFunctionCall(ctx, ictx, llmAgent, funcCalls[0], toolMap)
		if err != nil || event == nil {
			return nil, err
		}
		return event, nil
	}

	// Each call gets its own view of the session state, the deltas are folded
	// back in call order once every tool has returned.
	isolated := make([]*types.InvocationContext, len(funcCalls))
	events := make([]*types.Event, len(funcCalls))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, funcCall := range funcCalls {
		isolated[i] = isolateInvocationContext(ictx)
		eg.Go(func() error {
			event, err := handleFunctionCall(egCtx, isolated[i], llmAgent, funcCall, toolMap)
			if err != nil {
				return err
			}
			events[i] = event
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var responseEvents []*types.Event
	for i, event := range events {
		if isolated[i].EndInvocation {
			ictx.EndInvocation = true
		}
		if event == nil {
			continue
		}
		maps.Copy(ictx.Session.State, event.Actions.StateDelta)
		responseEvents = append(responseEvents, event)
	}
	if len(responseEvents) == 0 {
		return nil, nil
	}

	return mergeParallelFunctionResponseEvents(responseEvents)
}

// isolateInvocationContext returns a copy of ictx with a private copy of the session state.
func isolateInvocationContext(ictx *types.InvocationContext) *types.InvocationContext {
	session := *ictx.Session
	session.State = maps.Clone(ictx.Session.State)
	if session.State == nil {
		session.State = make(map[string]any)
	}

	child := *ictx
	child.Session = &session
	return &child
}

func handleFunctionCall(ctx context.Context, ictx *types.InvocationContext, llmAgent types.LLMAgent, funcCall *genai.FunctionCall, toolMap map[string]types.Tool) (*types.Event, error) {
	t, toolCtx, err := getToolAndContext(ictx, funcCall, toolMap)
	if err != nil {
		return nil, err
	}

	funcArgs := funcCall.Args
	if funcArgs == nil {
		funcArgs = make(map[string]any)
	}

	var funcResponse map[string]any
	for i, callback := range llmAgent.BeforeToolCallbacks() {
		funcResponse, err = callback(t, funcArgs, toolCtx)
		if err != nil {
			return nil, fmt.Errorf("before tool callback %d: %w", i, err)
		}
		if funcResponse != nil {
			break
		}
	}

	if funcResponse == nil {
		funcResponse, err = callTool(ctx, t, funcArgs, toolCtx)
		if err != nil {
			return nil, err
		}
	}

	for i, callback := range llmAgent.AfterToolCallbacks() {
		altered, err := callback(t, funcArgs, toolCtx, funcResponse)
		if err != nil {
			return nil, fmt.Errorf("after tool callback %d: %w", i, err)
		}
		if altered != nil {
			funcResponse = altered
			break
		}
	}

	if t.IsLongRunning() && funcResponse == nil {
		return nil, nil
	}

	return buildResponseEvent(t, funcResponse, toolCtx, ictx), nil
}

func getToolAndContext(ictx *types.InvocationContext, funcCall *genai.FunctionCall, toolMap map[string]types.Tool) (types.Tool, *types.ToolContext, error) {
	t, ok := toolMap[funcCall.Name]
	if !ok || t == nil {
		return nil, nil, fmt.Errorf("function %s is not found in the tools: %w", funcCall.Name, types.ErrToolNotFound)
	}
	toolCtx := types.NewToolContext(ictx).WithFunctionCallID(funcCall.ID)

	return t, toolCtx, nil
}

// callTool calls the tool and normalizes its result to a JSON object.
func callTool(ctx context.Context, t types.Tool, args map[string]any, toolCtx *types.ToolContext) (map[string]any, error) {
	res, err := t.Run(ctx, args, toolCtx)
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", t.Name(), err)
	}
	if res == nil && t.IsLongRunning() {
		return nil, nil
	}

	return tools.NormalizeResult(res)
}

func buildResponseEvent(t types.Tool, funcResult map[string]any, toolCtx *types.ToolContext, ictx *types.InvocationContext) *types.Event {
	if funcResult == nil {
		funcResult = map[string]any{}
	}

	partFuncResponse := genai.NewPartFromFunctionResponse(t.Name(), funcResult)
	partFuncResponse.FunctionResponse.ID = toolCtx.FunctionCallID()

	content := genai.NewContentFromParts([]*genai.Part{partFuncResponse}, genai.RoleUser)

	return types.NewEvent(ictx.InvocationID, ictx.Agent.Name()).
		WithContent(content).
		WithActions(toolCtx.Actions()).
		WithBranch(ictx.Branch)
}

func mergeParallelFunctionResponseEvents(funcRespEvents []*types.Event) (*types.Event, error) {
	switch len(funcRespEvents) {
	case 0:
		return nil, errors.New("no function response events provided")
	case 1:
		return funcRespEvents[0], nil
	}

	var mergedParts []*genai.Part
	mergedActions := types.NewEventActions()
	for _, event := range funcRespEvents {
		if content := event.GetContent(); content != nil {
			mergedParts = append(mergedParts, content.Parts...)
		}
		mergedActions.Merge(event.Actions)
	}

	// Use the first event as the "base" for common attributes
	baseEvent := funcRespEvents[0]
	mergedEvent := types.NewEvent(baseEvent.InvocationID, baseEvent.Author).
		WithBranch(baseEvent.Branch).
		WithContent(genai.NewContentFromParts(mergedParts, genai.RoleUser)).
		WithActions(mergedActions)
	mergedEvent.Timestamp = baseEvent.Timestamp

	return mergedEvent, nil
}
