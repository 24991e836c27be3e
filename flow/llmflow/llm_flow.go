// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/go-a2a/weather-agent-team/types"
)

// Flow runs an agent's LLM loop for one invocation.
type Flow interface {
	Run(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error]
}

// LLMRequestProcessor amends the [types.LLMRequest] before the model is called.
//
// Processors may yield events, which are emitted before the model call.
type LLMRequestProcessor interface {
	Run(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error]
}

// LLMFlow represents a base flow that calls the LLM in a loop until a final response is generated.
//
// This flow ends when it transfer to another agent.
type LLMFlow struct {
	RequestProcessors []LLMRequestProcessor
	Logger            *slog.Logger
}

var _ Flow = (*LLMFlow)(nil)

// NewLLMFlow creates a new [LLMFlow] without processors.
func NewLLMFlow() *LLMFlow {
	return &LLMFlow{
		Logger: slog.Default().With("flow", "LLMFlow"),
	}
}

// WithLogger sets the logger for a flow.
func (f *LLMFlow) WithLogger(logger *slog.Logger) *LLMFlow {
	f.Logger = logger.With("flow", "LLMFlow")
	return f
}

// WithRequestProcessors adds request processors to the [LLMFlow].
func (f *LLMFlow) WithRequestProcessors(processors ...LLMRequestProcessor) *LLMFlow {
	f.RequestProcessors = append(f.RequestProcessors, processors...)
	return f
}

// Run implements [Flow].
//
// Each step calls the LLM once. Steps repeat until the last event is a final
// response, the invocation ends, or an error occurs.
func (f *LLMFlow) Run(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		for {
			var lastEvent *types.Event
			for event, err := range f.runOneStep(ctx, ictx) {
				if err != nil {
					yield(nil, err)
					return
				}
				lastEvent = event
				if !yield(event, nil) {
					return
				}
			}

			switch {
			case lastEvent == nil, lastEvent.IsFinalResponse(), ictx.EndInvocation:
				return
			case lastEvent.IsPartial():
				yield(nil, errors.New("last event shouldn't be partial"))
				return
			}
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

// runOneStep one step means one LLM call.
func (f *LLMFlow) runOneStep(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		request := types.NewLLMRequest(nil)

		// Preprocess before calling the LLM.
		for event, err := range f.preprocess(ctx, ictx, request) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(event, nil) {
				return
			}
		}
		if ictx.EndInvocation {
			return
		}

		// Calls the LLM.
		modelResponseEvent := types.NewEvent(ictx.InvocationID, ictx.Agent.Name()).WithBranch(ictx.Branch)
		for response, err := range f.callLLM(ctx, ictx, request, modelResponseEvent) {
			if err != nil {
				yield(nil, err)
				return
			}

			// Postprocess after calling the LLM.
			for event, err := range f.postprocess(ctx, ictx, request, response, modelResponseEvent) {
				if err != nil {
					yield(nil, err)
					return
				}
				// Update the mutable event id to avoid conflict
				modelResponseEvent.ID = types.NewEventID()
				if !yield(event, nil) {
					return
				}
			}
		}
	}
}

func (f *LLMFlow) preprocess(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		llmAgent, ok := ictx.Agent.(types.LLMAgent)
		if !ok {
			yield(nil, fmt.Errorf("agent %s is not an LLM agent", ictx.Agent.Name()))
			return
		}

		// Runs processors.
		for _, processor := range f.RequestProcessors {
			for event, err := range processor.Run(ctx, ictx, request) {
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(event, nil) {
					return
				}
			}
		}

		// Run processors for tools.
		for _, tool := range llmAgent.CanonicalTools(types.NewReadOnlyContext(ictx)) {
			toolCtx := types.NewToolContext(ictx)
			if err := tool.ProcessLLMRequest(ctx, toolCtx, request); err != nil {
				yield(nil, fmt.Errorf("tool %s: process llm request: %w", tool.Name(), err))
				return
			}
		}
	}
}

// postprocess after calling the LLM.
func (f *LLMFlow) postprocess(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest, response *types.LLMResponse, modelResponseEvent *types.Event) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		// Skip the model response event if there is no content and no error code.
		if response.Content == nil && response.ErrorCode == "" && !response.Interrupted {
			return
		}

		// Builds the event.
		event := finalizeModelResponseEvent(request, response, modelResponseEvent)
		if !yield(event, nil) {
			return
		}

		// Handles function calls.
		if len(event.GetFunctionCalls()) == 0 {
			return
		}
		funcResponseEvent, err := HandleFunctionCalls(ctx, ictx, event, request.ToolMap)
		if err != nil {
			yield(nil, err)
			return
		}
		if funcResponseEvent == nil {
			return
		}
		if !yield(funcResponseEvent, nil) {
			return
		}

		transferToAgent := funcResponseEvent.Actions.TransferToAgent
		if transferToAgent == "" {
			return
		}
		agentToRun, err := getAgentToRun(ictx, transferToAgent)
		if err != nil {
			yield(nil, err)
			return
		}
		f.Logger.DebugContext(ctx, "transferring to agent",
			slog.String("from", ictx.Agent.Name()),
			slog.String("to", agentToRun.Name()),
		)
		for event, err := range agentToRun.Run(ctx, ictx) {
			if !yield(event, err) || err != nil {
				return
			}
		}
	}
}

func getAgentToRun(ictx *types.InvocationContext, agentName string) (types.Agent, error) {
	agentToRun := ictx.Agent.RootAgent().FindAgent(agentName)
	if agentToRun == nil {
		return nil, fmt.Errorf("agent %s not found in the agent tree: %w", agentName, types.ErrAgentNotFound)
	}
	return agentToRun, nil
}

func (f *LLMFlow) callLLM(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest, modelResponseEvent *types.Event) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		llmAgent := ictx.Agent.(types.LLMAgent)
		cctx := types.NewCallbackContextWithActions(ictx, modelResponseEvent.Actions)

		// Runs before_model_callback if it exists.
		response, err := handleBeforeModelCallback(cctx, llmAgent, request)
		if err != nil {
			yield(nil, err)
			return
		}
		if response != nil {
			yield(response, nil)
			return
		}

		// Check if we can make this llm call or not. If the current call pushes
		// the counter beyond the max set value, then the execution is stopped
		// right here.
		if err := ictx.IncrementLLMCallCount(); err != nil {
			yield(nil, err)
			return
		}

		llm, err := llmAgent.CanonicalModel(ctx)
		if err != nil {
			yield(nil, err)
			return
		}
		f.Logger.DebugContext(ctx, "calling llm",
			slog.String("agent", llmAgent.Name()),
			slog.String("model", request.Model),
			slog.Int("contents", len(request.Contents)),
		)

		if ictx.RunConfig != nil && ictx.RunConfig.StreamingMode == types.StreamingModeSSE {
			for response, err := range llm.StreamGenerateContent(ctx, request) {
				if err != nil {
					yield(nil, err)
					return
				}
				// Runs after_model_callback if it exists.
				response, err = handleAfterModelCallback(cctx, llmAgent, response)
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(response, nil) {
					return
				}
			}
			return
		}

		response, err = llm.GenerateContent(ctx, request)
		if err != nil {
			yield(nil, err)
			return
		}
		// Runs after_model_callback if it exists.
		response, err = handleAfterModelCallback(cctx, llmAgent, response)
		if err != nil {
			yield(nil, err)
			return
		}
		yield(response, nil)
	}
}

// handleBeforeModelCallback runs the before model callbacks until one returns a response.
func handleBeforeModelCallback(cctx *types.CallbackContext, llmAgent types.LLMAgent, request *types.LLMRequest) (*types.LLMResponse, error) {
	for i, callback := range llmAgent.BeforeModelCallbacks() {
		response, err := callback(cctx, request)
		if err != nil {
			return nil, fmt.Errorf("before model callback %d: %w", i, err)
		}
		if response != nil {
			return response, nil
		}
	}
	return nil, nil
}

// handleAfterModelCallback runs the after model callbacks until one replaces the response.
func handleAfterModelCallback(cctx *types.CallbackContext, llmAgent types.LLMAgent, response *types.LLMResponse) (*types.LLMResponse, error) {
	for i, callback := range llmAgent.AfterModelCallbacks() {
		altered, err := callback(cctx, response)
		if err != nil {
			return nil, fmt.Errorf("after model callback %d: %w", i, err)
		}
		if altered != nil {
			return altered, nil
		}
	}
	return response, nil
}

// finalizeModelResponseEvent builds the event for response from the base event.
//
// Function calls get client IDs, and long-running calls are recorded.
func finalizeModelResponseEvent(request *types.LLMRequest, response *types.LLMResponse, modelResponseEvent *types.Event) *types.Event {
	event := &types.Event{
		LLMResponse:  response,
		InvocationID: modelResponseEvent.InvocationID,
		Author:       modelResponseEvent.Author,
		Actions:      modelResponseEvent.Actions,
		Branch:       modelResponseEvent.Branch,
		ID:           modelResponseEvent.ID,
		Timestamp:    modelResponseEvent.Timestamp,
	}

	if funcCalls := event.GetFunctionCalls(); len(funcCalls) > 0 {
		PopulateClientFunctionCallID(event)
		event.WithLongRunningToolIDs(GetLongRunningFunctionCalls(funcCalls, request.ToolMap)...)
	}

	return event
}
