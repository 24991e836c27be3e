// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"github.com/go-json-experiment/json"
	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/flow/llmflow"
	"github.com/go-a2a/weather-agent-team/model"
	"github.com/go-a2a/weather-agent-team/types"
)

// LLMAgent represents an agent powered by a Large Language Model.
type LLMAgent struct {
	*types.BaseAgent

	baseOpts []types.BaseAgentOption

	// The model to use for the agent.
	//
	// When not set, the agent will inherit the model from its ancestor.
	model types.Model

	// modelName is resolved through the model registry on first use when model is nil.
	modelName string
	modelOpts []model.Option
	modelMu   sync.Mutex

	// Instructions for the LLM model, guiding the agent's behavior.
	instruction any // string | [types.InstructionProvider]

	// Instructions for all the agents in the entire agent tree.
	//
	// globalInstruction ONLY takes effect in root agent.
	globalInstruction any // string | [types.InstructionProvider]

	// Tools available to this agent.
	tools []types.Tool

	// generateContentConfig is the additional content generation configurations.
	//
	// NOTE: tools must be configured via tools, not through this config.
	generateContentConfig *genai.GenerateContentConfig

	// Disallows LLM-controlled transferring to the parent agent.
	disallowTransferToParent bool

	// Disallows LLM-controlled transferring to the peer agents.
	disallowTransferToPeers bool

	// includeContents whether to include contents in the model request.
	//
	// When set to 'none', the model request will not include any contents, such as
	// user messages, tool results, etc.
	includeContents types.IncludeContents

	// The output schema when agent replies.
	//
	// NOTE: when this is set, agent can ONLY reply and CANNOT use any tools, such as
	// function tools, agent transfer, etc.
	outputSchema *genai.Schema

	// The key in session state to store the output of the agent.
	outputKey string

	beforeModelCallbacks []types.BeforeModelCallback
	afterModelCallbacks  []types.AfterModelCallback
	beforeToolCallbacks  []types.BeforeToolCallback
	afterToolCallbacks   []types.AfterToolCallback
}

var _ types.LLMAgent = (*LLMAgent)(nil)

// LLMAgentOption configures an [LLMAgent].
type LLMAgentOption func(*LLMAgent)

// WithModel sets the model to use.
func WithModel(model types.Model) LLMAgentOption {
	return func(a *LLMAgent) {
		a.model = model
	}
}

// WithModelName sets the model by name, such as "gemini-2.0-flash".
//
// The name is resolved through the model registry with opts the first time
// the agent calls the model.
func WithModelName(name string, opts ...model.Option) LLMAgentOption {
	return func(a *LLMAgent) {
		a.modelName = name
		a.modelOpts = opts
	}
}

// WithDescription sets the description about the agent's capability.
func WithDescription(description string) LLMAgentOption {
	return func(a *LLMAgent) {
		a.baseOpts = append(a.baseOpts, types.WithAgentDescription(description))
	}
}

// WithInstruction sets the instruction for the agent.
//
// A string instruction may reference session state as {key} or {key?}.
func WithInstruction[T string | types.InstructionProvider](instruction T) LLMAgentOption {
	return func(a *LLMAgent) {
		a.instruction = instruction
	}
}

// WithGlobalInstruction sets the global instruction for the agent tree.
func WithGlobalInstruction[T string | types.InstructionProvider](instruction T) LLMAgentOption {
	return func(a *LLMAgent) {
		a.globalInstruction = instruction
	}
}

// WithTools appends tools for the agent.
func WithTools(tools ...types.Tool) LLMAgentOption {
	return func(a *LLMAgent) {
		a.tools = append(a.tools, tools...)
	}
}

// WithSubAgents appends sub-agents the agent can transfer to.
func WithSubAgents(subAgents ...types.Agent) LLMAgentOption {
	return func(a *LLMAgent) {
		a.baseOpts = append(a.baseOpts, types.WithAgentSubAgents(subAgents...))
	}
}

// WithGenerateContentConfig sets the [genai.GenerateContentConfig] for the agent.
func WithGenerateContentConfig(config *genai.GenerateContentConfig) LLMAgentOption {
	return func(a *LLMAgent) {
		a.generateContentConfig = config
	}
}

// WithDisallowTransferToParent prevents transferring control to parent.
func WithDisallowTransferToParent(disallow bool) LLMAgentOption {
	return func(a *LLMAgent) {
		a.disallowTransferToParent = disallow
	}
}

// WithDisallowTransferToPeers prevents transferring control to peers.
func WithDisallowTransferToPeers(disallow bool) LLMAgentOption {
	return func(a *LLMAgent) {
		a.disallowTransferToPeers = disallow
	}
}

// WithIncludeContents sets the [types.IncludeContents] for the agent.
func WithIncludeContents(includeContents types.IncludeContents) LLMAgentOption {
	return func(a *LLMAgent) {
		a.includeContents = includeContents
	}
}

// WithOutputSchema sets the output schema for structured output.
func WithOutputSchema(schema *genai.Schema) LLMAgentOption {
	return func(a *LLMAgent) {
		a.outputSchema = schema
	}
}

// WithOutputKey sets the key where to store model output in state.
func WithOutputKey(key string) LLMAgentOption {
	return func(a *LLMAgent) {
		a.outputKey = key
	}
}

// WithBeforeAgentCallback adds a callback to run before the agent.
func WithBeforeAgentCallback(callback types.AgentCallback) LLMAgentOption {
	return func(a *LLMAgent) {
		a.baseOpts = append(a.baseOpts, types.WithBeforeAgentCallbacks(callback))
	}
}

// WithAfterAgentCallback adds a callback to run after the agent.
func WithAfterAgentCallback(callback types.AgentCallback) LLMAgentOption {
	return func(a *LLMAgent) {
		a.baseOpts = append(a.baseOpts, types.WithAfterAgentCallbacks(callback))
	}
}

// WithBeforeModelCallback adds a callback to run before sending a request to the model.
func WithBeforeModelCallback(callback types.BeforeModelCallback) LLMAgentOption {
	return func(a *LLMAgent) {
		a.beforeModelCallbacks = append(a.beforeModelCallbacks, callback)
	}
}

// WithAfterModelCallback adds a callback to run after receiving a response from the model.
func WithAfterModelCallback(callback types.AfterModelCallback) LLMAgentOption {
	return func(a *LLMAgent) {
		a.afterModelCallbacks = append(a.afterModelCallbacks, callback)
	}
}

// WithBeforeToolCallback adds a callback to run before executing a tool.
func WithBeforeToolCallback(callback types.BeforeToolCallback) LLMAgentOption {
	return func(a *LLMAgent) {
		a.beforeToolCallbacks = append(a.beforeToolCallbacks, callback)
	}
}

// WithAfterToolCallback adds a callback to run after executing a tool.
func WithAfterToolCallback(callback types.AfterToolCallback) LLMAgentOption {
	return func(a *LLMAgent) {
		a.afterToolCallbacks = append(a.afterToolCallbacks, callback)
	}
}

// WithLogger sets the logger of the agent and its flow.
func WithLogger(logger *slog.Logger) LLMAgentOption {
	return func(a *LLMAgent) {
		a.baseOpts = append(a.baseOpts, types.WithAgentLogger(logger))
	}
}

// NewLLMAgent creates a new [LLMAgent] with the given name and options.
func NewLLMAgent(ctx context.Context, name string, opts ...LLMAgentOption) (*LLMAgent, error) {
	a := &LLMAgent{
		includeContents: types.IncludeContentsDefault,
	}
	for _, opt := range opts {
		opt(a)
	}

	base, err := types.NewBaseAgent(a, name, a.baseOpts...)
	if err != nil {
		return nil, fmt.Errorf("invalid agent configuration: %w", err)
	}
	a.BaseAgent = base
	a.baseOpts = nil

	// Validate configuration
	if err := a.validateConfig(ctx); err != nil {
		return nil, fmt.Errorf("invalid agent configuration: %w", err)
	}

	return a, nil
}

// CanonicalModel implements [types.LLMAgent].
func (a *LLMAgent) CanonicalModel(ctx context.Context) (types.Model, error) {
	a.modelMu.Lock()
	defer a.modelMu.Unlock()

	if a.model != nil {
		return a.model, nil
	}
	if a.modelName != "" {
		llm, err := model.NewLLM(ctx, a.modelName, a.modelOpts...)
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", a.Name(), err)
		}
		a.model = llm
		return llm, nil
	}

	for ancestor := a.ParentAgent(); ancestor != nil; ancestor = ancestor.ParentAgent() {
		if llmAgent, ok := ancestor.(types.LLMAgent); ok {
			return llmAgent.CanonicalModel(ctx)
		}
	}

	return nil, fmt.Errorf("no model found for agent %s: %w", a.Name(), types.ErrModelNotFound)
}

// CanonicalInstruction implements [types.LLMAgent].
func (a *LLMAgent) CanonicalInstruction(rctx *types.ReadOnlyContext) (string, bool, error) {
	return resolveInstruction(a.instruction, rctx)
}

// CanonicalGlobalInstruction implements [types.LLMAgent].
func (a *LLMAgent) CanonicalGlobalInstruction(rctx *types.ReadOnlyContext) (string, bool, error) {
	return resolveInstruction(a.globalInstruction, rctx)
}

func resolveInstruction(instruction any, rctx *types.ReadOnlyContext) (string, bool, error) {
	switch inst := instruction.(type) {
	case string:
		return inst, false, nil
	case types.InstructionProvider:
		si, err := inst(rctx)
		return si, true, err
	default:
		return "", false, nil
	}
}

// CanonicalTools implements [types.LLMAgent].
func (a *LLMAgent) CanonicalTools(*types.ReadOnlyContext) []types.Tool {
	return a.tools
}

// GenerateContentConfig implements [types.LLMAgent].
func (a *LLMAgent) GenerateContentConfig() *genai.GenerateContentConfig {
	return a.generateContentConfig
}

// DisallowTransferToParent implements [types.LLMAgent].
func (a *LLMAgent) DisallowTransferToParent() bool {
	return a.disallowTransferToParent
}

// DisallowTransferToPeers implements [types.LLMAgent].
func (a *LLMAgent) DisallowTransferToPeers() bool {
	return a.disallowTransferToPeers
}

// IncludeContents implements [types.LLMAgent].
func (a *LLMAgent) IncludeContents() types.IncludeContents {
	return a.includeContents
}

// OutputSchema implements [types.LLMAgent].
func (a *LLMAgent) OutputSchema() *genai.Schema {
	return a.outputSchema
}

// OutputKey returns the key in session state to store the output of the agent.
func (a *LLMAgent) OutputKey() string {
	return a.outputKey
}

// BeforeModelCallbacks implements [types.LLMAgent].
func (a *LLMAgent) BeforeModelCallbacks() []types.BeforeModelCallback {
	return a.beforeModelCallbacks
}

// AfterModelCallbacks implements [types.LLMAgent].
func (a *LLMAgent) AfterModelCallbacks() []types.AfterModelCallback {
	return a.afterModelCallbacks
}

// BeforeToolCallbacks implements [types.LLMAgent].
func (a *LLMAgent) BeforeToolCallbacks() []types.BeforeToolCallback {
	return a.beforeToolCallbacks
}

// AfterToolCallbacks implements [types.LLMAgent].
func (a *LLMAgent) AfterToolCallbacks() []types.AfterToolCallback {
	return a.afterToolCallbacks
}

// Run implements [types.Agent].
func (a *LLMAgent) Run(ctx context.Context, parentContext *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return a.RunWith(ctx, parentContext, a.execute)
}

func (a *LLMAgent) execute(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		for event, err := range a.llmFlow().Run(ctx, ictx) {
			if err != nil {
				yield(nil, err)
				return
			}
			if err := a.saveOutputToState(event); err != nil {
				yield(nil, err)
				return
			}
			if !yield(event, nil) {
				return
			}
		}
	}
}

func (a *LLMAgent) llmFlow() llmflow.Flow {
	if a.disallowTransferToParent && a.disallowTransferToPeers && len(a.SubAgents()) == 0 {
		flow := llmflow.NewSingleFlow()
		flow.WithLogger(a.Logger())
		return flow
	}

	flow := llmflow.NewAutoFlow()
	flow.WithLogger(a.Logger())
	return flow
}

// saveOutputToState saves the model output to state if needed.
func (a *LLMAgent) saveOutputToState(event *types.Event) error {
	if a.outputKey == "" || event.Author != a.Name() || !event.IsFinalResponse() {
		return nil
	}
	content := event.GetContent()
	if content == nil || len(content.Parts) == 0 {
		return nil
	}

	text := event.Text()

	var result any = text
	if a.outputSchema != nil {
		var structured map[string]any
		if err := json.Unmarshal([]byte(text), &structured); err != nil {
			return fmt.Errorf("agent %s: decode structured output: %w", a.Name(), err)
		}
		result = structured
	}

	if event.Actions == nil {
		event.Actions = types.NewEventActions()
	}
	if event.Actions.StateDelta == nil {
		event.Actions.StateDelta = make(map[string]any)
	}
	event.Actions.StateDelta[a.outputKey] = result

	return nil
}

// validateConfig validates the agent configuration.
func (a *LLMAgent) validateConfig(ctx context.Context) error {
	if a.outputSchema == nil {
		return nil
	}

	// Output schema cannot coexist with agent transfer configurations
	if !a.disallowTransferToParent || !a.disallowTransferToPeers {
		a.Logger().WarnContext(ctx, "invalid config: output schema cannot co-exist with agent transfer configurations, disabling transfer",
			slog.Bool("disallowTransferToParent", a.disallowTransferToParent),
			slog.Bool("disallowTransferToPeers", a.disallowTransferToPeers),
		)
		a.disallowTransferToParent = true
		a.disallowTransferToPeers = true
	}

	// Output schema requires no tools
	if len(a.tools) > 0 {
		return errors.New("if output schema is set, tools must be empty")
	}

	// Output schema requires no sub agents
	if len(a.SubAgents()) > 0 {
		return errors.New("if output schema is set, sub-agents must be empty to disable agent transfer")
	}

	return nil
}
