// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/go-a2a/weather-agent-team/types"
)

// init registers the built-in model types.
func init() {
	RegisterLLMType(
		[]string{
			`gemini-.*`,
			`projects\/.*\/locations\/.*\/endpoints\/.*`,
			`projects\/.*\/locations\/.*\/publishers\/google\/models\/gemini-.*`,
		},
		func(ctx context.Context, modelName string, opts ...Option) (types.Model, error) {
			return NewGemini(ctx, modelName, opts...)
		},
	)

	RegisterLLMType(
		[]string{
			`claude-.*`,
		},
		func(ctx context.Context, modelName string, opts ...Option) (types.Model, error) {
			return NewClaude(ctx, modelName, opts...)
		},
	)

	RegisterLLMType(
		[]string{
			`openai\/.*`,
			`gpt-.*`,
			`o[134].*`,
		},
		func(ctx context.Context, modelName string, opts ...Option) (types.Model, error) {
			return NewOpenAI(ctx, modelName, opts...)
		},
	)
}

// ModelCreatorFunc is a function type that creates a model instance.
type ModelCreatorFunc func(ctx context.Context, modelName string, opts ...Option) (types.Model, error)

// modelEntry represents a registry entry with a regex pattern and model creator function.
type modelEntry struct {
	pattern *regexp.Regexp
	source  string
	creator ModelCreatorFunc
}

// LLMRegistry resolves model names to implementations by regex patterns.
//
// A pattern must match the whole model name.
type LLMRegistry struct {
	mu         sync.RWMutex
	registry   []modelEntry
	cacheSize  int
	modelCache map[string]ModelCreatorFunc
}

var (
	defaultRegistry *LLMRegistry
	once            sync.Once
)

// GetRegistry returns the singleton registry instance.
func GetRegistry() *LLMRegistry {
	once.Do(func() {
		defaultRegistry = NewLLMRegistry(32)
	})
	return defaultRegistry
}

// NewLLMRegistry creates a new LLM registry with the specified cache size.
func NewLLMRegistry(cacheSize int) *LLMRegistry {
	return &LLMRegistry{
		cacheSize:  cacheSize,
		modelCache: make(map[string]ModelCreatorFunc),
	}
}

// RegisterLLM registers a model pattern with a creator function.
//
// Registering an existing pattern replaces its creator.
func (r *LLMRegistry) RegisterLLM(modelPattern string, creator ModelCreatorFunc) error {
	regex, err := regexp.Compile(`^(?:` + modelPattern + `)$`)
	if err != nil {
		return fmt.Errorf("compile model pattern %q: %w", modelPattern, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.modelCache)
	for i, entry := range r.registry {
		if entry.source == modelPattern {
			r.registry[i].creator = creator
			return nil
		}
	}
	r.registry = append(r.registry, modelEntry{
		pattern: regex,
		source:  modelPattern,
		creator: creator,
	})

	return nil
}

// ResolveLLM finds the model creator for the given model name.
func (r *LLMRegistry) ResolveLLM(modelName string) (ModelCreatorFunc, error) {
	r.mu.RLock()
	if creator, ok := r.modelCache[modelName]; ok {
		r.mu.RUnlock()
		return creator, nil
	}

	var matched ModelCreatorFunc
	for _, entry := range r.registry {
		if entry.pattern.MatchString(modelName) {
			matched = entry.creator
			break
		}
	}
	r.mu.RUnlock()

	if matched == nil {
		return nil, fmt.Errorf("model %s: %w", modelName, types.ErrModelNotFound)
	}

	r.mu.Lock()
	if len(r.modelCache) >= r.cacheSize {
		// Simple eviction strategy - clear cache when full
		clear(r.modelCache)
	}
	r.modelCache[modelName] = matched
	r.mu.Unlock()

	return matched, nil
}

// NewLLM creates a new LLM instance for the given model name.
func (r *LLMRegistry) NewLLM(ctx context.Context, modelName string, opts ...Option) (types.Model, error) {
	creator, err := r.ResolveLLM(modelName)
	if err != nil {
		return nil, err
	}

	return creator(ctx, modelName, opts...)
}

// RegisterLLM is a convenience function to register a model pattern.
func RegisterLLM(modelPattern string, creator ModelCreatorFunc) error {
	return GetRegistry().RegisterLLM(modelPattern, creator)
}

// RegisterLLMType registers multiple patterns for a single model creator.
//
// It panics on an invalid pattern, since patterns are fixed at init time.
func RegisterLLMType(patterns []string, creator ModelCreatorFunc) {
	registry := GetRegistry()
	for _, pattern := range patterns {
		if err := registry.RegisterLLM(pattern, creator); err != nil {
			panic(err)
		}
	}
}

// NewLLM is a convenience function to create a new LLM instance.
func NewLLM(ctx context.Context, modelName string, opts ...Option) (types.Model, error) {
	return GetRegistry().NewLLM(ctx, modelName, opts...)
}
