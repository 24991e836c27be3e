// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"fmt"
	"iter"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-a2a/weather-agent-team/types"
)

// InstructionsLLMRequestProcessor handles instructions and global instructions for LLM flow.
type InstructionsLLMRequestProcessor struct{}

var _ LLMRequestProcessor = (*InstructionsLLMRequestProcessor)(nil)

// Run implements [LLMRequestProcessor].
func (p *InstructionsLLMRequestProcessor) Run(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		llmAgent, ok := ictx.Agent.(types.LLMAgent)
		if !ok {
			return
		}
		rctx := types.NewReadOnlyContext(ictx)

		// Appends global instructions if set.
		if rootAgent, ok := llmAgent.RootAgent().(types.LLMAgent); ok {
			si, fromProvider, err := rootAgent.CanonicalGlobalInstruction(rctx)
			if err != nil {
				yield(nil, fmt.Errorf("global instruction: %w", err))
				return
			}
			if si != "" {
				if !fromProvider {
					if si, err = InjectSessionState(si, ictx.Session.State); err != nil {
						yield(nil, err)
						return
					}
				}
				request.AppendInstructions(si)
			}
		}

		// Appends agent instructions if set.
		si, fromProvider, err := llmAgent.CanonicalInstruction(rctx)
		if err != nil {
			yield(nil, fmt.Errorf("instruction: %w", err))
			return
		}
		if si == "" {
			return
		}
		if !fromProvider {
			if si, err = InjectSessionState(si, ictx.Session.State); err != nil {
				yield(nil, err)
				return
			}
		}
		request.AppendInstructions(si)
	}
}

var stateTemplateRe = regexp.MustCompile(`{+[^{}]*}+`)

// InjectSessionState populates {key} placeholders in template with values from state.
//
// A trailing "?" marks the key optional, so {key?} renders as an empty string
// when the key is missing. Placeholders that are not valid state names are
// left as is.
func InjectSessionState(template string, state map[string]any) (string, error) {
	var (
		sb      strings.Builder
		lastEnd int
	)
	for _, loc := range stateTemplateRe.FindAllStringIndex(template, -1) {
		sb.WriteString(template[lastEnd:loc[0]])
		match := template[loc[0]:loc[1]]
		replacement, err := replaceStateMatch(match, state)
		if err != nil {
			return "", err
		}
		sb.WriteString(replacement)
		lastEnd = loc[1]
	}
	sb.WriteString(template[lastEnd:])

	return sb.String(), nil
}

func replaceStateMatch(match string, state map[string]any) (string, error) {
	varName := strings.TrimSpace(strings.Trim(match, "{}"))
	optional := false
	if name, ok := strings.CutSuffix(varName, "?"); ok {
		varName = name
		optional = true
	}

	if !isValidStateName(varName) {
		return match, nil
	}
	if val, ok := state[varName]; ok {
		return fmt.Sprint(val), nil
	}
	if optional {
		return "", nil
	}

	return "", fmt.Errorf("context variable not found: %s", varName)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// isValidStateName checks if the variable name is a valid state name.
//
// Valid state is either:
//   - Valid identifier
//   - <Valid prefix>:<Valid identifier>
//
// All the others will just return as it is.
func isValidStateName(varName string) bool {
	prefix, name, found := strings.Cut(varName, ":")
	if !found {
		return isIdentifier(varName)
	}

	switch prefix + ":" {
	case types.AppPrefix, types.UserPrefix, types.TempPrefix:
		return isIdentifier(name)
	}
	return false
}
