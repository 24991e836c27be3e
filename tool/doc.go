// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package tool provides the base type embedded by every tool implementation.
//
// A tool embeds [*Tool] for its name, description and long running flag, and
// implements GetDeclaration and Run itself:
//
//	type CityTimeTool struct {
//		*tool.Tool
//	}
//
//	func (t *CityTimeTool) GetDeclaration() *genai.FunctionDeclaration {
//		return &genai.FunctionDeclaration{
//			Name:        t.Name(),
//			Description: t.Description(),
//			Parameters: &genai.Schema{
//				Type: genai.TypeObject,
//				Properties: map[string]*genai.Schema{
//					"city": {Type: genai.TypeString},
//				},
//				Required: []string{"city"},
//			},
//		}
//	}
//
//	func (t *CityTimeTool) ProcessLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
//		return tool.Declare(t, request)
//	}
//
// Most tools are plain Go functions; see the tools package for
// [tools.NewFunctionTool], which derives the declaration by reflection.
package tool
