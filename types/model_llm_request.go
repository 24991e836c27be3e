// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"strings"

	"google.golang.org/genai"
)

// LLMRequest represents a LLM request class that allows passing in tools, output schema and system.
type LLMRequest struct {
	// Model is the model name.
	Model string

	// Contents are the contents to send to the model.
	Contents []*genai.Content

	// Config is the additional config for the generate content request.
	//
	// Tools in Config should be added through [LLMRequest.AppendTools].
	Config *genai.GenerateContentConfig

	// ToolMap indexes the tools declared to the model by name.
	ToolMap map[string]Tool
}

// NewLLMRequest creates a new [LLMRequest].
func NewLLMRequest(contents []*genai.Content) *LLMRequest {
	return &LLMRequest{
		Contents: contents,
		Config:   &genai.GenerateContentConfig{},
		ToolMap:  make(map[string]Tool),
	}
}

// AppendInstructions appends instructions to the system instruction.
//
// Instructions are separated from what is already there by a blank line.
func (r *LLMRequest) AppendInstructions(instructions ...string) {
	if len(instructions) == 0 {
		return
	}
	if r.Config == nil {
		r.Config = &genai.GenerateContentConfig{}
	}

	text := strings.Join(instructions, "\n\n")
	si := r.Config.SystemInstruction
	if si == nil || len(si.Parts) == 0 {
		r.Config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(text)},
		}
		return
	}

	last := si.Parts[len(si.Parts)-1]
	if last.Text == "" {
		last.Text = text
		return
	}
	last.Text += "\n\n" + text
}

// SystemInstructionText returns the system instruction as plain text.
func (r *LLMRequest) SystemInstructionText() string {
	if r.Config == nil || r.Config.SystemInstruction == nil {
		return ""
	}

	texts := make([]string, 0, len(r.Config.SystemInstruction.Parts))
	for _, part := range r.Config.SystemInstruction.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	return strings.Join(texts, "\n\n")
}

// AppendTools adds the declarations of tools to the request.
//
// All declarations share one [genai.Tool] entry.
func (r *LLMRequest) AppendTools(tools ...Tool) *LLMRequest {
	if len(tools) == 0 {
		return r
	}
	if r.Config == nil {
		r.Config = &genai.GenerateContentConfig{}
	}
	if r.ToolMap == nil {
		r.ToolMap = make(map[string]Tool)
	}

	var declarations []*genai.FunctionDeclaration
	for _, tool := range tools {
		decl := tool.GetDeclaration()
		if decl == nil {
			continue
		}
		declarations = append(declarations, decl)
		r.ToolMap[tool.Name()] = tool
	}
	if len(declarations) == 0 {
		return r
	}

	for _, t := range r.Config.Tools {
		if t != nil && t.FunctionDeclarations != nil {
			t.FunctionDeclarations = append(t.FunctionDeclarations, declarations...)
			return r
		}
	}
	r.Config.Tools = append(r.Config.Tools, &genai.Tool{
		FunctionDeclarations: declarations,
	})

	return r
}

// FunctionDeclarations returns every function declaration in the request config.
func (r *LLMRequest) FunctionDeclarations() []*genai.FunctionDeclaration {
	if r.Config == nil {
		return nil
	}

	var decls []*genai.FunctionDeclaration
	for _, t := range r.Config.Tools {
		if t != nil {
			decls = append(decls, t.FunctionDeclarations...)
		}
	}
	return decls
}

// SetOutputSchema configures the expected response format.
func (r *LLMRequest) SetOutputSchema(schema *genai.Schema) *LLMRequest {
	if r.Config == nil {
		r.Config = &genai.GenerateContentConfig{}
	}

	r.Config.ResponseSchema = schema
	r.Config.ResponseMIMEType = "application/json"

	return r
}
