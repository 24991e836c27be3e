// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"
)

type testRequest struct {
	Query    string `json:"query" description:"Search query"`
	Limit    int    `json:"limit,omitempty"`
	Priority *int   `json:"priority"`
	Hidden   string `json:"-"`
	internal string
}

type testConfig struct {
	Enabled bool
	Value   string `json:",omitzero"`
}

func testSearch(ctx context.Context, req testRequest) ([]string, error) {
	return nil, nil
}

type searcher struct{}

func (searcher) Search(ctx context.Context, req testRequest) ([]string, error) {
	return nil, nil
}

func TestBuildFunctionDeclaration(t *testing.T) {
	tests := []struct {
		name        string
		description string
		argsType    reflect.Type
		want        *genai.FunctionDeclaration
		wantErr     bool
	}{
		{
			name:        "search",
			description: "Search for items",
			argsType:    reflect.TypeFor[testRequest](),
			want: &genai.FunctionDeclaration{
				Name:        "search",
				Description: "Search for items",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query":    {Type: genai.TypeString, Description: "Search query"},
						"limit":    {Type: genai.TypeInteger},
						"priority": {Type: genai.TypeInteger},
					},
					PropertyOrdering: []string{"query", "limit", "priority"},
					Required:         []string{"query"},
				},
			},
		},
		{
			name:     "pointer_args",
			argsType: reflect.TypeFor[*testConfig](),
			want: &genai.FunctionDeclaration{
				Name: "pointer_args",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"Enabled": {Type: genai.TypeBoolean},
						"Value":   {Type: genai.TypeString},
					},
					PropertyOrdering: []string{"Enabled", "Value"},
					Required:         []string{"Enabled"},
				},
			},
		},
		{
			name:     "no_args",
			argsType: reflect.TypeFor[struct{}](),
			want: &genai.FunctionDeclaration{
				Name: "no_args",
			},
		},
		{
			name:     "non_struct",
			argsType: reflect.TypeFor[string](),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildFunctionDeclaration(tt.name, tt.description, tt.argsType)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildFunctionDeclaration() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("buildFunctionDeclaration() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTypeToSchema(t *testing.T) {
	tests := []struct {
		name    string
		typ     reflect.Type
		want    *genai.Schema
		wantErr bool
	}{
		{
			name: "string",
			typ:  reflect.TypeFor[string](),
			want: &genai.Schema{Type: genai.TypeString},
		},
		{
			name: "uint",
			typ:  reflect.TypeFor[uint16](),
			want: &genai.Schema{Type: genai.TypeInteger},
		},
		{
			name: "float",
			typ:  reflect.TypeFor[float32](),
			want: &genai.Schema{Type: genai.TypeNumber},
		},
		{
			name: "pointer to bool",
			typ:  reflect.TypeFor[*bool](),
			want: &genai.Schema{Type: genai.TypeBoolean},
		},
		{
			name: "slice",
			typ:  reflect.TypeFor[[]string](),
			want: &genai.Schema{
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		{
			name: "map",
			typ:  reflect.TypeFor[map[string]int](),
			want: &genai.Schema{Type: genai.TypeObject},
		},
		{
			name: "time",
			typ:  reflect.TypeFor[time.Time](),
			want: &genai.Schema{Type: genai.TypeString, Format: "date-time"},
		},
		{
			name: "any",
			typ:  reflect.TypeFor[any](),
			want: &genai.Schema{},
		},
		{
			name:    "int keyed map",
			typ:     reflect.TypeFor[map[int]string](),
			wantErr: true,
		},
		{
			name:    "channel",
			typ:     reflect.TypeFor[chan int](),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := typeToSchema(tt.typ)
			if (err != nil) != tt.wantErr {
				t.Fatalf("typeToSchema() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("typeToSchema() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFunctionName(t *testing.T) {
	tests := []struct {
		name string
		fn   any
		want string
	}{
		{
			name: "top level function",
			fn:   testSearch,
			want: "testSearch",
		},
		{
			name: "method value",
			fn:   searcher{}.Search,
			want: "Search",
		},
		{
			name: "nil",
			fn:   nil,
			want: "function",
		},
		{
			name: "not a function",
			fn:   "search",
			want: "function",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := functionName(tt.fn); got != tt.want {
				t.Errorf("functionName() = %q, want %q", got, tt.want)
			}
		})
	}
}
