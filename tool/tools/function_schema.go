// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"fmt"
	"iter"
	"reflect"
	"runtime"
	"strings"
	"time"

	"google.golang.org/genai"
)

var timeType = reflect.TypeFor[time.Time]()

// buildFunctionDeclaration generates a [genai.FunctionDeclaration] for a tool
// whose arguments are decoded into argsType.
//
// argsType must be a struct, or a pointer to one. Each exported field becomes
// a parameter:
//
//	type getWeatherArgs struct {
//		City string `json:"city" description:"The name of the city."`
//		Unit string `json:"unit,omitempty"`
//	}
//
// Fields are required unless they are pointers or tagged omitempty or omitzero.
func buildFunctionDeclaration(name, description string, argsType reflect.Type) (*genai.FunctionDeclaration, error) {
	for argsType.Kind() == reflect.Pointer {
		argsType = argsType.Elem()
	}
	if argsType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("function %s: arguments must be a struct, got %v", name, argsType)
	}

	params, err := structToSchema(argsType)
	if err != nil {
		return nil, fmt.Errorf("function %s: build parameters schema: %w", name, err)
	}

	decl := &genai.FunctionDeclaration{
		Name:        name,
		Description: description,
	}
	// Gemini rejects an object schema without properties.
	if len(params.Properties) > 0 {
		decl.Parameters = params
	}

	return decl, nil
}

// functionName extracts the function name of fn from reflection.
func functionName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.Pointer() == 0 {
		return "function"
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "function"
	}
	name := strings.TrimSuffix(f.Name(), "-fm")
	// Remove closure suffixes like .func1 before trimming the package path.
	if idx := strings.Index(name, ".func"); idx >= 0 {
		name = name[:idx]
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" {
		return "function"
	}

	return name
}

// typeToSchema converts a Go reflect.Type to a genai.Schema.
func typeToSchema(t reflect.Type) (*genai.Schema, error) {
	if t.Kind() == reflect.Pointer {
		return typeToSchema(t.Elem())
	}
	if t == timeType {
		return &genai.Schema{Type: genai.TypeString, Format: "date-time"}, nil
	}

	switch t.Kind() {
	case reflect.String:
		return &genai.Schema{Type: genai.TypeString}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &genai.Schema{Type: genai.TypeInteger}, nil

	case reflect.Float32, reflect.Float64:
		return &genai.Schema{Type: genai.TypeNumber}, nil

	case reflect.Bool:
		return &genai.Schema{Type: genai.TypeBoolean}, nil

	case reflect.Slice, reflect.Array:
		items, err := typeToSchema(t.Elem())
		if err != nil {
			return nil, err
		}
		return &genai.Schema{
			Type:  genai.TypeArray,
			Items: items,
		}, nil

	case reflect.Map:
		// Only string keys are representable as JSON objects.
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map keys must be strings, got %v", t.Key().Kind())
		}
		return &genai.Schema{Type: genai.TypeObject}, nil

	case reflect.Struct:
		return structToSchema(t)

	case reflect.Interface:
		return &genai.Schema{}, nil

	default:
		return nil, fmt.Errorf("unsupported type: %v", t.Kind())
	}
}

// structToSchema converts a struct type to a genai.Schema.
func structToSchema(t reflect.Type) (*genai.Schema, error) {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema),
	}

	for field := range fieldsOf(t) {
		fieldName, opts := parseJSONTag(field)
		if fieldName == "-" {
			continue
		}

		fieldSchema, err := typeToSchema(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		if desc := field.Tag.Get("description"); desc != "" {
			fieldSchema.Description = desc
		}

		schema.Properties[fieldName] = fieldSchema
		schema.PropertyOrdering = append(schema.PropertyOrdering, fieldName)
		if isRequiredField(field, opts) {
			schema.Required = append(schema.Required, fieldName)
		}
	}

	return schema, nil
}

// fieldsOf yields the exported fields of t in declaration order.
func fieldsOf(t reflect.Type) iter.Seq[reflect.StructField] {
	return func(yield func(reflect.StructField) bool) {
		for i := range t.NumField() {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			if !yield(field) {
				return
			}
		}
	}
}

// parseJSONTag returns the JSON name of field and its tag options.
//
// Without a name in the tag the Go field name is used, as the JSON decoder does.
func parseJSONTag(field reflect.StructField) (string, string) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "-", ""
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}

	return name, opts
}

// isRequiredField determines if a struct field should be required in the schema.
func isRequiredField(field reflect.StructField, opts string) bool {
	if field.Type.Kind() == reflect.Pointer {
		return false
	}
	for opt := range strings.SplitSeq(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			return false
		}
	}

	return true
}
