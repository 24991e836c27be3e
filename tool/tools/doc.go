// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package tools provides ready-to-use tool implementations.
//
// # Function Tools
//
// [NewFunctionTool] wraps a typed Go function. The parameters schema sent to
// the model is generated from the fields of the argument struct:
//
//	type GetWeatherArgs struct {
//		City string `json:"city" description:"The name of the city (e.g., \"New York\", \"London\", \"Tokyo\")."`
//	}
//
//	func GetWeather(ctx context.Context, args GetWeatherArgs) (WeatherReport, error) {
//		// lookup
//	}
//
//	getWeather, err := tools.NewFunctionTool(GetWeather,
//		tools.WithName("get_weather"),
//		tools.WithDescription("Retrieves the current weather report for a specified city."),
//	)
//
// A field is required unless it is a pointer or tagged omitempty. The result
// is sent to the model as a JSON object; any other JSON value is wrapped as
// {"result": value}.
//
// Functions that need session state take a [*types.ToolContext] and are
// wrapped with [NewContextFunctionTool].
//
// # Agent Transfer
//
// [NewTransferToAgentTool] returns the transfer_to_agent tool, which the LLM
// flow declares automatically for agents that can delegate.
package tools
