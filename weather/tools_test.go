// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package weather_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/go-a2a/weather-agent-team/weather"
)

func TestGetWeather(t *testing.T) {
	tests := map[string]struct {
		city      string
		want      map[string]any
		wantTrace string
	}{
		"success: spaces and case are ignored": {
			city: "New York",
			want: map[string]any{
				"status": "success",
				"report": "The weather in New York is sunny with a temperature of 25°C.",
			},
			wantTrace: "--- Tool: get_weather called for city: New York ---\n",
		},
		"success: lower case": {
			city: "london",
			want: map[string]any{
				"status": "success",
				"report": "It's cloudy in London with a temperature of 15°C.",
			},
			wantTrace: "--- Tool: get_weather called for city: london ---\n",
		},
		"error: unknown city": {
			city: "Paris",
			want: map[string]any{
				"status":        "error",
				"error_message": "Sorry, I don't have weather information for 'Paris'.",
			},
			wantTrace: "--- Tool: get_weather called for city: Paris ---\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			tools := &weather.Tools{Out: &out}

			got, err := tools.GetWeather(t.Context(), weather.WeatherArgs{City: tt.city})
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("GetWeather() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantTrace, out.String()); diff != "" {
				t.Errorf("trace mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetTeamWeather(t *testing.T) {
	tests := map[string]struct {
		city string
		want map[string]any
	}{
		"success: title cased": {
			city: "  new york ",
			want: map[string]any{
				"status": "success",
				"report": "The weather in New York is currently sunny with a temperature of 22°C.",
			},
		},
		"success: paris": {
			city: "PARIS",
			want: map[string]any{
				"status": "success",
				"report": "The weather in Paris is currently windy with a temperature of 12°C.",
			},
		},
		"error: unknown city": {
			city: "Berlin",
			want: map[string]any{
				"status":        "error",
				"error_message": "Weather data for 'Berlin' is not available in the database.",
			},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			tools := &weather.Tools{Out: &out}

			got, err := tools.GetTeamWeather(t.Context(), weather.WeatherArgs{City: tt.city})
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("GetTeamWeather() mismatch (-want +got):\n%s", diff)
			}
			if want := "--- Tool: get_weather called with city: " + tt.city + " ---\n"; out.String() != want {
				t.Errorf("trace = %q, want %q", out.String(), want)
			}
		})
	}
}

func TestSayHelloAndGoodbye(t *testing.T) {
	var out bytes.Buffer
	tools := &weather.Tools{Out: &out}

	got, err := tools.SayHello(t.Context(), weather.HelloArgs{Name: "srineesh"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello, srineesh!" {
		t.Errorf("SayHello(srineesh) = %q", got)
	}

	got, err = tools.SayHello(t.Context(), weather.HelloArgs{})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello there!" {
		t.Errorf("SayHello() = %q", got)
	}

	got, err = tools.SayGoodbye(t.Context(), weather.NoArgs{})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Goodbye! Have a great day." {
		t.Errorf("SayGoodbye() = %q", got)
	}

	wantTrace := "--- Tool: say_hello called with name: srineesh ---\n" +
		"--- Tool: say_hello called without a specific name (name_arg_value: None) ---\n" +
		"--- Tool: say_goodbye called ---\n"
	if diff := cmp.Diff(wantTrace, out.String()); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestToolDeclarations(t *testing.T) {
	tools := &weather.Tools{Out: &bytes.Buffer{}}

	weatherTool, err := tools.WeatherTool()
	if err != nil {
		t.Fatal(err)
	}
	decl := weatherTool.GetDeclaration()
	if decl.Name != weather.GetWeatherToolName {
		t.Errorf("weather tool name = %q", decl.Name)
	}
	if decl.Parameters == nil || decl.Parameters.Properties["city"] == nil {
		t.Fatalf("weather tool parameters = %+v, want a city property", decl.Parameters)
	}
	if diff := cmp.Diff([]string{"city"}, decl.Parameters.Required); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
	if got := decl.Parameters.Properties["city"].Type; got != genai.TypeString {
		t.Errorf("city type = %v, want string", got)
	}

	helloTool, err := tools.HelloTool()
	if err != nil {
		t.Fatal(err)
	}
	if decl := helloTool.GetDeclaration(); len(decl.Parameters.Required) != 0 {
		t.Errorf("say_hello required = %v, want none", decl.Parameters.Required)
	}

	goodbyeTool, err := tools.GoodbyeTool()
	if err != nil {
		t.Fatal(err)
	}
	if decl := goodbyeTool.GetDeclaration(); decl.Name != weather.SayGoodbyeToolName || decl.Parameters != nil {
		t.Errorf("say_goodbye declaration = %+v", decl)
	}
}

func TestToolRunNormalizesResult(t *testing.T) {
	tools := &weather.Tools{Out: &bytes.Buffer{}}

	helloTool, err := tools.HelloTool()
	if err != nil {
		t.Fatal(err)
	}
	got, err := helloTool.Run(t.Context(), map[string]any{"name": "Ann"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"result": "Hello, Ann!"}, got); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}
}
