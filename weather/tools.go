// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package weather

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/go-a2a/weather-agent-team/tool/tools"
	"github.com/go-a2a/weather-agent-team/types"
)

// Tool names the model calls the weather tools by.
const (
	GetWeatherToolName = "get_weather"
	SayHelloToolName   = "say_hello"
	SayGoodbyeToolName = "say_goodbye"
)

// Result status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WeatherArgs are the arguments of the get_weather tool.
type WeatherArgs struct {
	City string `json:"city" description:"The name of the city (e.g., \"New York\", \"London\", \"Tokyo\")."`
}

// HelloArgs are the arguments of the say_hello tool.
type HelloArgs struct {
	Name string `json:"name,omitempty" description:"The name of the person to greet. Defaults to a generic greeting if not provided."`
}

// NoArgs is the argument type of tools without parameters.
type NoArgs struct{}

// Tools implements the weather tools.
//
// Every call prints a trace line to Out, which defaults to [os.Stdout].
type Tools struct {
	Out io.Writer
}

// mock weather reports, keyed by the lower-cased city name without spaces.
var cityReports = map[string]string{
	"newyork": "The weather in New York is sunny with a temperature of 25°C.",
	"london":  "It's cloudy in London with a temperature of 15°C.",
	"tokyo":   "Tokyo is experiencing light rain and a temperature of 18°C.",
}

type teamReport struct {
	temperature int
	condition   string
}

// mock weather database of the agent team, keyed by the title-cased city name.
var teamReports = map[string]teamReport{
	"London":   {15, "Cloudy"},
	"New York": {22, "Sunny"},
	"Tokyo":    {18, "Rainy"},
	"Paris":    {12, "Windy"},
	"Sydney":   {25, "Clear"},
}

func (t *Tools) out() io.Writer {
	if t == nil || t.Out == nil {
		return os.Stdout
	}
	return t.Out
}

func (t *Tools) tracef(format string, args ...any) {
	fmt.Fprintf(t.out(), "--- Tool: "+format+" ---\n", args...)
}

// GetWeather retrieves the current weather report for a specified city.
//
// The result has status "success" with a report, or status "error" with an
// error_message.
func (t *Tools) GetWeather(ctx context.Context, args WeatherArgs) (map[string]any, error) {
	t.tracef("get_weather called for city: %s", args.City)

	key := strings.ReplaceAll(strings.ToLower(args.City), " ", "")
	if report, ok := cityReports[key]; ok {
		return map[string]any{
			"status": StatusSuccess,
			"report": report,
		}, nil
	}

	return map[string]any{
		"status":        StatusError,
		"error_message": fmt.Sprintf("Sorry, I don't have weather information for '%s'.", args.City),
	}, nil
}

var titleCaser = cases.Title(language.Und)

// GetTeamWeather retrieves the current weather report for a specified city
// from the agent team database.
func (t *Tools) GetTeamWeather(ctx context.Context, args WeatherArgs) (map[string]any, error) {
	t.tracef("get_weather called with city: %s", args.City)

	city := titleCaser.String(strings.TrimSpace(args.City))
	if w, ok := teamReports[city]; ok {
		return map[string]any{
			"status": StatusSuccess,
			"report": fmt.Sprintf("The weather in %s is currently %s with a temperature of %d°C.",
				city, strings.ToLower(w.condition), w.temperature),
		}, nil
	}

	return map[string]any{
		"status":        StatusError,
		"error_message": fmt.Sprintf("Weather data for '%s' is not available in the database.", args.City),
	}, nil
}

// SayHello provides a simple greeting, addressing the user by name when given.
func (t *Tools) SayHello(ctx context.Context, args HelloArgs) (string, error) {
	if args.Name == "" {
		t.tracef("say_hello called without a specific name (name_arg_value: None)")
		return "Hello there!", nil
	}

	t.tracef("say_hello called with name: %s", args.Name)
	return fmt.Sprintf("Hello, %s!", args.Name), nil
}

// SayGoodbye provides a simple farewell message to conclude the conversation.
func (t *Tools) SayGoodbye(ctx context.Context, _ NoArgs) (string, error) {
	t.tracef("say_goodbye called")
	return "Goodbye! Have a great day.", nil
}

// WeatherTool returns the get_weather tool backed by [Tools.GetWeather].
func (t *Tools) WeatherTool() (types.Tool, error) {
	return newTool(t.GetWeather, GetWeatherToolName, "Retrieves the current weather report for a specified city.")
}

// TeamWeatherTool returns the get_weather tool backed by [Tools.GetTeamWeather].
func (t *Tools) TeamWeatherTool() (types.Tool, error) {
	return newTool(t.GetTeamWeather, GetWeatherToolName, "Retrieves the current weather report for a specified city.")
}

// HelloTool returns the say_hello tool.
func (t *Tools) HelloTool() (types.Tool, error) {
	return newTool(t.SayHello, SayHelloToolName, "Provides a simple greeting. If a name is provided, it will be used.")
}

// GoodbyeTool returns the say_goodbye tool.
func (t *Tools) GoodbyeTool() (types.Tool, error) {
	return newTool(t.SayGoodbye, SayGoodbyeToolName, "Provides a simple farewell message to conclude the conversation.")
}

func newTool[Args, Result any](fn tools.Function[Args, Result], name, description string) (types.Tool, error) {
	ft, err := tools.NewFunctionTool(fn, tools.WithName(name), tools.WithDescription(description))
	if err != nil {
		return nil, fmt.Errorf("create %s tool: %w", name, err)
	}
	return ft, nil
}
