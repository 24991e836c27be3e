// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package weather

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/go-a2a/weather-agent-team/agent"
	"github.com/go-a2a/weather-agent-team/types"
)

// Agent names of the agent team.
const (
	GreetingAgentName = "greeting_agent"
	FarewellAgentName = "farewell_agent"
	TeamRootAgentName = "weather_agent_v2"
)

// WeatherInstruction is the instruction of the single weather agent.
var WeatherInstruction = heredoc.Doc(`
	You are a helpful weather assistant.
	When the user asks for the weather in a specific city, use the 'get_weather' tool to find the information.
	If the tool returns an error, inform the user politely.
	If the tool is successful, present the weather report clearly.
`)

// GreetingInstruction is the instruction of the greeting agent.
var GreetingInstruction = heredoc.Doc(`
	You are the Greeting Agent. Your ONLY task is to provide a friendly greeting to the user.
	Use the 'say_hello' tool to generate the greeting.
	If the user provides their name, make sure to pass it to the tool.
	Do not engage in any other conversation or tasks.
`)

// FarewellInstruction is the instruction of the farewell agent.
var FarewellInstruction = heredoc.Doc(`
	You are the Farewell Agent. Your ONLY task is to provide a polite goodbye message.
	Use the 'say_goodbye' tool when the user indicates they are leaving or ending the conversation (e.g., using words like 'bye', 'goodbye', 'thanks bye', 'see you').
	Do not perform any other actions.
`)

// TeamRootInstruction is the instruction of the coordinator of the agent team.
var TeamRootInstruction = heredoc.Doc(`
	You are the main Weather Agent coordinating a team. Your primary responsibility is to provide weather information.
	Use the 'get_weather' tool ONLY for specific weather requests (e.g., 'weather in London').
	You have specialized sub-agents:
	1. 'greeting_agent': Handles simple greetings like 'Hi', 'Hello'. Delegate to it for these.
	2. 'farewell_agent': Handles simple farewells like 'Bye', 'See you'. Delegate to it for these.
	Analyze the user's query. If it's a greeting, delegate to 'greeting_agent'. If it's a farewell, delegate to 'farewell_agent'. If it's a weather request, handle it yourself using 'get_weather'.
	For anything else, respond appropriately or state you cannot handle it.
`)

// NewWeatherAgent returns an agent answering weather questions with the get_weather tool.
func NewWeatherAgent(ctx context.Context, t *Tools, name string, llm types.Model, description string) (*agent.LLMAgent, error) {
	weatherTool, err := t.WeatherTool()
	if err != nil {
		return nil, err
	}

	return agent.NewLLMAgent(ctx, name,
		agent.WithModel(llm),
		agent.WithDescription(description),
		agent.WithInstruction(WeatherInstruction),
		agent.WithTools(weatherTool),
	)
}

// NewGreetingAgent returns the greeting specialist of the agent team.
func NewGreetingAgent(ctx context.Context, t *Tools, llm types.Model) (*agent.LLMAgent, error) {
	helloTool, err := t.HelloTool()
	if err != nil {
		return nil, err
	}

	return agent.NewLLMAgent(ctx, GreetingAgentName,
		agent.WithModel(llm),
		agent.WithDescription("Handles simple greetings and hellos using the 'say_hello' tool."),
		agent.WithInstruction(GreetingInstruction),
		agent.WithTools(helloTool),
	)
}

// NewFarewellAgent returns the farewell specialist of the agent team.
func NewFarewellAgent(ctx context.Context, t *Tools, llm types.Model) (*agent.LLMAgent, error) {
	goodbyeTool, err := t.GoodbyeTool()
	if err != nil {
		return nil, err
	}

	return agent.NewLLMAgent(ctx, FarewellAgentName,
		agent.WithModel(llm),
		agent.WithDescription("Handles simple farewells and goodbyes using the 'say_goodbye' tool."),
		agent.WithInstruction(FarewellInstruction),
		agent.WithTools(goodbyeTool),
	)
}

// NewTeamRootAgent returns the coordinator of the agent team.
//
// It answers weather requests itself and delegates greetings and farewells to
// subAgents.
func NewTeamRootAgent(ctx context.Context, t *Tools, llm types.Model, subAgents ...types.Agent) (*agent.LLMAgent, error) {
	weatherTool, err := t.TeamWeatherTool()
	if err != nil {
		return nil, err
	}

	return agent.NewLLMAgent(ctx, TeamRootAgentName,
		agent.WithModel(llm),
		agent.WithDescription("The main coordinator agent. Handles weather requests and delegates greetings/farewells to specialists."),
		agent.WithInstruction(TeamRootInstruction),
		agent.WithTools(weatherTool),
		agent.WithSubAgents(subAgents...),
	)
}
