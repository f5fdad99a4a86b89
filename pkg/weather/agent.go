// Package weather implements the weather forecast agent the host
// routes meteorology queries to. Forecast data is canned; the agent
// exists to exercise the same executor contract as the beach agent.
package weather

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bbq-beach/agents/pkg/a2a"
	"github.com/bbq-beach/agents/pkg/executor"
	"github.com/bbq-beach/agents/pkg/ptr"
)

// SupportedContentTypes lists the content types the agent accepts and
// produces.
var SupportedContentTypes = []string{"text", "text/plain"}

// Agent is the mock weather forecast agent.
type Agent struct {
	forecasts map[string]string
	logger    *zap.Logger
}

// New creates the weather agent.
func New(logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{
		forecasts: defaultForecasts(),
		logger:    logger.With(zap.String("component", "weather_agent")),
	}
}

// Stream answers a query with a working update followed by a completed
// forecast chunk.
func (a *Agent) Stream(ctx context.Context, query, sessionID string) (<-chan executor.Chunk, error) {
	out := make(chan executor.Chunk, 2)

	go func() {
		defer close(out)

		a.logger.Info("looking up forecast",
			zap.String("session_id", sessionID),
			zap.String("query", query))

		select {
		case out <- executor.Chunk{Content: "Checking the forecast..."}:
		case <-ctx.Done():
			return
		}

		select {
		case out <- executor.Chunk{Content: a.forecast(query), IsTaskComplete: true}:
		case <-ctx.Done():
		}
	}()

	return out, nil
}

func (a *Agent) forecast(query string) string {
	q := strings.ToLower(query)
	for region, text := range a.forecasts {
		if strings.Contains(q, region) {
			return fmt.Sprintf("Forecast for %s: %s", region, text)
		}
	}
	return "Forecast for the Kanto coast: sunny with light onshore winds. High 26C, low 19C, 10% chance of rain."
}

func defaultForecasts() map[string]string {
	return map[string]string{
		"shonan":   "sunny, high 27C, south wind 3 m/s, 10% chance of rain. Good conditions for an outdoor BBQ.",
		"kanagawa": "mostly sunny, high 26C, 20% chance of an evening shower.",
		"chiba":    "partly cloudy, high 25C, moderate sea breeze, 30% chance of rain after 6pm.",
		"tokyo":    "sunny intervals, high 28C, low humidity, 10% chance of rain.",
	}
}

var cardExamples = []string{
	"What's the weather in Shonan today?",
	"Will it be sunny in Chiba tomorrow?",
	"Chance of rain on the Kanagawa coast this weekend?",
	"Weekly forecast for Tokyo bay",
}

// AgentCard returns the descriptor the agent serves on its well-known
// endpoint.
func AgentCard(host string, port int) *a2a.AgentCard {
	skill := a2a.AgentSkill{
		ID:          "weather_forecast",
		Name:        "Weather Forecast",
		Description: ptr.Ptr("Provides current conditions, temperature, precipitation and weekly forecasts"),
		Tags:        []string{"weather", "forecast", "temperature", "rain"},
		Examples:    cardExamples,
	}

	return &a2a.AgentCard{
		Name:        "Weather Agent",
		Description: ptr.Ptr("Weather forecast agent covering the Kanto coastal areas"),
		URL:         fmt.Sprintf("http://%s:%d/", host, port),
		Version:     "1.0.0",
		Capabilities: a2a.AgentCapabilities{
			Streaming: false,
		},
		DefaultInputModes:  SupportedContentTypes,
		DefaultOutputModes: SupportedContentTypes,
		Skills:             []a2a.AgentSkill{skill},
		Examples:           cardExamples,
	}
}
