package beach

import (
	"fmt"

	"github.com/bbq-beach/agents/pkg/a2a"
	"github.com/bbq-beach/agents/pkg/ptr"
)

var cardExamples = []string{
	"Find a beach in Kanagawa where I can have a BBQ",
	"Which coast around Shonan allows barbecue?",
	"Are there beaches with BBQ equipment in Chiba?",
	"How do I book a BBQ spot at a swimming beach?",
}

// AgentCard returns the descriptor the agent serves on its well-known
// endpoint.
func AgentCard(host string, port int) *a2a.AgentCard {
	skill := a2a.AgentSkill{
		ID:          "bbq_beach_search",
		Name:        "BBQ Beach Search",
		Description: ptr.Ptr("Searches beaches where BBQ is allowed and provides details on fees, equipment, booking and access"),
		Tags:        []string{"bbq", "beach", "outdoor", "recreation", "japan"},
		Examples:    cardExamples,
	}

	return &a2a.AgentCard{
		Name:        "BBQ Beach Agent",
		Description: ptr.Ptr("Specialist agent for finding BBQ-friendly beaches with fees, equipment, booking and access details"),
		URL:         fmt.Sprintf("http://%s:%d/", host, port),
		Version:     "1.0.0",
		Capabilities: a2a.AgentCapabilities{
			// Responses are returned in one shot; the card must not
			// advertise streaming.
			Streaming: false,
		},
		DefaultInputModes:  SupportedContentTypes,
		DefaultOutputModes: SupportedContentTypes,
		Skills:             []a2a.AgentSkill{skill},
		Examples:           cardExamples,
	}
}
