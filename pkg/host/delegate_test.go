package host

import (
	"context"
	"testing"
)

func TestChooseAgentByTags(t *testing.T) {
	beachSrv := fakeAgent(t, "BBQ Beach Agent", completedResponse("beaches"))
	weatherSrv := fakeAgent(t, "Weather Agent", completedResponse("sunny"))

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{beachSrv.URL, weatherSrv.URL})

	tests := []struct {
		query string
		want  string
	}{
		{"find a bbq beach in Kanagawa", "BBQ Beach Agent"},
		{"what's the weather forecast for Shonan?", "Weather Agent"},
		{"will it rain tomorrow?", "Weather Agent"},
		{"outdoor bbq spots near Chiba", "BBQ Beach Agent"},
	}
	for _, tt := range tests {
		got, ok := ChooseAgent(registry, tt.query, &SessionState{})
		if !ok {
			t.Fatalf("ChooseAgent(%q) found no agents", tt.query)
		}
		if got != tt.want {
			t.Errorf("ChooseAgent(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestChooseAgentFallsBackToActiveAgent(t *testing.T) {
	beachSrv := fakeAgent(t, "BBQ Beach Agent", completedResponse("beaches"))
	weatherSrv := fakeAgent(t, "Weather Agent", completedResponse("sunny"))

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{beachSrv.URL, weatherSrv.URL})

	state := &SessionState{ActiveAgent: "Weather Agent"}
	got, ok := ChooseAgent(registry, "and what about tomorrow?", state)
	if !ok || got != "Weather Agent" {
		t.Errorf("expected active agent fallback, got %q (ok=%v)", got, ok)
	}
}

func TestChooseAgentDefaultsToFirstRegistered(t *testing.T) {
	beachSrv := fakeAgent(t, "BBQ Beach Agent", completedResponse("beaches"))

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{beachSrv.URL})

	got, ok := ChooseAgent(registry, "hello there", &SessionState{})
	if !ok || got != "BBQ Beach Agent" {
		t.Errorf("expected first registered agent, got %q (ok=%v)", got, ok)
	}
}

func TestChooseAgentEmptyRegistry(t *testing.T) {
	registry := NewRegistry(nil)

	if _, ok := ChooseAgent(registry, "anything", &SessionState{}); ok {
		t.Error("expected no agent from an empty registry")
	}
}
