package host

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bbq-beach/agents/pkg/a2a"
	"github.com/bbq-beach/agents/pkg/ptr"
)

func TestDispatchUnknownAgentListsAvailable(t *testing.T) {
	beachSrv := fakeAgent(t, "BBQ Beach Agent", completedResponse("beaches"))
	weatherSrv := fakeAgent(t, "Weather Agent", completedResponse("sunny"))

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{beachSrv.URL, weatherSrv.URL})
	router := NewRouter(registry, nil)

	state := &SessionState{}
	parts := router.Dispatch(context.Background(), "Sushi Agent", "find sushi", state)

	if len(parts) != 1 {
		t.Fatalf("expected 1 error fragment, got %d", len(parts))
	}
	text := parts[0].Text
	if !strings.Contains(text, `"Sushi Agent" not found`) {
		t.Errorf("fragment should name the missing agent: %q", text)
	}
	// The fragment enumerates exactly the registered names.
	if !strings.Contains(text, "BBQ Beach Agent, Weather Agent") {
		t.Errorf("fragment should list available agents: %q", text)
	}
	if state.ActiveAgent != "" {
		t.Errorf("active agent must not change on failure, got %q", state.ActiveAgent)
	}
}

func TestDispatchSuccessSetsActiveAgent(t *testing.T) {
	beachSrv := fakeAgent(t, "BBQ Beach Agent", completedResponse("Zushi Beach, 2000 yen"))

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{beachSrv.URL})
	router := NewRouter(registry, nil)

	state := &SessionState{}
	parts := router.Dispatch(context.Background(), "BBQ Beach Agent", "find a beach in Kanagawa", state)

	if state.ActiveAgent != "BBQ Beach Agent" {
		t.Errorf("expected active agent to be set, got %q", state.ActiveAgent)
	}
	if state.SessionID == "" || state.ContextID == "" {
		t.Error("session and context ids should be minted on first dispatch")
	}
	if len(parts) != 1 || parts[0].Text != "Zushi Beach, 2000 yen" {
		t.Errorf("unexpected fragments: %+v", parts)
	}
}

func TestDispatchReusesSessionAndContext(t *testing.T) {
	var seenContexts []string
	srv := fakeAgent(t, "BBQ Beach Agent", func(params *a2a.SendParams) *a2a.SendResponse {
		seenContexts = append(seenContexts, params.Message.ContextID)
		return completedResponse("ok")(params)
	})

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{srv.URL})
	router := NewRouter(registry, nil)

	state := &SessionState{SessionID: "session-fixed", ContextID: "ctx-fixed"}
	router.Dispatch(context.Background(), "BBQ Beach Agent", "first", state)
	router.Dispatch(context.Background(), "BBQ Beach Agent", "second", state)

	if state.SessionID != "session-fixed" {
		t.Errorf("existing session id must be reused, got %q", state.SessionID)
	}
	if len(seenContexts) != 2 || seenContexts[0] != "ctx-fixed" || seenContexts[1] != "ctx-fixed" {
		t.Errorf("context id should be stable across dispatches: %v", seenContexts)
	}
}

func TestDispatchZeroArtifactsPlaceholder(t *testing.T) {
	srv := fakeAgent(t, "BBQ Beach Agent", func(params *a2a.SendParams) *a2a.SendResponse {
		return &a2a.SendResponse{
			Result: &a2a.Task{
				ID:     params.Message.TaskID,
				Status: a2a.TaskStatus{State: a2a.TaskStateCompleted},
			},
		}
	})

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{srv.URL})
	router := NewRouter(registry, nil)

	parts := router.Dispatch(context.Background(), "BBQ Beach Agent", "anything", &SessionState{})

	if len(parts) != 1 {
		t.Fatalf("expected exactly 1 placeholder fragment, got %d", len(parts))
	}
	if parts[0].Text != NoResponseText {
		t.Errorf("expected %q, got %q", NoResponseText, parts[0].Text)
	}
}

func TestDispatchMultipleArtifactsPreserveOrder(t *testing.T) {
	srv := fakeAgent(t, "BBQ Beach Agent", func(params *a2a.SendParams) *a2a.SendResponse {
		return &a2a.SendResponse{
			Result: &a2a.Task{
				ID:     params.Message.TaskID,
				Status: a2a.TaskStatus{State: a2a.TaskStateCompleted},
				Artifacts: []a2a.Artifact{
					{Name: ptr.Ptr("first"), Parts: []a2a.Part{a2a.TextPart("alpha")}},
					{Name: ptr.Ptr("second"), Parts: []a2a.Part{a2a.TextPart("beta")}},
				},
			},
		}
	})

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{srv.URL})
	router := NewRouter(registry, nil)

	parts := router.Dispatch(context.Background(), "BBQ Beach Agent", "anything", &SessionState{})

	if len(parts) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(parts))
	}
	if parts[0].Text != "alpha" || parts[1].Text != "beta" {
		t.Errorf("artifact order not preserved: %+v", parts)
	}
}

func TestDispatchTransportErrorFragment(t *testing.T) {
	srv := fakeAgent(t, "BBQ Beach Agent", completedResponse("ok"))

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{srv.URL})
	router := NewRouter(registry, nil)

	// Kill the remote after registration: dispatch hits a dead socket.
	srv.Close()

	state := &SessionState{}
	parts := router.Dispatch(context.Background(), "BBQ Beach Agent", "find a beach", state)

	if len(parts) != 1 {
		t.Fatalf("expected 1 error fragment, got %d", len(parts))
	}
	if !strings.Contains(parts[0].Text, `Error communicating with agent "BBQ Beach Agent"`) {
		t.Errorf("unexpected fragment: %q", parts[0].Text)
	}
	if state.ActiveAgent != "" {
		t.Errorf("active agent must not be set on transport failure, got %q", state.ActiveAgent)
	}
}

func TestDispatchRemoteErrorFragment(t *testing.T) {
	srv := fakeAgent(t, "BBQ Beach Agent", func(params *a2a.SendParams) *a2a.SendResponse {
		return &a2a.SendResponse{
			Error: &a2a.RemoteError{Code: a2a.CodeInternalError, Message: "agent melted down"},
		}
	})

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{srv.URL})
	router := NewRouter(registry, nil)

	parts := router.Dispatch(context.Background(), "BBQ Beach Agent", "find a beach", &SessionState{})

	if len(parts) != 1 {
		t.Fatalf("expected 1 error fragment, got %d", len(parts))
	}
	if !strings.Contains(parts[0].Text, "agent melted down") {
		t.Errorf("remote error text should surface verbatim: %q", parts[0].Text)
	}
}

func TestDispatchMessageIDFromMetadata(t *testing.T) {
	var seenMessageID string
	srv := fakeAgent(t, "BBQ Beach Agent", func(params *a2a.SendParams) *a2a.SendResponse {
		seenMessageID = params.Message.MessageID
		return completedResponse("ok")(params)
	})

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{srv.URL})
	router := NewRouter(registry, nil)

	state := &SessionState{Metadata: map[string]any{"messageId": "msg-from-ui"}}
	router.Dispatch(context.Background(), "BBQ Beach Agent", "find a beach", state)

	if seenMessageID != "msg-from-ui" {
		t.Errorf("expected message id from metadata, got %q", seenMessageID)
	}
}

func TestDispatchMintsFreshTaskIDs(t *testing.T) {
	var seenTaskIDs []string
	srv := fakeAgent(t, "BBQ Beach Agent", func(params *a2a.SendParams) *a2a.SendResponse {
		seenTaskIDs = append(seenTaskIDs, params.Message.TaskID)
		return completedResponse("ok")(params)
	})

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{srv.URL})
	router := NewRouter(registry, nil)

	state := &SessionState{}
	for i := 0; i < 3; i++ {
		router.Dispatch(context.Background(), "BBQ Beach Agent", fmt.Sprintf("query %d", i), state)
	}

	seen := make(map[string]bool)
	for _, id := range seenTaskIDs {
		if id == "" {
			t.Error("task id must not be empty")
		}
		if seen[id] {
			t.Errorf("task id %q reused across dispatches", id)
		}
		seen[id] = true
	}
}
