package host

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bbq-beach/agents/pkg/a2a"
)

// NoResponseText is the placeholder fragment returned when a remote
// agent answers without any artifacts.
const NoResponseText = "The agent returned no response."

// Router dispatches tasks to registered remote agents. Every failure
// is converted into a text error fragment at this boundary; Dispatch
// never returns a Go error and never panics past it.
type Router struct {
	registry *Registry
	logger   *zap.Logger
}

// NewRouter creates a router over the given registry.
func NewRouter(registry *Registry, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		registry: registry,
		logger:   logger.With(zap.String("component", "router")),
	}
}

// Dispatch sends a task to the named agent and returns the response
// fragments. On success the session's active agent is set to the
// dispatched agent; on any failure a single error fragment describes
// what went wrong.
func (rt *Router) Dispatch(ctx context.Context, agentName, task string, state *SessionState) []a2a.Part {
	rt.logger.Info("dispatching task",
		zap.String("agent", agentName),
		zap.String("task", task))

	conn, ok := rt.registry.Lookup(agentName)
	if !ok {
		available := rt.registry.Names()
		rt.logger.Warn("dispatch to unknown agent",
			zap.Error(&a2a.AgentNotFoundError{Name: agentName, Available: available}))
		return []a2a.Part{a2a.TextPart(fmt.Sprintf(
			"Agent %q not found. Available agents: %s",
			agentName, strings.Join(available, ", ")))}
	}

	if state.SessionID == "" {
		state.SessionID = uuid.NewString()
	}
	if state.ContextID == "" {
		state.ContextID = uuid.NewString()
	}
	taskID := uuid.NewString()
	messageID := uuid.NewString()
	if v, ok := state.Metadata["messageId"].(string); ok && v != "" {
		messageID = v
	}

	params := &a2a.SendParams{
		Message: a2a.Message{
			Role:      "user",
			Parts:     []a2a.Part{a2a.TextPart(task)},
			MessageID: messageID,
			TaskID:    taskID,
			ContextID: state.ContextID,
		},
	}

	result, err := conn.Client.SendMessage(ctx, params)
	if err != nil {
		rt.logger.Error("dispatch failed",
			zap.String("agent", agentName),
			zap.Error(err))
		return []a2a.Part{a2a.TextPart(fmt.Sprintf(
			"Error communicating with agent %q: %v", agentName, err))}
	}

	state.ActiveAgent = agentName
	rt.logger.Info("received response", zap.String("agent", agentName))

	// Artifacts concatenate in the order the remote returned them.
	var parts []a2a.Part
	for _, artifact := range result.Artifacts {
		parts = append(parts, artifact.Parts...)
	}
	if len(parts) == 0 {
		return []a2a.Part{a2a.TextPart(NoResponseText)}
	}
	return parts
}
