// Package executor adapts a streaming agent to the task status event
// protocol: each chunk the agent yields is translated into exactly one
// status event, ending in a single terminal event per task.
package executor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bbq-beach/agents/pkg/a2a"
	"github.com/bbq-beach/agents/pkg/ptr"
)

// RequestContext carries the identifiers and message of one A2A request.
type RequestContext struct {
	TaskID    string
	ContextID string
	SessionID string
	Message   *a2a.Message
}

// AgentExecutor handles one A2A request, publishing status updates to
// the event queue.
type AgentExecutor interface {
	Execute(ctx context.Context, requestCtx *RequestContext, queue EventQueue) error
	Cancel(ctx context.Context, requestCtx *RequestContext, queue EventQueue) error
}

// ChunkAgent is a streaming agent yielding result chunks for a query.
// The returned channel is closed when the agent is done; the last
// meaningful chunk has IsTaskComplete or RequireUserInput set.
type ChunkAgent interface {
	Stream(ctx context.Context, query, sessionID string) (<-chan Chunk, error)
}

// Config contains tunables for the StreamingExecutor.
type Config struct {
	// Timeout is the maximum time one task may run. Zero disables it.
	Timeout time.Duration
}

// DefaultConfig returns the default executor configuration.
func DefaultConfig() *Config {
	return &Config{Timeout: 5 * time.Minute}
}

// StreamingExecutor drives a ChunkAgent through the chunk→event state
// machine. All failures surface as a terminal failed event; nothing
// escapes to the caller except queue errors.
type StreamingExecutor struct {
	agent  ChunkAgent
	config *Config
	logger *zap.Logger
}

// NewStreamingExecutor wraps an agent in an executor. A nil config gets
// defaults; a nil logger is replaced with a no-op one.
func NewStreamingExecutor(agent ChunkAgent, config *Config, logger *zap.Logger) *StreamingExecutor {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamingExecutor{
		agent:  agent,
		config: config,
		logger: logger.With(zap.String("component", "executor")),
	}
}

// Execute runs the wrapped agent for the request and streams status
// events to the queue.
func (e *StreamingExecutor) Execute(ctx context.Context, requestCtx *RequestContext, queue EventQueue) error {
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	// Precondition checks short-circuit to failed without starting
	// the agent.
	if requestCtx.Message == nil {
		e.logger.Error("request rejected",
			zap.String("task_id", requestCtx.TaskID),
			zap.Error(&a2a.PreconditionError{Reason: "invalid task message"}))
		return e.emitFailed(ctx, requestCtx, queue, "invalid task message")
	}
	query := requestCtx.Message.Text()
	if query == "" {
		e.logger.Error("request rejected",
			zap.String("task_id", requestCtx.TaskID),
			zap.Error(&a2a.PreconditionError{Reason: "query text not found"}))
		return e.emitFailed(ctx, requestCtx, queue, "query text not found")
	}

	e.logger.Info("executing task",
		zap.String("task_id", requestCtx.TaskID),
		zap.String("query", query))

	chunks, err := e.agent.Stream(ctx, query, requestCtx.SessionID)
	if err != nil {
		e.logger.Error("agent stream failed to start", zap.Error(err))
		return e.emitFailed(ctx, requestCtx, queue, err.Error())
	}

	state := StateReceived
	for chunk := range chunks {
		next, emission := Next(state, chunk)
		state = next

		text := chunk.Content
		if chunk.Err != nil {
			e.logger.Error("agent chunk error",
				zap.String("task_id", requestCtx.TaskID),
				zap.Error(chunk.Err))
			text = chunk.Err.Error()
		}

		event := &a2a.TaskStatusUpdateEvent{
			TaskID:    requestCtx.TaskID,
			ContextID: requestCtx.ContextID,
			Status: a2a.TaskStatus{
				State:     emission.TaskState,
				Message:   a2a.AgentTextMessage(text, requestCtx.ContextID, requestCtx.TaskID),
				Timestamp: ptr.Ptr(time.Now()),
			},
			Final: emission.Final,
		}
		if err := queue.EnqueueEvent(ctx, event); err != nil {
			return err
		}
		if emission.Final {
			break
		}
	}

	// An agent that closes its stream without a terminal chunk still
	// owes the caller exactly one terminal event.
	if !state.Terminal() {
		return e.emitFailed(ctx, requestCtx, queue, "agent stream ended without a result")
	}
	return nil
}

// Cancel is not supported: dispatched tasks run to a terminal state.
func (e *StreamingExecutor) Cancel(ctx context.Context, requestCtx *RequestContext, queue EventQueue) error {
	return &a2a.UnsupportedOperationError{Operation: "cancel"}
}

func (e *StreamingExecutor) emitFailed(ctx context.Context, requestCtx *RequestContext, queue EventQueue, text string) error {
	return queue.EnqueueEvent(ctx, &a2a.TaskStatusUpdateEvent{
		TaskID:    requestCtx.TaskID,
		ContextID: requestCtx.ContextID,
		Status: a2a.TaskStatus{
			State:     a2a.TaskStateFailed,
			Message:   a2a.AgentTextMessage(text, requestCtx.ContextID, requestCtx.TaskID),
			Timestamp: ptr.Ptr(time.Now()),
		},
		Final: true,
	})
}
