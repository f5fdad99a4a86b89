// Package a2aserver exposes a single agent executor as an A2A HTTP
// endpoint: the agent card on the well-known path and the task
// endpoint on the root path.
package a2aserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/bbq-beach/agents/pkg/a2a"
	"github.com/bbq-beach/agents/pkg/executor"
	"github.com/bbq-beach/agents/pkg/ptr"
)

// Server binds an agent card and executor to HTTP handlers.
type Server struct {
	card     *a2a.AgentCard
	executor executor.AgentExecutor
	logger   *zap.Logger
}

// New creates a server for the given card and executor.
func New(card *a2a.AgentCard, exec executor.AgentExecutor, logger *zap.Logger) *Server {
	if card == nil {
		panic("agent card is required")
	}
	if exec == nil {
		panic("agent executor is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		card:     card,
		executor: exec,
		logger:   logger.With(zap.String("component", "a2a_server")),
	}
}

// Handler returns the HTTP handler serving the card and task endpoints,
// wrapped in permissive CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(a2a.WellKnownCardPath, s.handleAgentCard)
	mux.HandleFunc("/", s.handleTask)
	return cors.AllowAll().Handler(mux)
}

// Start runs the HTTP server until the context is cancelled, then
// shuts it down gracefully.
func (s *Server) Start(ctx context.Context, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting A2A server",
			zap.String("agent", s.card.Name),
			zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down A2A server", zap.String("agent", s.card.Name))
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.card)
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var params a2a.SendParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		s.sendError(w, a2a.CodeInvalidRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	msg := params.Message
	taskID := msg.TaskID
	if taskID == "" {
		taskID = uuid.NewString()
	}
	contextID := msg.ContextID
	if contextID == "" {
		contextID = uuid.NewString()
	}

	requestCtx := &executor.RequestContext{
		TaskID:    taskID,
		ContextID: contextID,
		SessionID: contextID,
		Message:   &msg,
	}

	task, err := s.runTask(r.Context(), requestCtx)
	if err != nil {
		s.logger.Error("task execution failed", zap.String("task_id", taskID), zap.Error(err))
		s.sendError(w, a2a.CodeInternalError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&a2a.SendResponse{Result: task})
}

// runTask drives the executor and folds its status event stream into
// the task object returned to the caller.
func (s *Server) runTask(ctx context.Context, requestCtx *executor.RequestContext) (*a2a.Task, error) {
	queue := executor.NewSimpleEventQueue(16)

	execErr := make(chan error, 1)
	go func() {
		execErr <- s.executor.Execute(ctx, requestCtx, queue)
		queue.Close()
	}()

	task := &a2a.Task{
		ID:        requestCtx.TaskID,
		ContextID: requestCtx.ContextID,
		Status: a2a.TaskStatus{
			State:     a2a.TaskStateSubmitted,
			Timestamp: ptr.Ptr(time.Now()),
		},
	}

	for event := range queue.Events() {
		task.Status = event.Status
		if !event.Final {
			continue
		}
		if event.Status.State == a2a.TaskStateCompleted && event.Status.Message != nil {
			task.Artifacts = append(task.Artifacts, a2a.Artifact{
				Name:  ptr.Ptr("result"),
				Parts: event.Status.Message.Parts,
			})
		}
	}

	if err := <-execErr; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Server) sendError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&a2a.SendResponse{
		Error: &a2a.RemoteError{Code: code, Message: message},
	})
}
