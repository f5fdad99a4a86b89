// Package a2a defines the wire objects and HTTP client for the
// agent-to-agent protocol spoken by the BBQ beach and weather agents.
package a2a

import (
	"encoding/json"
	"fmt"
	"time"
)

// WellKnownCardPath is the relative path every agent serves its card on.
const WellKnownCardPath = "/.well-known/agent.json"

// AgentCapabilities describes optional protocol features of an agent.
type AgentCapabilities struct {
	Streaming              bool `json:"streaming,omitempty"`
	PushNotifications      bool `json:"pushNotifications,omitempty"`
	StateTransitionHistory bool `json:"stateTransitionHistory,omitempty"`
}

// AgentSkill describes one capability advertised on an agent card.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// AgentCard is the descriptor document fetched from an agent's
// well-known endpoint.
type AgentCard struct {
	Name               string            `json:"name"`
	Description        *string           `json:"description,omitempty"`
	URL                string            `json:"url"`
	Version            string            `json:"version"`
	Capabilities       AgentCapabilities `json:"capabilities"`
	DefaultInputModes  []string          `json:"defaultInputModes,omitempty"`
	DefaultOutputModes []string          `json:"defaultOutputModes,omitempty"`
	Skills             []AgentSkill      `json:"skills"`
	Examples           []string          `json:"examples,omitempty"`
}

// Part is one content fragment of a message or artifact.
// It's a union type discriminated by Type ("text" or "data").
type Part struct {
	Type     string         `json:"type"`
	Text     string         `json:"text,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// UnmarshalJSON validates the part against its declared type.
func (p *Part) UnmarshalJSON(data []byte) error {
	type partAlias Part
	var tmp struct {
		Type string `json:"type"`
		*partAlias
	}
	tmp.partAlias = (*partAlias)(p)

	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	switch tmp.Type {
	case "text":
		// Empty text is legal on the wire; preconditions are enforced
		// by the executor, not the codec.
	case "data":
		if tmp.Data == nil {
			return fmt.Errorf("data part missing 'data' field")
		}
	default:
		return fmt.Errorf("unknown part type: %q", tmp.Type)
	}
	return nil
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Type: "text", Text: text}
}

// Message is a single conversational message travelling between agents.
type Message struct {
	Role      string         `json:"role"` // "user" or "agent"
	Parts     []Part         `json:"parts"`
	MessageID string         `json:"messageId,omitempty"`
	TaskID    string         `json:"taskId,omitempty"`
	ContextID string         `json:"contextId,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Text concatenates all text parts of the message, space-separated.
func (m *Message) Text() string {
	var out string
	for _, part := range m.Parts {
		if part.Type == "text" && part.Text != "" {
			if out != "" {
				out += " "
			}
			out += part.Text
		}
	}
	return out
}

// Artifact is a structured result attached to a task response.
type Artifact struct {
	Name     *string        `json:"name,omitempty"`
	Parts    []Part         `json:"parts"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// TaskState enumerates the lifecycle states of a task.
type TaskState string

const (
	TaskStateSubmitted     TaskState = "submitted"
	TaskStateWorking       TaskState = "working"
	TaskStateInputRequired TaskState = "input-required"
	TaskStateCompleted     TaskState = "completed"
	TaskStateFailed        TaskState = "failed"
)

// Terminal reports whether a task in this state has finished.
func (s TaskState) Terminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateFailed, TaskStateInputRequired:
		return true
	}
	return false
}

// TaskStatus is the current status of a task, optionally with a
// human-readable agent message.
type TaskStatus struct {
	State     TaskState  `json:"state"`
	Message   *Message   `json:"message,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Task is the result object returned by the task endpoint.
type Task struct {
	ID        string     `json:"id"`
	ContextID string     `json:"contextId,omitempty"`
	Status    TaskStatus `json:"status"`
	Artifacts []Artifact `json:"artifacts,omitempty"`
}

// TaskStatusUpdateEvent is one entry in the status event stream emitted
// while a task executes. Exactly one terminal event (Final=true) ends
// the stream for a task.
type TaskStatusUpdateEvent struct {
	TaskID    string     `json:"taskId"`
	ContextID string     `json:"contextId,omitempty"`
	Status    TaskStatus `json:"status"`
	Final     bool       `json:"final"`
}

// SendParams is the body of a POST to the task endpoint.
type SendParams struct {
	Message Message `json:"message"`
}

// SendResponse is the envelope returned by the task endpoint. Exactly
// one of Result and Error is set.
type SendResponse struct {
	Result *Task        `json:"result,omitempty"`
	Error  *RemoteError `json:"error,omitempty"`
}

// RemoteError is the error object a remote agent returns in place of a
// result.
type RemoteError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error %d: %s", e.Code, e.Message)
}

// AgentTextMessage builds an agent-role message holding a single text part.
func AgentTextMessage(text, contextID, taskID string) *Message {
	return &Message{
		Role:      "agent",
		Parts:     []Part{TextPart(text)},
		ContextID: contextID,
		TaskID:    taskID,
	}
}
