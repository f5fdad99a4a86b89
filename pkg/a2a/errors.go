package a2a

import "fmt"

// Error codes carried on the wire for JSON-RPC-style error objects.
const (
	CodeInvalidRequest       = -32600
	CodeInternalError        = -32603
	CodeTaskNotFound         = -32001
	CodeUnsupportedOperation = -32004
)

// AgentNotFoundError indicates a dispatch named an agent that is not
// registered.
type AgentNotFoundError struct {
	Name      string
	Available []string
}

func (e *AgentNotFoundError) Error() string {
	return fmt.Sprintf("agent %q not found, available agents: %v", e.Name, e.Available)
}

// TransportError wraps a network or timeout failure talking to a
// remote agent.
type TransportError struct {
	URL   string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error calling %s: %v", e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// MalformedResponseError indicates the remote agent answered with a
// payload that could not be decoded.
type MalformedResponseError struct {
	URL   string
	Cause error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Cause)
}

func (e *MalformedResponseError) Unwrap() error { return e.Cause }

// PreconditionError indicates a request was missing required input,
// such as an absent message or empty query text.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}

// UnsupportedOperationError indicates the requested operation is not
// supported by the agent, e.g. task cancellation.
type UnsupportedOperationError struct {
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("operation not supported: %s", e.Operation)
}
