package executor

import "github.com/bbq-beach/agents/pkg/a2a"

// Chunk is one result fragment yielded by a streaming agent. A chunk
// with Err set aborts the stream.
type Chunk struct {
	Content          string
	IsTaskComplete   bool
	RequireUserInput bool
	Err              error
}

// State is the explicit execution state of one task.
type State string

const (
	StateReceived      State = "received"
	StateWorking       State = "working"
	StateCompleted     State = "completed"
	StateFailed        State = "failed"
	StateInputRequired State = "input-required"
)

// Terminal reports whether the task has reached a final state.
func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateInputRequired:
		return true
	}
	return false
}

// Emission describes the status event a transition produces.
type Emission struct {
	TaskState a2a.TaskState
	Final     bool
}

// Next is the pure transition function driving the chunk loop: given
// the current state and the next chunk it returns the successor state
// and the event to emit. It must not be called once a terminal state
// has been reached.
func Next(s State, c Chunk) (State, Emission) {
	switch {
	case c.Err != nil:
		return StateFailed, Emission{TaskState: a2a.TaskStateFailed, Final: true}
	case c.IsTaskComplete:
		return StateCompleted, Emission{TaskState: a2a.TaskStateCompleted, Final: true}
	case c.RequireUserInput:
		return StateInputRequired, Emission{TaskState: a2a.TaskStateInputRequired, Final: true}
	default:
		return StateWorking, Emission{TaskState: a2a.TaskStateWorking, Final: false}
	}
}
