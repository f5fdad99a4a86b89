package executor

import (
	"errors"
	"testing"

	"github.com/bbq-beach/agents/pkg/a2a"
)

func TestNextTransitions(t *testing.T) {
	tests := []struct {
		name      string
		state     State
		chunk     Chunk
		wantState State
		wantEmit  Emission
	}{
		{
			name:      "plain chunk keeps working",
			state:     StateReceived,
			chunk:     Chunk{Content: "searching..."},
			wantState: StateWorking,
			wantEmit:  Emission{TaskState: a2a.TaskStateWorking, Final: false},
		},
		{
			name:      "completion chunk finishes the task",
			state:     StateWorking,
			chunk:     Chunk{Content: "done", IsTaskComplete: true},
			wantState: StateCompleted,
			wantEmit:  Emission{TaskState: a2a.TaskStateCompleted, Final: true},
		},
		{
			name:      "input required finishes the task",
			state:     StateWorking,
			chunk:     Chunk{Content: "which prefecture?", RequireUserInput: true},
			wantState: StateInputRequired,
			wantEmit:  Emission{TaskState: a2a.TaskStateInputRequired, Final: true},
		},
		{
			name:      "chunk error fails the task",
			state:     StateWorking,
			chunk:     Chunk{Err: errors.New("backend down")},
			wantState: StateFailed,
			wantEmit:  Emission{TaskState: a2a.TaskStateFailed, Final: true},
		},
		{
			name:      "error wins over completion flag",
			state:     StateWorking,
			chunk:     Chunk{IsTaskComplete: true, Err: errors.New("late failure")},
			wantState: StateFailed,
			wantEmit:  Emission{TaskState: a2a.TaskStateFailed, Final: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotState, gotEmit := Next(tt.state, tt.chunk)
			if gotState != tt.wantState {
				t.Errorf("expected state %s, got %s", tt.wantState, gotState)
			}
			if gotEmit != tt.wantEmit {
				t.Errorf("expected emission %+v, got %+v", tt.wantEmit, gotEmit)
			}
		})
	}
}

func TestNextChunkSequence(t *testing.T) {
	// The canonical sequence: two progress updates then completion.
	chunks := []Chunk{
		{Content: "searching..."},
		{Content: "still searching..."},
		{Content: "found it", IsTaskComplete: true},
	}

	state := StateReceived
	var emissions []Emission
	for _, chunk := range chunks {
		var emit Emission
		state, emit = Next(state, chunk)
		emissions = append(emissions, emit)
		if emit.Final {
			break
		}
	}

	want := []Emission{
		{TaskState: a2a.TaskStateWorking, Final: false},
		{TaskState: a2a.TaskStateWorking, Final: false},
		{TaskState: a2a.TaskStateCompleted, Final: true},
	}
	if len(emissions) != len(want) {
		t.Fatalf("expected %d emissions, got %d", len(want), len(emissions))
	}
	for i := range want {
		if emissions[i] != want[i] {
			t.Errorf("emission %d: expected %+v, got %+v", i, want[i], emissions[i])
		}
	}
	if state != StateCompleted {
		t.Errorf("expected final state completed, got %s", state)
	}
}

func TestStateTerminal(t *testing.T) {
	for _, s := range []State{StateCompleted, StateFailed, StateInputRequired} {
		if !s.Terminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	for _, s := range []State{StateReceived, StateWorking} {
		if s.Terminal() {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}
