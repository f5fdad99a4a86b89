package executor

import (
	"context"
	"fmt"
	"sync"

	"github.com/bbq-beach/agents/pkg/a2a"
)

// EventQueue is the sink task status events are published to.
type EventQueue interface {
	// EnqueueEvent adds an event to the queue for processing.
	EnqueueEvent(ctx context.Context, event *a2a.TaskStatusUpdateEvent) error
	// Close closes the event queue.
	Close() error
}

// SimpleEventQueue is a buffered in-memory EventQueue.
type SimpleEventQueue struct {
	events chan *a2a.TaskStatusUpdateEvent
	closed bool
	mutex  sync.RWMutex
}

// NewSimpleEventQueue creates a SimpleEventQueue with the given buffer size.
func NewSimpleEventQueue(bufferSize int) *SimpleEventQueue {
	return &SimpleEventQueue{
		events: make(chan *a2a.TaskStatusUpdateEvent, bufferSize),
	}
}

// EnqueueEvent adds an event to the queue.
func (eq *SimpleEventQueue) EnqueueEvent(ctx context.Context, event *a2a.TaskStatusUpdateEvent) error {
	eq.mutex.RLock()
	defer eq.mutex.RUnlock()

	if eq.closed {
		return fmt.Errorf("event queue is closed")
	}

	select {
	case eq.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("event queue is full")
	}
}

// Close closes the event queue.
func (eq *SimpleEventQueue) Close() error {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()

	if !eq.closed {
		close(eq.events)
		eq.closed = true
	}
	return nil
}

// Events returns the channel to receive events from the queue.
func (eq *SimpleEventQueue) Events() <-chan *a2a.TaskStatusUpdateEvent {
	return eq.events
}
