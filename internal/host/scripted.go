package host

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ScriptedBehavior describes how the scripted invoker answers one
// command. Delay is applied before answering and respects context
// cancellation, which makes timeout behavior testable.
type ScriptedBehavior struct {
	Result interface{}
	Err    error
	Delay  time.Duration
}

// ScriptedCall records one Invoke made against the scripted invoker.
type ScriptedCall struct {
	ID   string
	Args map[string]interface{}
}

// ScriptedInvoker answers from a canned script instead of a live host.
// It serves tests and offline catalog work.
type ScriptedInvoker struct {
	mu         sync.Mutex
	operations []DiscoveredOperation
	behaviors  map[string]ScriptedBehavior
	calls      []ScriptedCall
	connected  bool
}

// NewScriptedInvoker creates a scripted invoker exposing the given
// operations.
func NewScriptedInvoker(operations []DiscoveredOperation) *ScriptedInvoker {
	return &ScriptedInvoker{
		operations: operations,
		behaviors:  make(map[string]ScriptedBehavior),
	}
}

// Script sets the behavior for one command id.
func (s *ScriptedInvoker) Script(id string, behavior ScriptedBehavior) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.behaviors[id] = behavior
}

// Calls returns the Invoke calls recorded so far.
func (s *ScriptedInvoker) Calls() []ScriptedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ScriptedCall, len(s.calls))
	copy(out, s.calls)
	return out
}

// Connect marks the invoker connected.
func (s *ScriptedInvoker) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
	return nil
}

// Close marks the invoker disconnected.
func (s *ScriptedInvoker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	return nil
}

// ListOperations returns the scripted operation set.
func (s *ScriptedInvoker) ListOperations(ctx context.Context) ([]DiscoveredOperation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return nil, fmt.Errorf("host not connected")
	}
	out := make([]DiscoveredOperation, len(s.operations))
	copy(out, s.operations)
	return out, nil
}

// Invoke answers from the script.
func (s *ScriptedInvoker) Invoke(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return nil, fmt.Errorf("host not connected")
	}
	s.calls = append(s.calls, ScriptedCall{ID: id, Args: args})
	behavior, ok := s.behaviors[id]
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("command %s is not scripted", id)
	}

	if behavior.Delay > 0 {
		select {
		case <-time.After(behavior.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if behavior.Err != nil {
		return nil, behavior.Err
	}
	return behavior.Result, nil
}
