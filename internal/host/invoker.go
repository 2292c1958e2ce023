package host

import (
	"context"
)

// DiscoveredParameter is one parameter hint reported by the hosting
// application for a command, as typed as the host's schema allows.
type DiscoveredParameter struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Default     interface{}
	Enum        []string
}

// DiscoveredOperation is one command reported by the hosting application
// during live discovery.
type DiscoveredOperation struct {
	ID          string
	Description string
	Parameters  []DiscoveredParameter
}

// Invoker is the call interface to a hosting application. Implementations
// wrap a transport (stdio subprocess, streamable-http URL) or a canned
// script for offline use; callers never see transport details.
type Invoker interface {
	// Connect establishes the connection and performs any handshake.
	Connect(ctx context.Context) error
	// Close shuts the connection down.
	Close() error
	// ListOperations enumerates the commands the host exposes.
	ListOperations(ctx context.Context) ([]DiscoveredOperation, error)
	// Invoke calls one command with the given arguments and returns the
	// host's result. An error return means the call did not succeed on
	// the host side; it says nothing about side effects already applied.
	Invoke(ctx context.Context, id string, args map[string]interface{}) (interface{}, error)
}
