package host

import (
	"context"
	"fmt"
	"time"

	"assay/pkg/logging"

	"github.com/mark3labs/mcp-go/client"
)

// DefaultStdioConnectTimeout bounds subprocess start plus the MCP
// handshake when the caller's context has no deadline of its own.
const DefaultStdioConnectTimeout = 10 * time.Second

// StdioInvoker talks to a hosting application started as a local
// subprocess communicating over stdin/stdout.
type StdioInvoker struct {
	baseInvoker
	command string
	args    []string
	env     map[string]string
}

// NewStdioInvoker creates an invoker that will spawn the given command.
func NewStdioInvoker(command string, args []string, env map[string]string) *StdioInvoker {
	return &StdioInvoker{
		command: command,
		args:    args,
		env:     env,
	}
}

// Connect starts the subprocess and performs the protocol handshake.
func (s *StdioInvoker) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return nil
	}

	logging.Debug("Host", "Starting host subprocess: %s %v", s.command, s.args)

	var envStrings []string
	for k, v := range s.env {
		envStrings = append(envStrings, fmt.Sprintf("%s=%s", k, v))
	}

	mcpClient, err := client.NewStdioMCPClient(s.command, envStrings, s.args...)
	if err != nil {
		return fmt.Errorf("failed to start host subprocess: %w", err)
	}

	connectCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, DefaultStdioConnectTimeout)
		defer cancel()
	}

	return s.initialize(connectCtx, mcpClient, s.command)
}

// Close shuts down the subprocess connection.
func (s *StdioInvoker) Close() error {
	return s.closeClient()
}

// ListOperations enumerates the host's commands.
func (s *StdioInvoker) ListOperations(ctx context.Context) ([]DiscoveredOperation, error) {
	return s.listOperations(ctx)
}

// Invoke calls one command on the host.
func (s *StdioInvoker) Invoke(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
	return s.invoke(ctx, id, args)
}
