package host

import (
	"context"
	"fmt"

	"assay/pkg/logging"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"golang.org/x/oauth2"
)

// HTTPInvoker talks to a hosting application over the streamable-http
// transport. An optional bearer token authenticates the connection.
type HTTPInvoker struct {
	baseInvoker
	url   string
	token string
}

// NewHTTPInvoker creates an invoker for a streamable-http endpoint.
// token may be empty for unauthenticated hosts.
func NewHTTPInvoker(url, token string) *HTTPInvoker {
	return &HTTPInvoker{
		url:   url,
		token: token,
	}
}

// Connect establishes the connection and performs the protocol handshake.
func (h *HTTPInvoker) Connect(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.connected {
		return nil
	}

	logging.Debug("Host", "Connecting to host at %s", h.url)

	var opts []transport.StreamableHTTPCOption
	if h.token != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: h.token,
			TokenType:   "Bearer",
		})
		opts = append(opts, transport.WithHTTPBasicClient(oauth2.NewClient(ctx, source)))
		logging.Debug("Host", "Using bearer token authentication for %s", h.url)
	}

	mcpClient, err := client.NewStreamableHttpClient(h.url, opts...)
	if err != nil {
		return fmt.Errorf("failed to create host client: %w", err)
	}

	return h.initialize(ctx, mcpClient, h.url)
}

// Close shuts down the connection.
func (h *HTTPInvoker) Close() error {
	return h.closeClient()
}

// ListOperations enumerates the host's commands.
func (h *HTTPInvoker) ListOperations(ctx context.Context) ([]DiscoveredOperation, error) {
	return h.listOperations(ctx)
}

// Invoke calls one command on the host.
func (h *HTTPInvoker) Invoke(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
	return h.invoke(ctx, id, args)
}

// Compile-time interface compliance checks
var (
	_ Invoker = (*StdioInvoker)(nil)
	_ Invoker = (*HTTPInvoker)(nil)
	_ Invoker = (*ScriptedInvoker)(nil)
)
