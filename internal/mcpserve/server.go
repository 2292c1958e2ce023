package mcpserve

import (
	"context"
	"fmt"
	"os"
	"sync"

	"assay/internal/api"
	"assay/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "assay"
	serverVersion = "1.0.0"
)

// Server exposes the provider's tools over MCP stdio.
type Server struct {
	provider *Provider

	server      *mcpserver.MCPServer
	stdioServer *mcpserver.StdioServer

	// Lifecycle management
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.RWMutex

	done chan error
}

// NewServer creates an MCP server around the given provider.
func NewServer(provider *Provider) *Server {
	return &Server{provider: provider}
}

// Start registers the provider's tools and begins serving on stdio. It
// returns immediately; Done reports when the transport exits.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.server != nil {
		s.mu.Unlock()
		return fmt.Errorf("mcp server already started")
	}

	s.ctx, s.cancelFunc = context.WithCancel(ctx)

	mcpSrv := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(false),
	)
	tools := s.createTools()
	mcpSrv.AddTools(tools...)
	s.server = mcpSrv

	s.stdioServer = mcpserver.NewStdioServer(mcpSrv)
	stdio := s.stdioServer
	serveCtx := s.ctx
	done := make(chan error, 1)
	s.done = done
	s.mu.Unlock()

	api.SubscribeToCatalogUpdates(s)

	logging.Info("MCP", "Serving %d tools over stdio", len(tools))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := stdio.Listen(serveCtx, os.Stdin, os.Stdout)
		if err != nil && serveCtx.Err() == nil {
			logging.Error("MCP", err, "Stdio server error")
		}
		done <- err
	}()

	return nil
}

// Stop stops the MCP server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.server == nil {
		s.mu.Unlock()
		return fmt.Errorf("mcp server not started")
	}
	cancelFunc := s.cancelFunc
	s.mu.Unlock()

	logging.Info("MCP", "Stopping MCP server")

	// The stdio transport stops on context cancellation, there is no
	// explicit shutdown call.
	if cancelFunc != nil {
		cancelFunc()
	}
	s.wg.Wait()

	s.mu.Lock()
	s.server = nil
	s.stdioServer = nil
	s.mu.Unlock()

	return nil
}

// Done returns a channel that receives the transport error once serving
// ends: nil on clean client disconnect, the Listen error otherwise.
func (s *Server) Done() <-chan error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done
}

// OnCatalogUpdated implements api.CatalogUpdateSubscriber. The tool surface
// is static, so a catalog change only warrants a log line; clients observe
// new operations through the listing tools.
func (s *Server) OnCatalogUpdated(event api.CatalogUpdateEvent) {
	logging.Debug("MCP", "Catalog update %s touched %d operations", event.Type, len(event.Operations))
}

// createTools builds the MCP tool registrations from the provider's
// metadata, wrapping each tool's handler in the MCP conversion layer.
func (s *Server) createTools() []mcpserver.ServerTool {
	metas := s.provider.GetTools()
	tools := make([]mcpserver.ServerTool, 0, len(metas))
	for _, meta := range metas {
		tools = append(tools, mcpserver.ServerTool{
			Tool: mcp.Tool{
				Name:        meta.Name,
				Description: meta.Description,
				InputSchema: convertToMCPSchema(meta.Parameters),
			},
			Handler: createToolHandler(s.provider, meta.Name),
		})
	}
	return tools
}
