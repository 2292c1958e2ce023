package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assay/internal/app"
	"assay/internal/bridge"
	"assay/internal/config"
	"assay/internal/mcpserve"
	"assay/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	serveDebug      bool
	serveConfigPath string
	serveWorkspace  string
	serveHost       string
	serveBridgePort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the registry toolkit over MCP stdio",
	Long: `Serve the assay tool surface over MCP stdio so AI assistants and other
MCP clients can drive discovery, research, probing, and documentation
generation.

The served tools are:
  assay_operation_list      - list catalog operations
  assay_operation_describe  - full record of one operation
  assay_operation_search    - full-text search over the catalog
  assay_operation_validate  - check arguments against the merged signature
  assay_operation_execute   - probe an operation through the safety rails
  assay_result_list         - recorded probe results
  assay_note_save           - save a manual research note
  assay_note_delete         - delete a manual research note
  assay_docs_generate       - generate and export the documentation package

Stdout carries the MCP transport; logs go to stderr. The process runs until
the client disconnects or it receives an interrupt.

With --bridge-port, the websocket bridge serves the remote invocation
protocol on that port alongside the stdio transport.

Configuration is loaded from config.yaml in the configuration directory.
A configured host is connected at startup when present; without one, the
catalog, note, result, and docs tools still work against local state.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Configuration directory")
	serveCmd.Flags().StringVar(&serveWorkspace, "workspace", "", "Workspace directory for snapshots and change observation")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to probe against (http(s) URL or command line), overrides the configured host")
	serveCmd.Flags().IntVar(&serveBridgePort, "bridge-port", 0, "Also serve the websocket bridge on this port (0 disables it)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Stdout belongs to the MCP stdio transport; logs go to stderr.
	cfg := app.NewConfig(serveDebug, false, serveConfigPath)
	cfg.Workspace = serveWorkspace
	cfg.Host = serveHost

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A host connection is optional here: the catalog, note, result, and
	// docs tools work against local state without one.
	if application.Services().Invoker != nil {
		if err := application.ConnectHost(ctx); err != nil {
			logging.Warn("Serve", "Host unavailable, probes will fail until it returns: %v", err)
		}
	}

	provider := mcpserve.NewProvider(application.Config().Execution, application.Config().Docs)
	server := mcpserve.NewServer(provider)
	if err := server.Start(ctx); err != nil {
		return err
	}

	var bridgeServer *bridge.Server
	if serveBridgePort > 0 {
		bridgeServer = bridge.NewServer(bridge.Config{
			Port:     serveBridgePort,
			Defaults: application.Config().Execution,
		})
		if err := bridgeServer.Start(ctx); err != nil {
			shutdownServe(server, nil)
			return err
		}
	}

	var serveErr error
	select {
	case <-ctx.Done():
		// Interrupt, shut down cleanly
	case err := <-server.Done():
		// nil means the client disconnected cleanly
		serveErr = err
	}

	shutdownServe(server, bridgeServer)
	return serveErr
}

// shutdownServe stops the transports with a bounded grace period.
func shutdownServe(server *mcpserve.Server, bridgeServer *bridge.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if bridgeServer != nil {
		if err := bridgeServer.Stop(shutdownCtx); err != nil {
			logging.Warn("Serve", "Bridge shutdown: %v", err)
		}
	}
	if err := server.Stop(shutdownCtx); err != nil {
		logging.Warn("Serve", "MCP shutdown: %v", err)
	}
}
