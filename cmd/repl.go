package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"assay/internal/agent"
	"assay/internal/app"
	"assay/internal/config"
	"assay/internal/mcpserve"
	"assay/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	replDebug      bool
	replVerbose    bool
	replNoColor    bool
	replConfigPath string
	replWorkspace  string
	replHost       string
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive shell against the registry toolkit",
	Long: `Start an interactive shell for exploring the catalog and probing
operations by hand.

The shell talks to the same tool surface that serve exposes over MCP, with
readline editing, history, and tab completion over tool and operation names.

Available commands in the shell:
  list, search, describe       - explore the catalog
  validate, probe              - check arguments and run probes
  results, notes, docs         - inspect results, manage notes, export docs
  help, exit                   - shell housekeeping

Use --verbose to see the full tool traffic and --no-color to disable ANSI
colors.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().BoolVar(&replDebug, "debug", false, "Enable debug logging")
	replCmd.Flags().BoolVar(&replVerbose, "verbose", false, "Show full tool call traffic")
	replCmd.Flags().BoolVar(&replNoColor, "no-color", false, "Disable color output")
	replCmd.Flags().StringVar(&replConfigPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Configuration directory")
	replCmd.Flags().StringVar(&replWorkspace, "workspace", "", "Workspace directory for snapshots and change observation")
	replCmd.Flags().StringVar(&replHost, "host", "", "Host to probe against (http(s) URL or command line), overrides the configured host")
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(replDebug, !replDebug, replConfigPath)
	cfg.Workspace = replWorkspace
	cfg.Host = replHost

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if application.Services().Invoker != nil {
		if err := application.ConnectHost(ctx); err != nil {
			logging.Warn("REPL", "Host unavailable, probes will fail until it returns: %v", err)
		}
	}

	provider := mcpserve.NewProvider(application.Config().Execution, application.Config().Docs)
	logger := agent.NewLogger(replVerbose, !replNoColor)
	session := agent.NewSession(provider, logger)
	repl := agent.NewREPL(session, logger)

	return repl.Run(ctx)
}
