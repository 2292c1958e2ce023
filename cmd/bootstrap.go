package cmd

import (
	"context"

	"assay/internal/app"
	"assay/internal/cli"
	"assay/internal/mcpserve"

	"github.com/spf13/cobra"
)

// bootstrapApp loads configuration, initializes the component set, and
// builds the tool runner commands execute through. Callers own the returned
// application and must Close it. hostOverride replaces the configured host
// target when non-empty.
func bootstrapApp(flags *cli.CommandFlags, hostOverride string) (*app.Application, *cli.ToolRunner, error) {
	options, err := flags.ToRunnerOptions()
	if err != nil {
		return nil, nil, err
	}

	// Machine-readable output keeps the log stream quiet too, unless
	// debugging was asked for explicitly.
	silent := !flags.Debug &&
		(options.Quiet || options.Format == cli.OutputFormatJSON || options.Format == cli.OutputFormatYAML)

	cfg := app.NewConfig(flags.Debug, silent, flags.ConfigPath)
	cfg.Workspace = flags.Workspace
	cfg.Host = hostOverride

	application, err := app.NewApplication(cfg)
	if err != nil {
		return nil, nil, err
	}

	provider := mcpserve.NewProvider(application.Config().Execution, application.Config().Docs)
	runner := cli.NewToolRunner(provider, options)
	return application, runner, nil
}

// commandContext returns the command's context, falling back to the
// background context when cobra was driven without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
