package cmd

import (
	"errors"
	"os"

	"assay/internal/api"
	"assay/internal/cli"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeValidationFailed indicates argument validation rejected a probe.
	ExitCodeValidationFailed = 2
	// ExitCodeConfirmationRequired indicates a destructive operation was
	// refused because it was not confirmed.
	ExitCodeConfirmationRequired = 3
)

// rootCmd represents the base command for the assay application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "assay",
	Short: "Explore, probe, and document a host application's command registry",
	Long: `assay discovers the commands a hosting application exposes, researches
their calling conventions, probes them safely against a workspace, and
generates an integration documentation package from what it learned.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	// This is useful for providing cleaner error output to the user.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
// This can be used by other commands to access the build version.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles subcommands and flags.
// This function is called by main.main().
func Execute() {
	// SetVersionTemplate defines a custom template for displaying the version.
	// This is used when the --version flag is invoked.
	rootCmd.SetVersionTemplate(`{{printf "assay version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Check for specific error types and return appropriate exit codes
		exitCode := getExitCode(err)
		os.Exit(exitCode)
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var validationFailed *cli.ValidationFailedError
	if errors.As(err, &validationFailed) {
		return ExitCodeValidationFailed
	}

	var confirmationRequired *api.ConfirmationRequiredError
	if errors.As(err, &confirmationRequired) {
		return ExitCodeConfirmationRequired
	}

	// Default to general error
	return ExitCodeError
}

// init is a special Go function that is executed when the package is initialized.
// It is used here to add subcommands to the root command. Commands with their
// own flag state register themselves in their file's init function.
func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
