package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"depman/internal/config"
	"depman/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (unreadable file, invalid flags or config).
	ExitCodeError = 1
	// ExitCodeRejected indicates that strict mode was on and at least one command was rejected.
	ExitCodeRejected = 2
)

var (
	// configDir overrides the user configuration directory.
	configDir string
	// debug lowers the log level to debug.
	debug bool
	// cfg is the loaded configuration. It holds the defaults until the root
	// command's pre-run hook has loaded config.yaml.
	cfg = config.GetDefaultConfig()
)

// rootCmd represents the base command for the depman application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "depman",
	Short: "Track component dependencies and install or remove them in order",
	Long: `depman maintains a registry of components and the components they depend on.
It reads DEPEND, INSTALL, REMOVE, LIST and END commands from scripts or an
interactive shell, installs dependencies before their dependents, and removes
dependencies that are no longer needed by anything installed.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage:      true,
	PersistentPreRunE: initialize,
}

// RejectedCommandsError reports that a strict run had rejected commands.
type RejectedCommandsError struct {
	Count int
}

// Error returns a user-friendly error message.
func (e *RejectedCommandsError) Error() string {
	if e.Count == 1 {
		return "1 command was rejected"
	}
	return fmt.Sprintf("%d commands were rejected", e.Count)
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It is called by main.main(). Interrupts cancel the command's context.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "depman version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var rejected *RejectedCommandsError
	if errors.As(err, &rejected) {
		return ExitCodeRejected
	}

	return ExitCodeError
}

// initialize loads the configuration and sets up logging on stderr.
func initialize(cmd *cobra.Command, _ []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.LogLevel()
	if debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())
	logging.Debug("Bootstrap", "Configuration loaded, log level %s", level)
	return nil
}

func loadConfig() (config.DepmanConfig, error) {
	if configDir != "" {
		return config.LoadConfig(configDir)
	}
	return config.LoadDefaultConfig()
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newShellCmd())
	rootCmd.AddCommand(newTestCmd())

	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default is $HOME/.config/depman)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
