// Package logging provides the structured logging used across depman.
//
// It is a thin layer over Go's standard slog package that adds a subsystem
// tag to every entry and printf-style helpers, so call sites stay short:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Config", "Loaded configuration from %s", path)
//	logging.Debug("Manager", "Installing %s (%d dependencies)", name, n)
//	logging.Warn("Runner", "Line %d rejected", lineNo)
//	logging.Error("Runner", err, "Failed to read %s", file)
//
// # Log Levels
//
//   - Debug: traversal details of install and remove
//   - Info: run lifecycle (files opened, commands applied)
//   - Warn: rejected commands and recoverable configuration problems
//   - Error: failures that end a run
//
// Levels can be parsed from configuration with ParseLevel.
//
// # Subsystems
//
// Subsystems in use: Bootstrap, Config, Manager, Runner, Watch, Shell, Metrics.
//
// # Output
//
// Log lines are diagnostics and go to stderr. Component notifications
// ("Installing A", "Removing B") are program output and are written by the
// events package to stdout; they never pass through this package.
//
// With returns a Logger that adds attributes such as the run id to every line
// it writes. Concurrent runs each hold their own Logger.
package logging
