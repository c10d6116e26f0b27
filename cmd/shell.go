package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"depman/internal/metrics"
	"depman/internal/shell"
)

func newShellCmd() *cobra.Command {
	var (
		noHistory   bool
		color       bool
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Start an interactive session over an empty component graph.

Type component commands (DEPEND, INSTALL, REMOVE, LIST, END) one per line and
see their notifications immediately. The shell also understands help, status,
reset and exit. Use TAB to complete keywords and component names.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := cfg.MessageEngine()
			if err != nil {
				return err
			}

			opts := shell.Options{
				Out:       cmd.OutOrStdout(),
				Templates: templates,
				Indent:    cfg.Output.Indent,
				Color:     color || term.IsTerminal(int(os.Stdout.Fd())),
			}
			if !noHistory {
				opts.HistoryFile = filepath.Join(os.TempDir(), ".depman_history")
			}
			if metricsFile != "" {
				opts.Metrics = metrics.New()
			}

			if err := shell.New(opts).Run(cmd.Context()); err != nil {
				return err
			}
			if opts.Metrics != nil {
				return opts.Metrics.WriteTextfile(metricsFile)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not read or write the history file")
	cmd.Flags().BoolVar(&color, "color", false, "Use colors in the status table even when stdout is not a terminal")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file when the session ends")

	return cmd
}
