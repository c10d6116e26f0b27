package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"depman/internal/dependency"
	"depman/internal/events"
	"depman/internal/formatting"
	"depman/internal/manager"
	"depman/internal/metrics"
	"depman/internal/runner"
	"depman/pkg/logging"
)

// runOptions holds the flag values of the run command.
type runOptions struct {
	noEcho      bool
	summary     bool
	output      string
	noHeaders   bool
	color       bool
	metricsFile string
	watch       bool
	strict      bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run FILE...",
		Short: "Run command scripts",
		Long: `Run one or more command scripts against a single component graph.

Each script holds one command per line:

  DEPEND component dependency [dependency...]
  INSTALL component
  REMOVE component
  LIST
  END

Every line is echoed before its notifications. A rejected command is reported
and the script carries on with the next line. END stops the current script.
Use - to read commands from standard input.`,
		Example: `  depman run session.txt
  depman run --summary -o plain base.txt session.txt
  cat session.txt | depman run --no-echo -
  depman run --watch --metrics-file /var/lib/node_exporter/depman.prom session.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripts(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noEcho, "no-echo", false, "Do not echo command lines")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print a summary of every component after the run")
	cmd.Flags().StringVarP(&opts.output, "output", "o", string(formatting.FormatTable), "Summary format (table, plain, json, yaml)")
	cmd.Flags().BoolVar(&opts.noHeaders, "no-headers", false, "Suppress the header row in table and plain summaries")
	cmd.Flags().BoolVar(&opts.color, "color", false, "Use colors in the summary table")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after every run")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Re-run the script on a fresh graph whenever it changes")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit with code 2 when any command is rejected")

	return cmd
}

func runScripts(ctx context.Context, out io.Writer, paths []string, opts *runOptions) error {
	format, err := formatting.ParseFormat(opts.output)
	if err != nil {
		return err
	}
	formatter, err := formatting.NewFormatter(formatting.Options{
		Format:    format,
		NoHeaders: opts.noHeaders,
		Color:     opts.color,
	})
	if err != nil {
		return err
	}

	if opts.watch {
		if len(paths) != 1 || paths[0] == "-" {
			return fmt.Errorf("--watch needs exactly one file")
		}
		return watchScript(ctx, out, paths[0], opts, formatter)
	}

	res, err := runOnce(ctx, out, paths, opts, formatter, metrics.New())
	if err != nil {
		return err
	}
	if res.Rejected > 0 && (opts.strict || cfg.Run.Strict) {
		return &RejectedCommandsError{Count: res.Rejected}
	}
	return nil
}

// runOnce runs paths in order against a fresh graph and returns the totals.
func runOnce(ctx context.Context, out io.Writer, paths []string, opts *runOptions, formatter formatting.Formatter, mx *metrics.Metrics) (runner.Result, error) {
	templates, err := cfg.MessageEngine()
	if err != nil {
		return runner.Result{}, err
	}

	sink := events.Fanout{events.NewWriterSink(out, templates, cfg.Output.Indent), mx}
	m := manager.New(dependency.New(), sink)

	runOpts := []runner.Option{runner.WithMetrics(mx)}
	if cfg.Output.EchoCommands && !opts.noEcho {
		runOpts = append(runOpts, runner.WithEcho(out))
	}
	r := runner.New(m, sink, runOpts...)

	var total runner.Result
	for _, path := range paths {
		res, err := r.RunFile(ctx, path)
		total.RunID = res.RunID
		total.Applied += res.Applied
		total.Rejected += res.Rejected
		total.Stopped = res.Stopped
		if err != nil {
			return total, err
		}
	}

	if opts.summary {
		source := paths[0]
		if len(paths) > 1 {
			source = fmt.Sprintf("%s (+%d more)", paths[0], len(paths)-1)
		}
		summary := formatting.NewSummary(source, total, m.Snapshot())
		if err := formatter.FormatSummary(out, summary); err != nil {
			return total, fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if opts.metricsFile != "" {
		if err := mx.WriteTextfile(opts.metricsFile); err != nil {
			return total, err
		}
		logging.Debug("Metrics", "Wrote metrics to %s", opts.metricsFile)
	}

	return total, nil
}

// watchScript re-runs path on every change until ctx is cancelled. Rejected
// commands never end the watch, even in strict mode.
func watchScript(ctx context.Context, out io.Writer, path string, opts *runOptions, formatter formatting.Formatter) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file %s not found", path)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Waiting for changes to " + path
	defer s.Stop()

	mx := metrics.New()
	first := true
	return runner.Watch(ctx, path, runner.DefaultDebounceInterval, func(ctx context.Context, target string) error {
		s.Stop()
		defer s.Start()

		if !first {
			fmt.Fprintln(out)
		}
		first = false

		mx.Reset()
		res, err := runOnce(ctx, out, []string{target}, opts, formatter, mx)
		if err != nil {
			return err
		}
		logging.Info("Watch", "Run %s finished: %d applied, %d rejected", res.RunID, res.Applied, res.Rejected)
		return nil
	})
}
