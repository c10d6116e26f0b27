package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"depman/internal/command"
	"depman/internal/events"
	"depman/internal/manager"
	"depman/internal/metrics"
	"depman/pkg/logging"
)

// Result summarizes one run over a command source.
type Result struct {
	// RunID identifies the run in log output.
	RunID string
	// Applied counts commands the manager accepted, including reported no-ops.
	Applied int
	// Rejected counts malformed commands and commands the manager refused.
	Rejected int
	// Stopped is true when an END command ended the source early.
	Stopped bool
}

// Runner feeds commands from a line-oriented source into a manager.
type Runner struct {
	manager *manager.Manager
	sink    events.Sink
	out     io.Writer
	echo    bool
	metrics *metrics.Metrics
}

// Option configures a Runner.
type Option func(*Runner)

// WithEcho prints every command line to out before applying it.
func WithEcho(out io.Writer) Option {
	return func(r *Runner) {
		r.echo = true
		r.out = out
	}
}

// WithMetrics counts every processed command.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// New creates a runner applying commands to m. Rejections are reported as
// CommandRejected events on sink, normally the same sink the manager uses so
// they appear in line with the other notifications.
func New(m *manager.Manager, sink events.Sink, opts ...Option) *Runner {
	if sink == nil {
		sink = events.Discard
	}
	r := &Runner{manager: m, sink: sink, out: io.Discard}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run applies every command read from src, in order. A rejected command is
// reported and processing continues with the next one. Run stops at END, at
// the end of input, on a read error, or when ctx is cancelled between
// commands; only the last two return an error.
func (r *Runner) Run(ctx context.Context, src io.Reader) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	log := logging.With(slog.String("run", res.RunID))

	sc := command.NewScanner(src)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		cmd := sc.Command()
		if r.echo {
			fmt.Fprintln(r.out, cmd.Line)
		}

		err := sc.Err()
		if err == nil {
			err = r.manager.Apply(cmd)
		}
		if r.metrics != nil {
			r.metrics.ObserveCommand(string(cmd.Keyword), err)
		}
		if err != nil {
			res.Rejected++
			r.reject(log, cmd, err)
			continue
		}

		res.Applied++
		if cmd.Keyword == command.KeywordEnd {
			res.Stopped = true
			break
		}
	}

	if err := sc.ReadErr(); err != nil {
		return res, fmt.Errorf("failed to read commands: %w", err)
	}

	log.Info("Runner", "Run finished: %d applied, %d rejected", res.Applied, res.Rejected)
	return res, nil
}

// RunFile opens path and runs it. "-" reads standard input.
func (r *Runner) RunFile(ctx context.Context, path string) (Result, error) {
	if path == "-" {
		return r.Run(ctx, os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, fmt.Errorf("file %s not found", path)
		}
		return Result{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	logging.Info("Runner", "Running commands from %s", path)
	return r.Run(ctx, f)
}

func (r *Runner) reject(log *logging.Logger, cmd command.Command, err error) {
	log.Warn("Runner", "Line %d rejected: %v", cmd.LineNo, err)
	r.sink.Emit(events.Event{
		Reason: events.ReasonCommandRejected,
		Data: events.EventData{
			Name:  cmd.Target(),
			Error: err.Error(),
			Line:  cmd.LineNo,
		},
	})
}
