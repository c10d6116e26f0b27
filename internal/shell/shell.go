package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"depman/internal/command"
	"depman/internal/dependency"
	"depman/internal/events"
	"depman/internal/formatting"
	"depman/internal/manager"
	"depman/internal/metrics"
	"depman/internal/runner"
	"depman/pkg/logging"
)

const prompt = "depman> "

// errExit is returned by Execute when the session should end.
var errExit = errors.New("exit")

// Options configures a Shell.
type Options struct {
	// Out receives notifications and shell output. Defaults to os.Stdout.
	Out io.Writer
	// Templates renders notifications. Nil uses the default messages.
	Templates *events.MessageTemplateEngine
	// Indent prefixes every notification line.
	Indent string
	// HistoryFile persists input history between sessions. Empty disables it.
	HistoryFile string
	// Metrics, when set, counts every command entered.
	Metrics *metrics.Metrics
	// Color enables colors in the status table.
	Color bool
}

// Shell is an interactive session over a single component graph.
type Shell struct {
	opts     Options
	sink     events.Sink
	manager  *manager.Manager
	applied  int
	rejected int
}

// New creates a shell with an empty graph.
func New(opts Options) *Shell {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	s := &Shell{opts: opts}
	sinks := events.Fanout{events.NewWriterSink(opts.Out, opts.Templates, opts.Indent)}
	if opts.Metrics != nil {
		sinks = append(sinks, opts.Metrics)
	}
	s.sink = sinks
	s.reset()
	return s
}

// Manager returns the manager of the current session.
func (s *Shell) Manager() *manager.Manager {
	return s.manager
}

func (s *Shell) reset() {
	s.manager = manager.New(dependency.New(), s.sink)
	s.applied, s.rejected = 0, 0
	if s.opts.Metrics != nil {
		s.opts.Metrics.Reset()
	}
}

// Execute handles one line of input. Shell commands (help, status, reset,
// exit) are matched first; anything else is parsed and applied as a
// component command. A rejected command is reported on the output and is
// not an error.
func (s *Shell) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "help", "?":
		s.printHelp(fields[1:])
		return nil
	case "status":
		return s.printStatus()
	case "reset":
		s.reset()
		fmt.Fprintln(s.opts.Out, "Started a fresh session.")
		return nil
	case "exit", "quit":
		return errExit
	}

	cmd, err := command.Parse(line)
	if err == nil {
		err = s.manager.Apply(cmd)
	}
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveCommand(string(cmd.Keyword), err)
	}
	if err != nil {
		s.rejected++
		logging.Debug("Shell", "Rejected %q: %v", line, err)
		s.sink.Emit(events.Event{
			Reason: events.ReasonCommandRejected,
			Data:   events.EventData{Name: cmd.Target(), Error: err.Error()},
		})
		return nil
	}

	s.applied++
	if cmd.Keyword == command.KeywordEnd {
		return errExit
	}
	return nil
}

func (s *Shell) printHelp(args []string) {
	out := s.opts.Out
	if len(args) > 0 {
		k := command.Keyword(strings.ToUpper(args[0]))
		if usage := command.Usage(k); usage != "" {
			fmt.Fprintf(out, "Usage: %s\n", usage)
			return
		}
		fmt.Fprintf(out, "No help for %q. Type 'help' for available commands.\n", args[0])
		return
	}

	fmt.Fprintln(out, "Component commands:")
	for _, k := range command.Keywords {
		fmt.Fprintf(out, "  %s\n", command.Usage(k))
	}
	fmt.Fprintln(out, "Shell commands:")
	fmt.Fprintln(out, "  help [COMMAND]   show usage")
	fmt.Fprintln(out, "  status           show every known component")
	fmt.Fprintln(out, "  reset            forget all components and start over")
	fmt.Fprintln(out, "  exit, quit       leave the shell")
}

func (s *Shell) printStatus() error {
	summary := formatting.NewSummary("shell", runner.Result{
		Applied:  s.applied,
		Rejected: s.rejected,
	}, s.manager.Snapshot())
	return formatting.NewTableFormatter(formatting.Options{Color: s.opts.Color}).FormatSummary(s.opts.Out, summary)
}

// Run reads lines until exit, END, end of input or cancellation of ctx.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     s.opts.HistoryFile,
		AutoComplete:    s.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          s.opts.Out,

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()

	logging.Info("Shell", "Session started")
	fmt.Fprintln(s.opts.Out, "Type 'help' for available commands. Use TAB for completion.")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		if err := s.Execute(line); err != nil {
			if errors.Is(err, errExit) {
				logging.Info("Shell", "Session ended: %d applied, %d rejected", s.applied, s.rejected)
				return nil
			}
			logging.Error("Shell", err, "Command failed")
		}
	}
}

// filterInput blocks Ctrl+Z, which would suspend the process mid-line.
func filterInput(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}
