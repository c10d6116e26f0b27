package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TextReporter prints one line per finished scenario and a closing summary.
type TextReporter struct {
	out     io.Writer
	verbose bool
	color   bool
}

// NewTextReporter creates a reporter writing to out. Verbose also prints the
// output of failed scenarios.
func NewTextReporter(out io.Writer, verbose, color bool) *TextReporter {
	return &TextReporter{out: out, verbose: verbose, color: color}
}

// ReportScenarioResult prints the outcome of one scenario.
func (r *TextReporter) ReportScenarioResult(res ScenarioResult) {
	fmt.Fprintf(r.out, "%s %s (%s)\n", r.badge(res.Result), res.Scenario.Name, res.Duration.Round(time.Microsecond))

	if res.Error != "" {
		fmt.Fprintf(r.out, "    error: %s\n", res.Error)
	}
	for _, f := range res.Failures {
		fmt.Fprintf(r.out, "    %s\n", strings.ReplaceAll(f, "\n", "\n    "))
	}
	if r.verbose && res.Result == ResultFailed && len(res.Output) > 0 {
		fmt.Fprintln(r.out, "    output:")
		for _, line := range res.Output {
			fmt.Fprintf(r.out, "      %s\n", line)
		}
	}
}

// ReportSuite prints the totals as a table.
func (r *TextReporter) ReportSuite(suite SuiteResult) {
	t := table.NewWriter()
	style := table.StyleRounded
	if r.color {
		style.Color.Header = text.Colors{text.FgHiCyan}
	}
	t.SetStyle(style)
	t.AppendHeader(table.Row{"Total", "Passed", "Failed", "Errors", "Skipped", "Duration"})
	t.AppendRow(table.Row{suite.Total, suite.Passed, suite.Failed, suite.Errors, suite.Skipped, suite.Duration.Round(time.Millisecond)})

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, t.Render())
}

func (r *TextReporter) badge(result Result) string {
	label := fmt.Sprintf("%-7s", result)
	if !r.color {
		return label
	}
	switch result {
	case ResultPassed:
		return text.FgGreen.Sprint(label)
	case ResultFailed, ResultError:
		return text.FgRed.Sprint(label)
	default:
		return text.FgYellow.Sprint(label)
	}
}

// WriteReport saves suite as indented JSON.
func WriteReport(path string, suite SuiteResult) error {
	data, err := json.MarshalIndent(suite, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
