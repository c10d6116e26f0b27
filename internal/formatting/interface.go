// Package formatting renders run summaries for the depman CLI.
//
// A summary is the final state of the component graph after a run, plus the
// run's command counts. It can be rendered as a rounded table for humans, as
// kubectl-style plain columns for piping into grep and awk, or as JSON or
// YAML for other tools.
package formatting

import (
	"fmt"
	"io"
	"strings"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Rich table output
	FormatPlain OutputFormat = "plain" // Borderless columns
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
)

// Formats lists the supported formats in the order shown in help output.
var Formats = []OutputFormat{FormatTable, FormatPlain, FormatJSON, FormatYAML}

// Options configures the formatter behavior
type Options struct {
	Format    OutputFormat
	NoHeaders bool // Suppress the header row in table and plain output
	Color     bool // Enable colored output
}

// Formatter writes a summary to w.
type Formatter interface {
	FormatSummary(w io.Writer, s Summary) error
}

// ParseFormat validates a format name. The empty string selects the table format.
func ParseFormat(name string) (OutputFormat, error) {
	if name == "" {
		return FormatTable, nil
	}
	format := OutputFormat(strings.ToLower(name))
	for _, f := range Formats {
		if f == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q (supported: %s)", name, formatList())
}

// NewFormatter creates the formatter for options.Format.
func NewFormatter(options Options) (Formatter, error) {
	switch options.Format {
	case FormatTable, "":
		return NewTableFormatter(options), nil
	case FormatPlain:
		return NewPlainFormatter(options), nil
	case FormatJSON:
		return NewJSONFormatter(options), nil
	case FormatYAML:
		return NewYAMLFormatter(options), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (supported: %s)", options.Format, formatList())
	}
}

func formatList() string {
	names := make([]string, 0, len(Formats))
	for _, f := range Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
