package formatting

import (
	"fmt"
	"io"
)

// JSONFormatter provides JSON output formatting
type JSONFormatter struct {
	options Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(options Options) *JSONFormatter {
	return &JSONFormatter{options: options}
}

// FormatSummary writes s as indented JSON.
func (f *JSONFormatter) FormatSummary(w io.Writer, s Summary) error {
	_, err := fmt.Fprintln(w, PrettyJSON(s))
	return err
}
