package formatting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	pkgstrings "depman/pkg/strings"
)

var summaryHeader = table.Row{"Name", "Installed", "Dependencies", "Dependents"}

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) *TableFormatter {
	return &TableFormatter{options: options}
}

// FormatSummary renders one row per component with a caption carrying the
// command counts.
func (f *TableFormatter) FormatSummary(w io.Writer, s Summary) error {
	t := f.createTable()
	if !f.options.NoHeaders {
		t.AppendHeader(summaryHeader)
	}
	for _, c := range s.Components {
		t.AppendRow(table.Row{
			f.name(c),
			f.installed(c.Installed),
			truncatedOrDash(c.Dependencies),
			truncatedOrDash(c.Dependents),
		})
	}
	t.SetCaption("%s", f.caption(s))

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	style := table.StyleRounded
	if f.options.Color {
		style.Color.Header = text.Colors{text.FgHiCyan}
	}
	t.SetStyle(style)
	return t
}

func (f *TableFormatter) name(c Component) string {
	if f.options.Color && c.Installed {
		return text.Bold.Sprint(c.Name)
	}
	return c.Name
}

func (f *TableFormatter) installed(installed bool) string {
	switch {
	case !f.options.Color:
		return yesNo(installed)
	case installed:
		return text.FgGreen.Sprint("✓ yes")
	default:
		return text.FgHiBlack.Sprint("✗ no")
	}
}

func (f *TableFormatter) caption(s Summary) string {
	caption := fmt.Sprintf("%d of %d installed, %d commands applied, %d rejected",
		s.InstalledCount(), len(s.Components), s.Applied, s.Rejected)
	if f.options.Color && s.Rejected > 0 {
		return text.FgYellow.Sprint(caption)
	}
	return caption
}

// PlainFormatter writes kubectl-style columns without box-drawing characters,
// suitable for copy and paste or piping into grep, awk and cut.
type PlainFormatter struct {
	options Options
}

// NewPlainFormatter creates a new plain formatter
func NewPlainFormatter(options Options) *PlainFormatter {
	return &PlainFormatter{options: options}
}

// FormatSummary renders one line per component.
func (f *PlainFormatter) FormatSummary(w io.Writer, s Summary) error {
	t := table.NewWriter()
	t.SetStyle(plainStyle())
	if !f.options.NoHeaders {
		t.AppendHeader(summaryHeader)
	}
	for _, c := range s.Components {
		t.AppendRow(table.Row{c.Name, yesNo(c.Installed), joinOrDash(c.Dependencies), joinOrDash(c.Dependents)})
	}
	if len(s.Components) == 0 && f.options.NoHeaders {
		return nil
	}

	for _, line := range strings.Split(t.Render(), "\n") {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func plainStyle() table.Style {
	style := table.StyleDefault
	style.Name = "Plain"
	style.Options = table.OptionsNoBordersAndSeparators
	style.Box.PaddingLeft = ""
	style.Box.PaddingRight = "   "
	style.Format.Header = text.FormatUpper
	return style
}

// truncatedOrDash keeps long name lists from stretching the table.
func truncatedOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return pkgstrings.JoinTruncated(names, ",", pkgstrings.DefaultListMaxLen)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
