package command

import (
	"errors"
	"fmt"
	"strings"
)

// Keyword identifies the kind of a command.
type Keyword string

const (
	// KeywordDepend declares that a component requires one or more others.
	KeywordDepend Keyword = "DEPEND"
	// KeywordInstall installs a component and its dependency closure.
	KeywordInstall Keyword = "INSTALL"
	// KeywordRemove removes a component and any dependencies it orphans.
	KeywordRemove Keyword = "REMOVE"
	// KeywordList lists installed components.
	KeywordList Keyword = "LIST"
	// KeywordEnd stops processing of the current source.
	KeywordEnd Keyword = "END"
)

// Keywords lists every supported keyword, in the order shown in help output.
var Keywords = []Keyword{KeywordDepend, KeywordInstall, KeywordRemove, KeywordList, KeywordEnd}

// arity describes how many arguments a keyword accepts. max < 0 means unbounded.
type arity struct {
	min, max int
	usage    string
}

var arities = map[Keyword]arity{
	KeywordDepend:  {min: 2, max: -1, usage: "DEPEND component dependency [dependency...]"},
	KeywordInstall: {min: 1, max: 1, usage: "INSTALL component"},
	KeywordRemove:  {min: 1, max: 1, usage: "REMOVE component"},
	KeywordList:    {min: 0, max: 0, usage: "LIST"},
	KeywordEnd:     {min: 0, max: 0, usage: "END"},
}

// Usage returns the usage line for a keyword, or "" for unknown keywords.
func Usage(k Keyword) string {
	return arities[k].usage
}

// ErrEmptyLine is returned by Parse for blank lines and comments.
var ErrEmptyLine = errors.New("empty line")

// Command is one already-tokenized command record.
type Command struct {
	Keyword Keyword
	Args    []string
	// Line is the raw source text, kept for echoing.
	Line string
	// LineNo is the 1-based position in the source, 0 when not read from a source.
	LineNo int
}

// Target returns the first argument, or "" when there is none.
func (c Command) Target() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// String renders the command in canonical form.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return string(c.Keyword)
	}
	return string(c.Keyword) + " " + strings.Join(c.Args, " ")
}

// Validate checks the argument count against the keyword.
func (c Command) Validate() error {
	a, ok := arities[c.Keyword]
	if !ok {
		return &InvalidCommandError{Command: c.String(), Reason: fmt.Sprintf("unknown command %q", c.Keyword)}
	}
	if len(c.Args) < a.min || (a.max >= 0 && len(c.Args) > a.max) {
		return &InvalidCommandError{
			Command: c.String(),
			Reason:  fmt.Sprintf("wrong number of arguments, usage: %s", a.usage),
		}
	}
	for _, arg := range c.Args {
		if arg == "" {
			return &InvalidCommandError{Command: c.String(), Reason: "empty component name"}
		}
	}
	return nil
}

// New builds a validated command from a keyword and arguments.
func New(keyword Keyword, args ...string) (Command, error) {
	c := Command{Keyword: keyword, Args: args}
	if err := c.Validate(); err != nil {
		return Command{}, err
	}
	return c, nil
}

// Parse tokenizes one line. Tokens are separated by any run of whitespace and
// the keyword is matched case-insensitively. Blank lines and lines starting
// with '#' yield ErrEmptyLine.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return Command{}, ErrEmptyLine
	}

	c := Command{
		Keyword: Keyword(strings.ToUpper(fields[0])),
		Args:    fields[1:],
		Line:    strings.TrimRight(line, "\r\n"),
	}
	if err := c.Validate(); err != nil {
		return Command{}, err
	}
	return c, nil
}
