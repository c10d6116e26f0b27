package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// MaxLineLength is the longest line, in bytes, the scanner parses. Longer
// lines are reported as invalid commands and skipped.
const MaxLineLength = 1 << 20

// Scanner reads commands from a line-oriented source, one command per line.
//
// Blank lines and comments are skipped. A malformed or over-long line does
// not stop the scan: Scan returns true and Err reports the
// InvalidCommandError for that line, so the caller can report it and carry
// on. Read errors stop the scan and are returned by ReadErr.
type Scanner struct {
	r       *bufio.Reader
	lineNo  int
	current Command
	err     error
	readErr error
}

// NewScanner returns a scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// Scan advances to the next command. It returns false at the end of input or
// on a read error.
func (sc *Scanner) Scan() bool {
	for {
		line, tooLong, err := sc.readLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				sc.readErr = err
			}
			return false
		}
		sc.lineNo++

		if tooLong {
			sc.current = Command{LineNo: sc.lineNo}
			sc.err = &InvalidCommandError{Reason: fmt.Sprintf("line longer than %d bytes", MaxLineLength)}
			return true
		}

		cmd, err := Parse(line)
		if errors.Is(err, ErrEmptyLine) {
			continue
		}
		cmd.Line = line
		cmd.LineNo = sc.lineNo
		sc.current = cmd
		sc.err = err
		return true
	}
}

// readLine returns the next line without its line ending. A line over
// MaxLineLength is consumed to its end and reported as tooLong with no text.
func (sc *Scanner) readLine() (line string, tooLong bool, err error) {
	var buf []byte
	for {
		frag, isPrefix, err := sc.r.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong {
			if len(buf)+len(frag) > MaxLineLength {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, frag...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// Command returns the most recent command. When Err is set only Line and
// LineNo are populated.
func (sc *Scanner) Command() Command {
	return sc.current
}

// Err returns the parse error of the most recent line, if any.
func (sc *Scanner) Err() error {
	return sc.err
}

// ReadErr returns the first non-EOF read error encountered.
func (sc *Scanner) ReadErr() error {
	return sc.readErr
}
