package command

import "fmt"

// InvalidCommandError indicates a malformed command: an unknown keyword, a
// wrong number of arguments or an empty component name.
type InvalidCommandError struct {
	// Command is the offending command in canonical form.
	Command string
	// Reason describes what is wrong with it.
	Reason string
}

// Error returns a user-friendly error message.
func (e *InvalidCommandError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("invalid command: %s", e.Reason)
	}
	return fmt.Sprintf("invalid command %q: %s", e.Command, e.Reason)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *InvalidCommandError) Is(target error) bool {
	_, ok := target.(*InvalidCommandError)
	return ok
}
