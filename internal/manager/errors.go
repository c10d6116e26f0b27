package manager

import (
	"fmt"
	"strings"
)

// UnknownComponentError indicates a remove target that was never declared or
// installed. Only remove produces it; install and declare register names on
// first mention.
type UnknownComponentError struct {
	// Name is the component that could not be found.
	Name string
}

// Error returns a user-friendly error message.
func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("unknown component %s", e.Name)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *UnknownComponentError) Is(target error) bool {
	_, ok := target.(*UnknownComponentError)
	return ok
}

// CyclicDependencyError indicates that installing a component reached a
// component that was already in progress. Dependencies whose install finished
// before the cycle was found stay installed and have already been reported
// with ComponentInstalling; only the components on Path are left untouched.
type CyclicDependencyError struct {
	// Path lists the components from the install target to the repeated one.
	// The first occurrence of the last element marks where the cycle starts.
	Path []string
}

// Error returns a user-friendly error message.
func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency: %s", strings.Join(e.Path, " -> "))
}

// Is allows errors.Is() to work with wrapped errors.
func (e *CyclicDependencyError) Is(target error) bool {
	_, ok := target.(*CyclicDependencyError)
	return ok
}
