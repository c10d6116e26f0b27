// Package manager implements the dependency manager: declaring dependencies,
// installing a component together with its dependency closure, and removing a
// component together with the dependencies it leaves orphaned.
//
// # Install
//
// Install is a depth-first, post-order walk over the dependency graph with
// memoisation through the installed flag. Dependencies are visited in name
// order. A component is marked installed, and reported, only after every one
// of its dependencies is installed. The walk uses an explicit stack so deep
// graphs do not grow the goroutine stack, and it keeps the set of components
// currently on the path to detect cycles.
//
// # Remove
//
// A component can only be removed when no installed component depends on it.
// After removal its direct dependencies are swept: each one no longer needed
// by an installed component is removed as well, and the sweep continues depth
// first through its own dependencies. An orphan that is not installed, such
// as one already removed through another path, is reported as not installed.
//
// # Notifications
//
// Every visible outcome is an events.Event sent to the manager's sink:
//
//	DEPEND A B, DEPEND B C, INSTALL A  ->  Installing C, Installing B, Installing A
//	REMOVE A                           ->  Removing A, Removing B, Removing C
//
// # Errors
//
//   - *command.InvalidCommandError: malformed command or empty names
//   - *UnknownComponentError: REMOVE of a name never seen
//   - *CyclicDependencyError: INSTALL reached a component already in progress
//
// None of these affect later commands.
package manager
