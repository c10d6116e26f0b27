// Package shell provides the interactive depman session.
//
// A Shell owns one component graph for its whole lifetime (until reset) and
// applies each input line the same way a script line is applied: notifications
// are printed as they happen, a rejected command is reported and the session
// carries on. A few lower-case shell commands are layered on top:
//
//	help [COMMAND]   usage of all or one component command
//	status           summary table of every known component
//	reset            start over with an empty graph
//	exit, quit       leave (END does the same)
//
// Tab completion offers keywords, shell commands and component names read
// from the live graph; REMOVE only offers installed components.
package shell
