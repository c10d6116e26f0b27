// Package command turns text into command records for the dependency manager.
//
// A command source is line oriented, one command per line, tokens separated
// by whitespace:
//
//	DEPEND TELNET TCPIP NETCARD
//	INSTALL TELNET
//	REMOVE NETCARD
//	LIST
//	END
//
// Keywords are case-insensitive, component names are kept verbatim. Blank
// lines and lines starting with '#' are ignored. Shape errors (unknown keyword,
// wrong number of arguments) are reported as *InvalidCommandError before a
// command ever reaches the manager.
package command
