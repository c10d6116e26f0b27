// Package events defines the notifications depman produces while applying
// commands and renders them to text.
//
// Every notification is an Event carrying an EventReason and the EventData
// used by its message template. The manager only ever emits events; turning
// them into lines is the job of a Sink:
//
//   - WriterSink renders through a MessageTemplateEngine and writes one line per event
//   - Recorder keeps events in memory, used by tests and the interactive shell
//   - Fanout forwards to several sinks, e.g. output plus metrics
//
// # Event Reasons
//
//   - ComponentInstalling, ComponentRemoving: the installed flag changed
//   - ComponentAlreadyInstalled, ComponentNotInstalled, ComponentStillNeeded:
//     a command was a reported no-op
//   - ComponentListed: one installed component reported by LIST
//   - CommandRejected: a command could not be applied
//
// # Templates
//
// Templates use text/template with the sprig function map. The defaults match
// the classic output ("Installing A", "B is still needed."); each can be
// replaced through configuration:
//
//	output:
//	  messages:
//	    ComponentInstalling: "+ {{.Name}}"
//	    ComponentRemoving: "- {{.Name | upper}}"
package events
