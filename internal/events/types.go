package events

// EventType represents the severity of a notification.
type EventType string

const (
	// EventTypeNormal indicates a state change or an informational line.
	EventTypeNormal EventType = "Normal"

	// EventTypeWarning indicates a command that was a reported no-op or was rejected.
	EventTypeWarning EventType = "Warning"
)

// EventReason represents the reason code for a notification.
type EventReason string

// Component lifecycle reasons
const (
	// ReasonComponentInstalling indicates a component is being installed. All of
	// its dependencies were installed before this event was emitted.
	ReasonComponentInstalling EventReason = "ComponentInstalling"

	// ReasonComponentAlreadyInstalled indicates an explicit install target was
	// already installed.
	ReasonComponentAlreadyInstalled EventReason = "ComponentAlreadyInstalled"

	// ReasonComponentRemoving indicates a component is being removed, either
	// explicitly or as an orphan of a removed component.
	ReasonComponentRemoving EventReason = "ComponentRemoving"

	// ReasonComponentNotInstalled indicates a remove target was not installed.
	ReasonComponentNotInstalled EventReason = "ComponentNotInstalled"

	// ReasonComponentStillNeeded indicates a remove target has an installed dependent.
	ReasonComponentStillNeeded EventReason = "ComponentStillNeeded"

	// ReasonComponentListed is emitted once per installed component by LIST.
	ReasonComponentListed EventReason = "ComponentListed"
)

// Command reasons
const (
	// ReasonCommandRejected indicates a command could not be applied. Processing
	// continues with the next command.
	ReasonCommandRejected EventReason = "CommandRejected"
)

// AllReasons lists every known reason, in a stable order.
var AllReasons = []EventReason{
	ReasonComponentInstalling,
	ReasonComponentAlreadyInstalled,
	ReasonComponentRemoving,
	ReasonComponentNotInstalled,
	ReasonComponentStillNeeded,
	ReasonComponentListed,
	ReasonCommandRejected,
}

// EventData contains the values available to message templates.
type EventData struct {
	// Name is the component the notification is about.
	Name string
	// Error is the diagnostic of a rejected command.
	Error string
	// Line is the 1-based line of the command in its source, 0 when unknown.
	Line int
}

// Event is a single notification produced while applying a command.
type Event struct {
	Reason EventReason
	Data   EventData
}

// Type returns the severity of the event.
func (e Event) Type() EventType {
	return getEventType(e.Reason)
}

// getEventType determines the event type based on the reason.
func getEventType(reason EventReason) EventType {
	switch reason {
	case ReasonComponentAlreadyInstalled,
		ReasonComponentNotInstalled,
		ReasonComponentStillNeeded,
		ReasonCommandRejected:
		return EventTypeWarning
	default:
		return EventTypeNormal
	}
}
