// Event is the immutable record of one successful model command.
//
// The editor emits an Event after every command that changed the model so
// observers (change feeds, loggers, the CLI) can follow along without
// holding a reference to the model itself.
//
// # Immutability
//
// Event fields are exported for convenience in read-only contexts, but
// consumers MUST NOT modify them after construction.
//
// Example:
//
//	event := NewEvent("state.rename", EntityState, "q1", "q0")
package primitives

type Event struct {
	Type   string
	Entity EntityType
	Label  string
	Data   any
}

// NewEvent creates and returns a new immutable Event.
func NewEvent(eventType string, entity EntityType, label string, data any) Event {
	return Event{
		Type:   eventType,
		Entity: entity,
		Label:  label,
		Data:   data,
	}
}
