// Package events provides the event manager shared by all engine keepers.
// Each operation runs with a Manager in its context; emitted events are
// surfaced after commit for logging and API consumers.
package events

// Attribute is a single key/value pair attached to an event.
type Attribute struct {
	Key   string
	Value string
}

// Event is a typed occurrence emitted by a keeper during an operation.
type Event struct {
	Type       string
	Attributes []Attribute
}

// NewAttribute returns a new event attribute.
func NewAttribute(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// NewEvent constructs an event with the given type and attributes.
func NewEvent(eventType string, attrs ...Attribute) Event {
	return Event{Type: eventType, Attributes: attrs}
}

// Manager collects events emitted during a single operation.
type Manager struct {
	events []Event
}

// NewManager returns an empty event manager.
func NewManager() *Manager {
	return &Manager{}
}

// EmitEvent appends an event to the manager.
func (m *Manager) EmitEvent(event Event) {
	m.events = append(m.events, event)
}

// Events returns all events emitted so far.
func (m *Manager) Events() []Event {
	return m.events
}
