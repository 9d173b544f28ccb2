package events

import "time"

// Kind is the namespaced discriminator of an event type.
type Kind string

func (k Kind) String() string { return string(k) }

// Event is the contract every game event satisfies. Events are immutable
// once constructed.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the kind and emission time shared by all events.
type Base struct {
	kind      Kind
	timestamp time.Time
}

// NewBase creates the embedded base for an event of the given kind.
func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

// Kind reports the event's namespaced kind.
func (b Base) Kind() Kind { return b.kind }

// Timestamp reports when the event was created.
func (b Base) Timestamp() time.Time { return b.timestamp }
