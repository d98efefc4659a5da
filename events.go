package rigid2d

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yea55/rigid2d/body"
)

const (
	OBJECT_ADDED EventType = iota
	OBJECT_REMOVED
	COLLISION
	CONTACT
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// ObjectAddedEvent announces a body or joint entering the simulation.
// Kind is "body" or "joint"; display layers mirror visual state from
// these without the engine knowing how they are rendered.
type ObjectAddedEvent struct {
	Name string
	Kind string
}

func (e ObjectAddedEvent) Type() EventType { return OBJECT_ADDED }

type ObjectRemovedEvent struct {
	Name string
	Kind string
}

func (e ObjectRemovedEvent) Type() EventType { return OBJECT_REMOVED }

// CollisionEvent reports a resolved impact: the bodies, the world
// impact point and the magnitude of the normal impulse applied.
type CollisionEvent struct {
	BodyA    *body.RigidBody
	BodyB    *body.RigidBody
	Position mgl64.Vec2
	Impulse  float64
}

func (e CollisionEvent) Type() EventType { return COLLISION }

// ContactEvent reports a steady contact force computed for the next
// integration interval.
type ContactEvent struct {
	BodyA    *body.RigidBody
	BodyB    *body.RigidBody
	Position mgl64.Vec2
	Force    float64
}

func (e ContactEvent) Type() EventType { return CONTACT }

// EventListener - callback for events
type EventListener func(event Event)

// Events delivers engine notifications to registered listeners.
// Object add/remove notifications fire synchronously at registration
// time; collision and contact notifications are buffered during a step
// and flushed after it commits, so listeners never observe a
// half-stepped world.
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 64),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// dispatch sends one event to its listeners immediately.
func (e *Events) dispatch(event Event) {
	for _, listener := range e.listeners[event.Type()] {
		listener(event)
	}
}

// flush sends all buffered events in emission order and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		e.dispatch(event)
	}
	e.buffer = e.buffer[:0]
}
