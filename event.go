package adaptview

import "image"

// EventType identifies the kind of a canonical surface event.
type EventType uint8

const (
	EventNone                EventType = iota // zero value, ignored everywhere
	EventResized                              // the drawable surface changed size
	EventClosed                               // the surface was asked to close
	EventFocusGained                          // the surface gained input focus
	EventFocusLost                            // the surface lost input focus
	EventKeyPressed                           // a key went down
	EventKeyReleased                          // a key went up
	EventMouseButtonPressed                   // a mouse button went down
	EventMouseButtonReleased                  // a mouse button went up
	EventMouseMoved                           // the cursor moved
	EventMouseWheelScrolled                   // the wheel scrolled
)

var eventTypeNames = [...]string{
	EventNone:                "none",
	EventResized:             "resized",
	EventClosed:              "closed",
	EventFocusGained:         "focus-gained",
	EventFocusLost:           "focus-lost",
	EventKeyPressed:          "key-pressed",
	EventKeyReleased:         "key-released",
	EventMouseButtonPressed:  "mouse-button-pressed",
	EventMouseButtonReleased: "mouse-button-released",
	EventMouseMoved:          "mouse-moved",
	EventMouseWheelScrolled:  "mouse-wheel-scrolled",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event is the canonical event delivered by a windowing collaborator
// (see Surface and the tcellview package). Only the fields relevant to Type
// are set.
type Event struct {
	Type EventType

	// Size is the new surface size in pixels (EventResized).
	Size image.Point

	// Position is the cursor position in pixels (mouse events).
	Position image.Point
	// Button is the mouse button (EventMouseButtonPressed/Released).
	Button MouseButton
	// Wheel is the scroll delta (EventMouseWheelScrolled).
	Wheel Vec2

	// Key and Rune identify the key (EventKeyPressed/Released).
	Key  Key
	Rune rune

	Modifiers KeyModifiers
}

// ResizedEvent returns an EventResized for a surface of w x h pixels.
func ResizedEvent(w, h int) Event {
	return Event{Type: EventResized, Size: image.Pt(w, h)}
}

// ResizeEvent is emitted to an EventSink after a registry applied a resize.
type ResizeEvent struct {
	Size  image.Point
	Views int
}

// EventSink is the interface for optional observers of applied resizes, such
// as the Donburi bridge in the ecs module.
type EventSink interface {
	EmitResize(event ResizeEvent)
}
