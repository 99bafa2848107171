package grasp

import (
	"math"
	"strings"
)

// Vec2 is a 2D point or vector in page coordinates. Positions are expressed
// in device-independent pixels with the origin at the top-left and Y
// increasing downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v with both components multiplied by f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between v and other.
func (v Vec2) Dist(other Vec2) float64 {
	return other.Sub(v).Len()
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Source identifies the input modality that produced a pointer event.
type Source uint8

const (
	Mouse Source = iota // mouse or other indirect pointing device
	Touch               // direct touch contact
)

// String returns the modality name. It panics on an invalid value.
func (s Source) String() string {
	switch s {
	case Mouse:
		return "mouse"
	case Touch:
		return "touch"
	default:
		panic("grasp: invalid Source")
	}
}

// Buttons is a bitmask of pressed mouse buttons.
type Buttons uint8

const (
	ButtonPrimary   Buttons = 1 << iota // left (or primary) button
	ButtonSecondary                     // right button
	ButtonTertiary                      // middle button
)

// Contain reports whether b contains all of the buttons in set.
func (b Buttons) Contain(set Buttons) bool {
	return b&set == set
}

// String returns the pressed button names joined by "|", or "none" for the
// empty set. It panics on bits outside the defined buttons.
func (b Buttons) String() string {
	if b&^(ButtonPrimary|ButtonSecondary|ButtonTertiary) != 0 {
		panic("grasp: invalid Buttons")
	}
	if b == 0 {
		return "none"
	}
	var parts []string
	if b.Contain(ButtonPrimary) {
		parts = append(parts, "primary")
	}
	if b.Contain(ButtonSecondary) {
		parts = append(parts, "secondary")
	}
	if b.Contain(ButtonTertiary) {
		parts = append(parts, "tertiary")
	}
	return strings.Join(parts, "|")
}

// Key is a platform-independent key name, following the W3C key-name
// convention ("Escape", "Enter", "a").
type Key string

// KeyEscape cancels an in-flight gesture when pressed.
const KeyEscape Key = "Escape"

// TargetKind classifies the element under a press. Form controls keep their
// native press behavior; everything else has it suppressed on mouse press so
// text selection and image dragging cannot fight the gesture.
type TargetKind uint8

const (
	TargetGeneric   TargetKind = iota // anything without special press behavior
	TargetButton                      // push button
	TargetTextInput                   // single-line text input
	TargetTextArea                    // multi-line text input
	TargetSelect                      // dropdown list
	TargetOption                      // entry inside a dropdown list
)

// String returns the kind name. It panics on an invalid value.
func (k TargetKind) String() string {
	switch k {
	case TargetGeneric:
		return "generic"
	case TargetButton:
		return "button"
	case TargetTextInput:
		return "text input"
	case TargetTextArea:
		return "text area"
	case TargetSelect:
		return "select"
	case TargetOption:
		return "option"
	default:
		panic("grasp: invalid TargetKind")
	}
}

// retainsDefault reports whether the element's native press handling must
// survive a press. Suppressing it on form controls would break focus,
// caret placement, and dropdown opening.
func (k TargetKind) retainsDefault() bool {
	return k != TargetGeneric
}

// Actions connects an event to its originating platform object so the
// default platform reaction can be suppressed or further delivery stopped.
// Implementations must tolerate both calls arriving more than once.
type Actions interface {
	// SuppressDefault asks the platform not to perform the event's default
	// action (text selection, native image drag, scrolling).
	SuppressDefault()
	// StopPropagation asks the platform not to deliver the event to any
	// further listener.
	StopPropagation()
}

// Flags is the Actions implementation used by the in-package input backends.
// It records what was requested so dispatch code and tests can read it back.
type Flags struct {
	DefaultSuppressed  bool
	PropagationStopped bool
}

// SuppressDefault records that the default action must not run.
func (f *Flags) SuppressDefault() { f.DefaultSuppressed = true }

// StopPropagation records that no further listener may observe the event.
func (f *Flags) StopPropagation() { f.PropagationStopped = true }

// Event is the platform event attached to a gesture notification. It is one
// of *PointerEvent, *KeyEvent, or *FocusEvent. Handlers rarely need the
// concrete type; the interface exists so the default action of the
// underlying primitive can be suppressed from a notification callback.
type Event interface {
	// SuppressDefault forwards to the originating platform event.
	SuppressDefault()

	// event closes the union.
	event()
}

// PointerEvent is a press, move, release, or click primitive.
type PointerEvent struct {
	// Source is the modality that produced the event.
	Source Source
	// Position is the page position of the primary contact or cursor.
	Position Vec2
	// Touches is the number of simultaneous contacts. Zero for mouse events.
	Touches int
	// Buttons is the set of pressed mouse buttons. Zero for touch events.
	Buttons Buttons
	// Target classifies the element under the pointer at press time.
	Target TargetKind
	// Actions links back to the originating platform event. May be nil for
	// sources with no suppressible behavior.
	Actions Actions
}

// SuppressDefault suppresses the originating event's default action.
func (e *PointerEvent) SuppressDefault() {
	if e.Actions != nil {
		e.Actions.SuppressDefault()
	}
}

// StopPropagation stops the originating event from reaching further
// listeners.
func (e *PointerEvent) StopPropagation() {
	if e.Actions != nil {
		e.Actions.StopPropagation()
	}
}

func (e *PointerEvent) event() {}

// KeyEvent is a key press primitive.
type KeyEvent struct {
	// Name is the platform-independent name of the pressed key.
	Name Key
	// Actions links back to the originating platform event.
	Actions Actions
}

// SuppressDefault suppresses the originating event's default action.
func (e *KeyEvent) SuppressDefault() {
	if e.Actions != nil {
		e.Actions.SuppressDefault()
	}
}

func (e *KeyEvent) event() {}

// FocusEvent reports a change of window focus. Gesture recognition only
// reacts to focus loss, which cancels an in-flight gesture.
type FocusEvent struct {
	// Focused is false when the window lost focus.
	Focused bool
	// Actions links back to the originating platform event.
	Actions Actions
}

// SuppressDefault suppresses the originating event's default action.
func (e *FocusEvent) SuppressDefault() {
	if e.Actions != nil {
		e.Actions.SuppressDefault()
	}
}

func (e *FocusEvent) event() {}

// GestureEvent is delivered to drag notification callbacks. Values are
// self-contained; callbacks may retain them.
type GestureEvent struct {
	// Event is the platform primitive that triggered the notification.
	Event Event
	// Start is the page position where the gesture's press landed.
	Start Vec2
	// Current is the gesture position for this notification: the press
	// origin for a start, the pointer position for a move, the release
	// position (or last known position, when cancelled) for an end.
	Current Vec2
	// Cancelled is set on end notifications that were forced by the escape
	// key or by window focus loss rather than by a release.
	Cancelled bool
}

// Delta returns the total displacement from the gesture origin.
func (e GestureEvent) Delta() Vec2 {
	return e.Current.Sub(e.Start)
}
