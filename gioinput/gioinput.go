package gioinput

import (
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"

	"github.com/phanxgames/grasp"
)

// tapSlop is the wander in pixels allowed between a touch press and its
// release for the release to still synthesize a click.
const tapSlop = 8.0

// Input adapts Gio's window event stream to grasp's listener model. All
// methods must be called from the window's event loop goroutine. Each
// handled event is one input tick; deferred work settles when the event
// finishes dispatching.
type Input struct {
	grasp.Dispatcher

	heldButtons   grasp.Buttons
	mousePressPos grasp.Vec2

	touchOrder    []pointer.ID
	touchPosition map[pointer.ID]grasp.Vec2
	lastTouch     grasp.Vec2
	touchPressPos grasp.Vec2
	touchMoved    bool
}

var _ grasp.Stage = (*Input)(nil)

// New returns a backend with no regions.
func New() *Input {
	return &Input{touchPosition: make(map[pointer.ID]grasp.Vec2)}
}

// HandleEvent consumes one Gio event and synthesizes the matching
// primitives. Pointer positions must be in window coordinates. Event types
// with no gesture meaning are no-ops.
func (in *Input) HandleEvent(e event.Event) {
	switch e := e.(type) {
	case pointer.Event:
		in.handlePointer(e)
	case key.Event:
		in.handleKey(e)
	case key.FocusEvent:
		if !e.Focus {
			in.cancel()
		}
	default:
		return
	}
	in.Settle()
}

// LostFocus cancels any in-flight gesture. Apps that learn about focus loss
// from a stage change rather than a key.FocusEvent call this directly.
func (in *Input) LostFocus() {
	in.cancel()
	in.Settle()
}

// mapButtons translates a Gio button set to the grasp button set.
func mapButtons(b pointer.Buttons) grasp.Buttons {
	var out grasp.Buttons
	if b.Contain(pointer.ButtonPrimary) {
		out |= grasp.ButtonPrimary
	}
	if b.Contain(pointer.ButtonSecondary) {
		out |= grasp.ButtonSecondary
	}
	if b.Contain(pointer.ButtonTertiary) {
		out |= grasp.ButtonTertiary
	}
	return out
}

func (in *Input) handlePointer(e pointer.Event) {
	if e.Kind == pointer.Cancel {
		// The system or another handler took the gesture.
		in.cancel()
		return
	}
	switch e.Source {
	case pointer.Mouse:
		in.handleMouse(e)
	case pointer.Touch:
		in.handleTouch(e)
	}
}

// handleMouse diffs the button set carried by each event against the held
// set: Gio reports the full set after the change, not the changed button.
func (in *Input) handleMouse(e pointer.Event) {
	pos := grasp.Vec2{X: float64(e.Position.X), Y: float64(e.Position.Y)}

	switch e.Kind {
	case pointer.Press:
		buttons := mapButtons(e.Buttons) // includes the new button
		pressed := buttons &^ in.heldButtons
		in.heldButtons = buttons
		if pressed.Contain(grasp.ButtonPrimary) {
			// Click synthesis pairs the primary press with the primary
			// release; a chorded secondary press must not move the anchor.
			in.mousePressPos = pos
		}
		in.DispatchPress(&grasp.PointerEvent{
			Source:   grasp.Mouse,
			Position: pos,
			Buttons:  buttons,
			Target:   in.TargetAt(pos),
			Actions:  &grasp.Flags{},
		})

	case pointer.Release:
		remaining := mapButtons(e.Buttons) // the released button is already gone
		released := in.heldButtons &^ remaining
		buttons := in.heldButtons
		in.heldButtons = remaining
		in.DispatchMouseRelease(&grasp.PointerEvent{
			Source:   grasp.Mouse,
			Position: pos,
			Buttons:  buttons,
			Target:   in.TargetAt(pos),
			Actions:  &grasp.Flags{},
		})
		if released.Contain(grasp.ButtonPrimary) {
			in.DispatchClick(in.mousePressPos, pos, &grasp.PointerEvent{
				Source:   grasp.Mouse,
				Position: pos,
				Buttons:  buttons,
				Target:   in.TargetAt(in.mousePressPos),
				Actions:  &grasp.Flags{},
			})
		}

	case pointer.Move, pointer.Drag:
		in.DispatchMouseMove(&grasp.PointerEvent{
			Source:   grasp.Mouse,
			Position: pos,
			Buttons:  in.heldButtons,
			Target:   in.TargetAt(pos),
			Actions:  &grasp.Flags{},
		})
	}
	// pointer.Scroll, Enter, and Leave have no drag meaning.
}

func (in *Input) handleTouch(e pointer.Event) {
	pos := grasp.Vec2{X: float64(e.Position.X), Y: float64(e.Position.Y)}

	switch e.Kind {
	case pointer.Press:
		in.touchPosition[e.PointerID] = pos
		in.touchOrder = append(in.touchOrder, e.PointerID)
		count := len(in.touchOrder)
		if count == 1 {
			in.touchPressPos = pos
			in.touchMoved = false
			in.lastTouch = pos
		}
		in.DispatchPress(&grasp.PointerEvent{
			Source:   grasp.Touch,
			Position: pos,
			Touches:  count,
			Target:   in.TargetAt(pos),
			Actions:  &grasp.Flags{},
		})

	case pointer.Move, pointer.Drag:
		if _, ok := in.touchPosition[e.PointerID]; !ok {
			return
		}
		in.touchPosition[e.PointerID] = pos
		primary := in.touchPosition[in.touchOrder[0]]
		in.lastTouch = primary
		if primary.Dist(in.touchPressPos) > tapSlop {
			in.touchMoved = true
		}
		in.DispatchTouchMove(&grasp.PointerEvent{
			Source:   grasp.Touch,
			Position: primary,
			Touches:  len(in.touchOrder),
			Target:   in.TargetAt(primary),
			Actions:  &grasp.Flags{},
		})

	case pointer.Release:
		if _, ok := in.touchPosition[e.PointerID]; !ok {
			return
		}
		delete(in.touchPosition, e.PointerID)
		order := in.touchOrder[:0]
		for _, id := range in.touchOrder {
			if id != e.PointerID {
				order = append(order, id)
			}
		}
		in.touchOrder = order
		if len(order) > 0 {
			in.lastTouch = in.touchPosition[order[0]]
			return
		}
		in.DispatchTouchRelease(&grasp.PointerEvent{
			Source:   grasp.Touch,
			Position: in.lastTouch,
			Target:   in.TargetAt(in.lastTouch),
			Actions:  &grasp.Flags{},
		})
		if !in.touchMoved && in.lastTouch.Dist(in.touchPressPos) <= tapSlop {
			in.DispatchClick(in.touchPressPos, in.lastTouch, &grasp.PointerEvent{
				Source:   grasp.Touch,
				Position: in.lastTouch,
				Target:   in.TargetAt(in.touchPressPos),
				Actions:  &grasp.Flags{},
			})
		}
	}
}

func (in *Input) handleKey(e key.Event) {
	if e.Name != key.NameEscape || e.State != key.Press {
		return
	}
	in.DispatchKeyDown(&grasp.KeyEvent{Name: grasp.KeyEscape, Actions: &grasp.Flags{}})
}

// cancel drops all pointer state and broadcasts a focus loss, which makes
// every open recognizer end its gesture as cancelled.
func (in *Input) cancel() {
	in.heldButtons = 0
	in.touchOrder = in.touchOrder[:0]
	clear(in.touchPosition)
	in.DispatchBlur(&grasp.FocusEvent{Focused: false, Actions: &grasp.Flags{}})
}
