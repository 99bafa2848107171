package grasp

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"
)

// MobileInput adapts the golang.org/x/mobile event stream to grasp's
// listener model. Forward every event from the app loop; types MobileInput
// does not understand are ignored, so the whole switch can stay in one
// place:
//
//	app.Main(func(a app.App) {
//		in := grasp.NewMobileInput()
//		for e := range a.Events() {
//			in.HandleEvent(a.Filter(e))
//		}
//	})
//
// Unlike EbitenInput there is no per-tick polling; each delivered event is
// its own input tick, and deferred work settles when its event finishes
// dispatching.
type MobileInput struct {
	Dispatcher

	heldButtons   Buttons
	mousePressPos Vec2

	touchOrder    []touch.Sequence
	touchPosition map[touch.Sequence]Vec2
	lastTouch     Vec2
	touchPressPos Vec2
	touchMoved    bool
}

var _ Stage = (*MobileInput)(nil)

// NewMobileInput returns a backend with no regions.
func NewMobileInput() *MobileInput {
	return &MobileInput{touchPosition: make(map[touch.Sequence]Vec2)}
}

// HandleEvent consumes one x/mobile event and synthesizes the matching
// primitives. Unknown event types are no-ops.
func (in *MobileInput) HandleEvent(e any) {
	switch e := e.(type) {
	case mouse.Event:
		in.handleMouse(e)
	case touch.Event:
		in.handleTouch(e)
	case key.Event:
		in.handleKey(e)
	case lifecycle.Event:
		in.handleLifecycle(e)
	default:
		return
	}
	in.Settle()
}

// mapButton translates an x/mobile button to the grasp button set.
func mapButton(b mouse.Button) Buttons {
	switch b {
	case mouse.ButtonLeft:
		return ButtonPrimary
	case mouse.ButtonRight:
		return ButtonSecondary
	case mouse.ButtonMiddle:
		return ButtonTertiary
	default:
		return 0
	}
}

func (in *MobileInput) handleMouse(e mouse.Event) {
	pos := Vec2{float64(e.X), float64(e.Y)}

	switch e.Direction {
	case mouse.DirPress:
		pressed := mapButton(e.Button)
		in.heldButtons |= pressed
		if pressed.Contain(ButtonPrimary) {
			// Click synthesis pairs the primary press with the primary
			// release; a chorded secondary press must not move the anchor.
			in.mousePressPos = pos
		}
		in.DispatchPress(&PointerEvent{
			Source:   Mouse,
			Position: pos,
			Buttons:  in.heldButtons,
			Target:   in.TargetAt(pos),
			Actions:  &Flags{},
		})

	case mouse.DirRelease:
		released := mapButton(e.Button)
		buttons := in.heldButtons
		in.heldButtons &^= released
		in.DispatchMouseRelease(&PointerEvent{
			Source:   Mouse,
			Position: pos,
			Buttons:  buttons,
			Target:   in.TargetAt(pos),
			Actions:  &Flags{},
		})
		if released.Contain(ButtonPrimary) {
			in.DispatchClick(in.mousePressPos, pos, &PointerEvent{
				Source:   Mouse,
				Position: pos,
				Buttons:  buttons,
				Target:   in.TargetAt(in.mousePressPos),
				Actions:  &Flags{},
			})
		}

	case mouse.DirNone:
		in.DispatchMouseMove(&PointerEvent{
			Source:   Mouse,
			Position: pos,
			Buttons:  in.heldButtons,
			Target:   in.TargetAt(pos),
			Actions:  &Flags{},
		})
	}
	// mouse.DirStep (wheel) has no drag meaning.
}

func (in *MobileInput) handleTouch(e touch.Event) {
	pos := Vec2{float64(e.X), float64(e.Y)}

	switch e.Type {
	case touch.TypeBegin:
		in.touchPosition[e.Sequence] = pos
		in.touchOrder = append(in.touchOrder, e.Sequence)
		count := len(in.touchOrder)
		if count == 1 {
			in.touchPressPos = pos
			in.touchMoved = false
			in.lastTouch = pos
		}
		in.DispatchPress(&PointerEvent{
			Source:   Touch,
			Position: pos,
			Touches:  count,
			Target:   in.TargetAt(pos),
			Actions:  &Flags{},
		})

	case touch.TypeMove:
		if _, ok := in.touchPosition[e.Sequence]; !ok {
			return
		}
		in.touchPosition[e.Sequence] = pos
		primary := in.touchPosition[in.touchOrder[0]]
		in.lastTouch = primary
		if primary.Dist(in.touchPressPos) > tapSlop {
			in.touchMoved = true
		}
		in.DispatchTouchMove(&PointerEvent{
			Source:   Touch,
			Position: primary,
			Touches:  len(in.touchOrder),
			Target:   in.TargetAt(primary),
			Actions:  &Flags{},
		})

	case touch.TypeEnd:
		if _, ok := in.touchPosition[e.Sequence]; !ok {
			return
		}
		delete(in.touchPosition, e.Sequence)
		order := in.touchOrder[:0]
		for _, seq := range in.touchOrder {
			if seq != e.Sequence {
				order = append(order, seq)
			}
		}
		in.touchOrder = order
		if len(order) > 0 {
			in.lastTouch = in.touchPosition[order[0]]
			return
		}
		in.DispatchTouchRelease(&PointerEvent{
			Source:   Touch,
			Position: in.lastTouch,
			Target:   in.TargetAt(in.lastTouch),
			Actions:  &Flags{},
		})
		if !in.touchMoved && in.lastTouch.Dist(in.touchPressPos) <= tapSlop {
			in.DispatchClick(in.touchPressPos, in.lastTouch, &PointerEvent{
				Source:   Touch,
				Position: in.lastTouch,
				Target:   in.TargetAt(in.touchPressPos),
				Actions:  &Flags{},
			})
		}
	}
}

func (in *MobileInput) handleKey(e key.Event) {
	if e.Code != key.CodeEscape || e.Direction != key.DirPress {
		return
	}
	in.DispatchKeyDown(&KeyEvent{Name: KeyEscape, Actions: &Flags{}})
}

func (in *MobileInput) handleLifecycle(e lifecycle.Event) {
	if e.Crosses(lifecycle.StageFocused) != lifecycle.CrossOff {
		return
	}
	// Events buffered before the focus loss refer to a gesture that no
	// longer exists; drop the pointer state with it.
	in.heldButtons = 0
	in.touchOrder = in.touchOrder[:0]
	clear(in.touchPosition)
	in.DispatchBlur(&FocusEvent{Focused: false, Actions: &Flags{}})
}
