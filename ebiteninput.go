package grasp

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenInput adapts Ebitengine's polled input model to grasp's listener
// model. Create one, carve out Regions for the interactive areas, and call
// Update once per ebiten update tick; state transitions between ticks are
// synthesized into press, move, release, and click primitives, escape key
// edges, and window focus loss.
//
//	type game struct {
//		input *grasp.EbitenInput
//	}
//
//	func (g *game) Update() error {
//		g.input.Update()
//		return nil
//	}
//
// A press lands on every Region containing it, newest region first, which
// satisfies the Surface contract: hit-testing happens here, not in the
// recognizer. EbitenInput is also the Stage for the window-global listeners
// and the end-of-tick Defer queue.
type EbitenInput struct {
	Dispatcher

	prevButtons   Buttons
	pressButtons  Buttons // captured at press, reported on release
	cursor        Vec2
	mousePressPos Vec2

	touchScratch  []ebiten.TouchID
	touchOrder    []ebiten.TouchID
	touchPosition map[ebiten.TouchID]Vec2
	lastTouch     Vec2 // last known primary contact position
	touchPressPos Vec2
	touchMoved    bool

	escWasDown bool
	focused    bool
}

var _ Stage = (*EbitenInput)(nil)

// NewEbitenInput returns a backend with no regions. The window is assumed
// focused until the first Update says otherwise.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{
		touchPosition: make(map[ebiten.TouchID]Vec2),
		focused:       true,
	}
}

// frame is one Update's worth of polled input state, kept separate so the
// synthesizer can be driven without a window.
type frame struct {
	buttons Buttons
	cursor  Vec2
	touches []contact
	escDown bool
	focused bool
}

// contact is one live touch in a frame, in the order the platform reports.
type contact struct {
	id  ebiten.TouchID
	pos Vec2
}

// Update polls ebiten and synthesizes this tick's primitives. Call it once
// per ebiten Update, before game logic that depends on gesture state.
func (in *EbitenInput) Update() {
	var f frame
	mx, my := ebiten.CursorPosition()
	f.cursor = Vec2{float64(mx), float64(my)}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		f.buttons |= ButtonPrimary
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		f.buttons |= ButtonSecondary
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		f.buttons |= ButtonTertiary
	}
	in.touchScratch = ebiten.AppendTouchIDs(in.touchScratch[:0])
	for _, id := range in.touchScratch {
		tx, ty := ebiten.TouchPosition(id)
		f.touches = append(f.touches, contact{id: id, pos: Vec2{float64(tx), float64(ty)}})
	}
	f.escDown = ebiten.IsKeyPressed(ebiten.KeyEscape)
	f.focused = ebiten.IsFocused()
	in.step(f)
}

// step consumes one frame snapshot.
func (in *EbitenInput) step(f frame) {
	if in.focused && !f.focused {
		in.DispatchBlur(&FocusEvent{Focused: false, Actions: &Flags{}})
		// Input state collected before the blur is stale; drop it so
		// regaining focus with a held button reads as a fresh press.
		in.prevButtons = 0
		in.touchOrder = in.touchOrder[:0]
		clear(in.touchPosition)
	}
	in.focused = f.focused
	if in.focused {
		if f.escDown && !in.escWasDown {
			in.DispatchKeyDown(&KeyEvent{Name: KeyEscape, Actions: &Flags{}})
		}
		in.stepMouse(f)
		in.stepTouch(f)
	}
	in.escWasDown = f.escDown
	in.Settle()
}

// stepMouse turns button state transitions into mouse primitives.
func (in *EbitenInput) stepMouse(f frame) {
	wasDown := in.prevButtons != 0
	isDown := f.buttons != 0

	switch {
	case isDown && !wasDown:
		in.pressButtons = f.buttons
		in.mousePressPos = f.cursor
		in.DispatchPress(&PointerEvent{
			Source:   Mouse,
			Position: f.cursor,
			Buttons:  f.buttons,
			Target:   in.TargetAt(f.cursor),
			Actions:  &Flags{},
		})

	case !isDown && wasDown:
		in.DispatchMouseRelease(&PointerEvent{
			Source:   Mouse,
			Position: f.cursor,
			Buttons:  in.pressButtons,
			Target:   in.TargetAt(f.cursor),
			Actions:  &Flags{},
		})
		// Platforms fire a click on any element that saw both the press
		// and the release, dragged or not. The recognizer's suppressor
		// relies on this firing before the tick settles.
		in.DispatchClick(in.mousePressPos, f.cursor, &PointerEvent{
			Source:   Mouse,
			Position: f.cursor,
			Buttons:  in.pressButtons,
			Target:   in.TargetAt(in.mousePressPos),
			Actions:  &Flags{},
		})

	case f.cursor != in.cursor:
		in.DispatchMouseMove(&PointerEvent{
			Source:   Mouse,
			Position: f.cursor,
			Buttons:  f.buttons,
			Target:   in.TargetAt(f.cursor),
			Actions:  &Flags{},
		})
	}

	in.cursor = f.cursor
	in.prevButtons = f.buttons
}

// stepTouch turns contact set changes into touch primitives. The primary
// contact is the earliest one still on the screen; when every contact
// lifts, the release lands at the primary's last known position, since
// ebiten reports no coordinates for ended touches.
func (in *EbitenInput) stepTouch(f frame) {
	live := make(map[ebiten.TouchID]bool, len(f.touches))
	for _, c := range f.touches {
		live[c.id] = true
		in.touchPosition[c.id] = c.pos
	}

	// Keep survivors in arrival order, then append newcomers.
	order := in.touchOrder[:0]
	for _, id := range in.touchOrder {
		if live[id] {
			order = append(order, id)
		} else {
			delete(in.touchPosition, id)
		}
	}
	for _, c := range f.touches {
		seen := false
		for _, id := range order {
			if id == c.id {
				seen = true
				break
			}
		}
		if !seen {
			order = append(order, c.id)
		}
	}

	prev := len(in.touchOrder)
	count := len(order)
	in.touchOrder = order

	switch {
	case prev == 0 && count > 0:
		primary := in.touchPosition[order[0]]
		in.lastTouch = primary
		in.touchPressPos = primary
		in.touchMoved = false
		in.DispatchPress(&PointerEvent{
			Source:   Touch,
			Position: primary,
			Touches:  count,
			Target:   in.TargetAt(primary),
			Actions:  &Flags{},
		})

	case prev > 0 && count == 0:
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

	case prev > 0 && count > 0:
		primary := in.touchPosition[order[0]]
		if primary != in.lastTouch || count != prev {
			in.lastTouch = primary
			if primary.Dist(in.touchPressPos) > tapSlop {
				in.touchMoved = true
			}
			in.DispatchTouchMove(&PointerEvent{
				Source:   Touch,
				Position: primary,
				Touches:  count,
				Target:   in.TargetAt(primary),
				Actions:  &Flags{},
			})
		}
	}
}
