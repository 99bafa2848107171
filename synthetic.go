package grasp

// SyntheticInput is an in-memory input backend for headless tests and
// scripted demos. It is a Stage whose primitives are injected by calling
// methods instead of polled from a platform, and it dispatches exactly like
// the real backends: presses are scoped to Regions, a mouse release
// synthesizes the platform click, and deferred work settles at the end of
// every injected tick.
//
// Each injection counts as one input tick. The returned Flags expose what
// listeners asked of the platform, so tests can assert that a move had its
// default action suppressed or that a click was stopped.
type SyntheticInput struct {
	Dispatcher

	mousePos      Vec2
	mouseButtons  Buttons
	mousePressPos Vec2

	touchPos      Vec2
	touchCount    int
	touchPressPos Vec2
	touchMoved    bool
}

var _ Stage = (*SyntheticInput)(nil)

// NewSyntheticInput returns an empty backend with no regions.
func NewSyntheticInput() *SyntheticInput {
	return &SyntheticInput{}
}

// Press injects a primary-button mouse press at (x, y).
func (s *SyntheticInput) Press(x, y float64) *Flags {
	return s.PressButtons(x, y, ButtonPrimary)
}

// PressButtons injects a mouse press with an explicit button set.
func (s *SyntheticInput) PressButtons(x, y float64, buttons Buttons) *Flags {
	flags := &Flags{}
	pos := Vec2{x, y}
	s.mousePos = pos
	s.mousePressPos = pos
	s.mouseButtons = buttons
	s.DispatchPress(&PointerEvent{
		Source:   Mouse,
		Position: pos,
		Buttons:  buttons,
		Target:   s.TargetAt(pos),
		Actions:  flags,
	})
	s.Settle()
	return flags
}

// Move injects a mouse move to (x, y), with whatever buttons the last press
// left held.
func (s *SyntheticInput) Move(x, y float64) *Flags {
	flags := &Flags{}
	pos := Vec2{x, y}
	s.mousePos = pos
	s.DispatchMouseMove(&PointerEvent{
		Source:   Mouse,
		Position: pos,
		Buttons:  s.mouseButtons,
		Target:   s.TargetAt(pos),
		Actions:  flags,
	})
	s.Settle()
	return flags
}

// Release injects a mouse release at (x, y), then the click the platform
// would synthesize on any region that saw both the press and the release.
// The returned Flags belong to the release; click flags are observable
// through the click listeners themselves.
func (s *SyntheticInput) Release(x, y float64) *Flags {
	flags := &Flags{}
	pos := Vec2{x, y}
	s.mousePos = pos
	buttons := s.mouseButtons
	s.mouseButtons = 0
	s.DispatchMouseRelease(&PointerEvent{
		Source:   Mouse,
		Position: pos,
		Buttons:  buttons,
		Target:   s.TargetAt(pos),
		Actions:  flags,
	})

	s.DispatchClick(s.mousePressPos, pos, &PointerEvent{
		Source:   Mouse,
		Position: pos,
		Buttons:  buttons,
		Target:   s.TargetAt(s.mousePressPos),
		Actions:  &Flags{},
	})
	s.Settle()
	return flags
}

// Click injects a press immediately followed by a release at (x, y).
func (s *SyntheticInput) Click(x, y float64) {
	s.Press(x, y)
	s.Release(x, y)
}

// Drag injects a full mouse drag: press at (fromX, fromY), steps
// interpolated moves, and release at (toX, toY). Fewer than one step still
// moves once, at the destination, so the drag can confirm.
func (s *SyntheticInput) Drag(fromX, fromY, toX, toY float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	s.Press(fromX, fromY)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.Move(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.Release(toX, toY)
}

// TouchPress injects the landing of touches simultaneous contacts with the
// primary contact at (x, y).
func (s *SyntheticInput) TouchPress(x, y float64, touches int) *Flags {
	if touches < 1 {
		touches = 1
	}
	flags := &Flags{}
	pos := Vec2{x, y}
	s.touchPos = pos
	s.touchPressPos = pos
	s.touchCount = touches
	s.touchMoved = false
	s.DispatchPress(&PointerEvent{
		Source:   Touch,
		Position: pos,
		Touches:  touches,
		Target:   s.TargetAt(pos),
		Actions:  flags,
	})
	s.Settle()
	return flags
}

// TouchMove injects movement of the primary contact to (x, y) with touches
// total contacts on the screen.
func (s *SyntheticInput) TouchMove(x, y float64, touches int) *Flags {
	if touches < 1 {
		touches = 1
	}
	flags := &Flags{}
	pos := Vec2{x, y}
	s.touchPos = pos
	s.touchCount = touches
	if pos.Dist(s.touchPressPos) > tapSlop {
		s.touchMoved = true
	}
	s.DispatchTouchMove(&PointerEvent{
		Source:   Touch,
		Position: pos,
		Touches:  touches,
		Target:   s.TargetAt(pos),
		Actions:  flags,
	})
	s.Settle()
	return flags
}

// TouchRelease injects the last contact lifting at (x, y). A tap that never
// moved beyond the platform slop synthesizes a click, as browsers do; a
// swipe does not.
func (s *SyntheticInput) TouchRelease(x, y float64) *Flags {
	flags := &Flags{}
	pos := Vec2{x, y}
	s.touchPos = pos
	s.touchCount = 0
	s.DispatchTouchRelease(&PointerEvent{
		Source:   Touch,
		Position: pos,
		Target:   s.TargetAt(pos),
		Actions:  flags,
	})

	if !s.touchMoved && pos.Dist(s.touchPressPos) <= tapSlop {
		s.DispatchClick(s.touchPressPos, pos, &PointerEvent{
			Source:   Touch,
			Position: pos,
			Target:   s.TargetAt(s.touchPressPos),
			Actions:  &Flags{},
		})
	}
	s.Settle()
	return flags
}

// TouchDrag injects a full one-finger drag: press at (fromX, fromY), steps
// interpolated moves, and release at (toX, toY).
func (s *SyntheticInput) TouchDrag(fromX, fromY, toX, toY float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	s.TouchPress(fromX, fromY, 1)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.TouchMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t, 1)
	}
	s.TouchRelease(toX, toY)
}

// KeyDown injects a key press.
func (s *SyntheticInput) KeyDown(name Key) *Flags {
	flags := &Flags{}
	s.DispatchKeyDown(&KeyEvent{Name: name, Actions: flags})
	s.Settle()
	return flags
}

// Blur injects loss of window focus.
func (s *SyntheticInput) Blur() *Flags {
	flags := &Flags{}
	s.DispatchBlur(&FocusEvent{Focused: false, Actions: flags})
	s.Settle()
	return flags
}
