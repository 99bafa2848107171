package grasp

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// gestureLog records gesture notifications as compact strings so tests can
// assert kind, order, and coordinates in one comparison.
type gestureLog struct {
	events []string
}

func (l *gestureLog) watch(r *Recognizer) {
	r.OnDragStart(func(ev GestureEvent) { l.add("start", ev) })
	r.OnDrag(func(ev GestureEvent) { l.add("drag", ev) })
	r.OnDragEnd(func(ev GestureEvent) {
		kind := "end"
		if ev.Cancelled {
			kind = "cancel"
		}
		l.add(kind, ev)
	})
}

func (l *gestureLog) add(kind string, ev GestureEvent) {
	l.events = append(l.events, fmt.Sprintf("%s(%g,%g)", kind, ev.Current.X, ev.Current.Y))
}

// take returns everything recorded since the last take.
func (l *gestureLog) take() string {
	s := strings.Join(l.events, " ")
	l.events = nil
	return s
}

// newTestRig wires a recognizer to a synthetic backend with one 100x100
// region at the origin.
func newTestRig(t *testing.T, opts Options) (*SyntheticInput, *Region, *Recognizer, *gestureLog) {
	t.Helper()
	in := NewSyntheticInput()
	region := in.Region(Rect{X: 0, Y: 0, Width: 100, Height: 100}, TargetGeneric)
	rec, err := NewRecognizer(in, opts, region)
	if err != nil {
		t.Fatalf("NewRecognizer: %v", err)
	}
	log := &gestureLog{}
	log.watch(rec)
	return in, region, rec, log
}

// --- Construction tests ---

func TestNewRecognizerValidation(t *testing.T) {
	in := NewSyntheticInput()
	region := in.Region(Rect{Width: 100, Height: 100}, TargetGeneric)

	tests := []struct {
		name     string
		stage    Stage
		opts     Options
		surfaces []Surface
	}{
		{"nil stage", nil, Options{}, []Surface{region}},
		{"no surfaces", in, Options{}, nil},
		{"both modalities disabled", in, Options{DisableTouch: true, DisableMouse: true}, []Surface{region}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRecognizer(tt.stage, tt.opts, tt.surfaces...); err == nil {
				t.Error("expected construction error, got nil")
			}
		})
	}
}

// stubBinding counts removals for attach bookkeeping tests.
type stubBinding struct {
	removed *int
}

func (b stubBinding) Remove() { *b.removed++ }

// flakySurface fails mouse press attachment while accepting touch, so
// construction rollback can be observed.
type flakySurface struct {
	attached int
	removed  int
}

func (s *flakySurface) OnTouchPress(fn func(*PointerEvent)) (Binding, error) {
	s.attached++
	return stubBinding{&s.removed}, nil
}

func (s *flakySurface) OnMousePress(fn func(*PointerEvent)) (Binding, error) {
	return nil, errors.New("mouse press unavailable")
}

func (s *flakySurface) OnClick(fn func(*PointerEvent)) (Binding, error) {
	s.attached++
	return stubBinding{&s.removed}, nil
}

func TestNewRecognizerAttachFailureRollsBack(t *testing.T) {
	in := NewSyntheticInput()
	surface := &flakySurface{}

	_, err := NewRecognizer(in, Options{}, surface)
	if err == nil {
		t.Fatal("expected attach error, got nil")
	}
	if surface.attached != 1 {
		t.Fatalf("expected 1 successful attach before the failure, got %d", surface.attached)
	}
	if surface.removed != 1 {
		t.Errorf("expected the touch press listener to be rolled back, removed = %d", surface.removed)
	}
}

// flakyStage fails move attachment on demand so a press that cannot be
// followed can be observed being abandoned.
type flakyStage struct {
	Dispatcher
	failMoves bool
}

func (s *flakyStage) OnMouseMove(fn func(*PointerEvent)) (Binding, error) {
	if s.failMoves {
		return nil, errors.New("move channel unavailable")
	}
	return s.Dispatcher.OnMouseMove(fn)
}

func TestPressAbandonedWhenTransientAttachFails(t *testing.T) {
	stage := &flakyStage{failMoves: true}
	region := &Region{Bounds: Rect{Width: 100, Height: 100}}
	rec, err := NewRecognizer(stage, Options{}, region)
	if err != nil {
		t.Fatalf("NewRecognizer: %v", err)
	}
	log := &gestureLog{}
	log.watch(rec)

	press := func() {
		flags := &Flags{}
		region.mousePress.emit(&PointerEvent{
			Source:   Mouse,
			Position: Vec2{10, 10},
			Buttons:  ButtonPrimary,
			Actions:  flags,
		}, flags)
	}

	press()
	if rec.handled {
		t.Fatal("gesture should be abandoned when the move listener cannot attach")
	}

	// The recognizer must recover: the next press, once the stage works,
	// opens a fresh gesture.
	stage.failMoves = false
	press()
	flags := &Flags{}
	stage.mouseMove.emit(&PointerEvent{
		Source:   Mouse,
		Position: Vec2{30, 10},
		Buttons:  ButtonPrimary,
		Actions:  flags,
	}, flags)
	if got, want := log.take(), "start(10,10) drag(30,10)"; got != want {
		t.Errorf("after recovery got %q, want %q", got, want)
	}
}

// --- Mouse drag lifecycle tests ---

func TestMouseDragLifecycle(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{})

	// Press alone reports nothing.
	in.Press(10, 10)
	if got := log.take(); got != "" {
		t.Fatalf("expected no events on press, got %q", got)
	}

	// Sub-threshold movement reports nothing.
	in.Move(10.5, 10.3)
	if got := log.take(); got != "" {
		t.Fatalf("expected no events within threshold, got %q", got)
	}

	// Crossing the threshold confirms: start at the origin, then the move.
	in.Move(20, 10)
	if got, want := log.take(), "start(10,10) drag(20,10)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// Further movement only moves.
	in.Move(30, 15)
	if got, want := log.take(), "drag(30,15)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// Release ends at the release position.
	in.Release(31, 16)
	if got, want := log.take(), "end(31,16)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPlainClickReportsNothing(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{})

	in.Press(10, 10)
	in.Move(10.5, 10.5) // 0.707 from the origin, under the 1px threshold
	in.Release(10.5, 10.5)
	if got := log.take(); got != "" {
		t.Errorf("expected silence for a sub-threshold press/release, got %q", got)
	}
}

func TestDiagonalUnitMoveConfirms(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{})

	// (11,11) is sqrt(2) from (10,10): over the threshold even though each
	// component moved by only 1.
	in.Press(10, 10)
	in.Move(11, 11)
	in.Release(11, 11)
	if got, want := log.take(), "start(10,10) drag(11,11) end(11,11)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestThresholdBoundaryExact(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{})

	// Exactly 1px of movement confirms; the threshold is inclusive.
	in.Press(10, 10)
	in.Move(11, 10)
	if got, want := log.take(), "start(10,10) drag(11,10)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReleaseAwayFromLastMove(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{})

	// The end notification carries the release position even when the
	// pointer jumped there without an intervening move.
	in.Press(0, 0)
	in.Move(10, 0)
	log.take()
	in.Release(25, 5)
	if got, want := log.take(), "end(25,5)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNonPrimaryButtonIgnored(t *testing.T) {
	in, _, rec, log := newTestRig(t, Options{})

	in.PressButtons(10, 10, ButtonSecondary)
	in.Move(50, 50)
	in.Release(50, 50)
	if got := log.take(); got != "" {
		t.Errorf("expected right-button press to be ignored, got %q", got)
	}
	if rec.Dragging() {
		t.Error("Dragging() = true after ignored press")
	}
}

func TestSecondPressIgnoredWhileGestureOpen(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{})

	in.Press(10, 10)
	// A touch press landing mid-gesture must not hijack or restart it.
	in.TouchPress(60, 60, 1)
	in.Move(40, 10)
	in.Release(40, 10)
	if got, want := log.take(), "start(10,10) drag(40,10) end(40,10)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// Once idle again the other modality works normally.
	in.TouchPress(20, 20, 1)
	in.TouchMove(50, 20, 1)
	in.TouchRelease(50, 20)
	if got, want := log.take(), "start(20,20) drag(50,20) end(50,20)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOverlappingSurfacesOneGesture(t *testing.T) {
	in := NewSyntheticInput()
	bottom := in.Region(Rect{X: 0, Y: 0, Width: 100, Height: 100}, TargetGeneric)
	top := in.Region(Rect{X: 50, Y: 0, Width: 100, Height: 100}, TargetGeneric)
	rec, err := NewRecognizer(in, Options{}, bottom, top)
	if err != nil {
		t.Fatalf("NewRecognizer: %v", err)
	}
	log := &gestureLog{}
	log.watch(rec)

	// The press lands on both regions; only one gesture may open.
	in.Press(75, 50)
	in.Move(95, 50)
	in.Release(95, 50)
	if got, want := log.take(), "start(75,50) drag(95,50) end(95,50)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// --- Touch drag lifecycle tests ---

func TestTouchDragLifecycle(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{})

	in.TouchPress(10, 10, 1)
	in.TouchMove(10.4, 10.2, 1)
	if got := log.take(); got != "" {
		t.Fatalf("expected no events within threshold, got %q", got)
	}
	in.TouchMove(25, 10, 1)
	in.TouchMove(30, 12, 1)
	in.TouchRelease(30, 12)
	if got, want := log.take(), "start(10,10) drag(25,10) drag(30,12) end(30,12)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMultiTouchPressIgnored(t *testing.T) {
	in, _, rec, log := newTestRig(t, Options{})

	in.TouchPress(10, 10, 2)
	in.TouchMove(50, 50, 2)
	in.TouchRelease(50, 50)
	if got := log.take(); got != "" {
		t.Errorf("expected two-finger press to be ignored, got %q", got)
	}
	if rec.handled {
		t.Error("gesture opened from a multi-touch press")
	}
}

func TestSecondFingerMidDragAbortsSilently(t *testing.T) {
	in, _, rec, log := newTestRig(t, Options{})

	in.TouchPress(10, 10, 1)
	in.TouchMove(30, 10, 1)
	if got, want := log.take(), "start(10,10) drag(30,10)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// The second finger kills the gesture outright: no end notification,
	// cancelled or otherwise.
	in.TouchMove(32, 10, 2)
	if got := log.take(); got != "" {
		t.Fatalf("expected silence on multi-touch abort, got %q", got)
	}
	if rec.Dragging() {
		t.Error("Dragging() = true after abort")
	}

	// The rest of the aborted gesture stays silent too.
	in.TouchMove(60, 10, 1)
	in.TouchRelease(60, 10)
	if got := log.take(); got != "" {
		t.Errorf("expected no events after abort, got %q", got)
	}
}

func TestSecondFingerBeforeThresholdAborts(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{})

	in.TouchPress(10, 10, 1)
	in.TouchMove(10.2, 10, 2)
	in.TouchMove(50, 10, 1)
	in.TouchRelease(50, 10)
	if got := log.take(); got != "" {
		t.Errorf("expected abort before threshold to be silent, got %q", got)
	}
}

// --- Axis constraint tests ---

func TestAxisYieldsPerpendicularTouchGesture(t *testing.T) {
	in, _, rec, log := newTestRig(t, Options{Axis: AxisHorizontal})

	// First qualifying move is predominantly vertical: the platform keeps
	// the gesture for scrolling and the move's default must survive.
	in.TouchPress(5, 5, 1)
	flags := in.TouchMove(6, 9, 1)
	if got := log.take(); got != "" {
		t.Fatalf("expected scroll abort to be silent, got %q", got)
	}
	if flags.DefaultSuppressed {
		t.Error("scroll-bound move had its default action suppressed")
	}
	if rec.handled {
		t.Error("gesture still open after scroll abort")
	}

	// Everything after the abort is ignored.
	in.TouchMove(60, 9, 1)
	in.TouchRelease(60, 9)
	if got := log.take(); got != "" {
		t.Errorf("expected no events after scroll abort, got %q", got)
	}
}

func TestAxisAcceptsAlignedTouchGesture(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{Axis: AxisHorizontal})

	in.TouchPress(5, 5, 1)
	in.TouchMove(9, 6, 1) // predominantly horizontal
	in.TouchRelease(9, 6)
	if got, want := log.take(), "start(5,5) drag(9,6) end(9,6)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAxisEqualComponentsRecognize(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{Axis: AxisVertical})

	// A perfectly diagonal first move is not "predominantly" perpendicular.
	in.TouchPress(10, 10, 1)
	in.TouchMove(13, 13, 1)
	if got, want := log.take(), "start(10,10) drag(13,13)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	in.TouchRelease(13, 13)
	log.take()
}

func TestAxisDoesNotConstrainMouse(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{Axis: AxisHorizontal})

	// Scroll disambiguation is a touch concern; a vertical mouse drag on a
	// horizontally constrained recognizer still drags.
	in.Press(10, 10)
	in.Move(10, 40)
	in.Release(10, 40)
	if got, want := log.take(), "start(10,10) drag(10,40) end(10,40)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAxisCheckedOnlyBeforeConfirmation(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{Axis: AxisHorizontal})

	// Once confirmed horizontally, later vertical movement stays a drag.
	in.TouchPress(10, 10, 1)
	in.TouchMove(30, 10, 1)
	in.TouchMove(30, 60, 1)
	in.TouchRelease(30, 60)
	if got, want := log.take(), "start(10,10) drag(30,10) drag(30,60) end(30,60)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSetAxis(t *testing.T) {
	in, _, rec, log := newTestRig(t, Options{})

	rec.SetAxis(AxisVertical)
	if rec.Axis() != AxisVertical {
		t.Fatalf("Axis() = %v, want %v", rec.Axis(), AxisVertical)
	}

	in.TouchPress(10, 10, 1)
	in.TouchMove(16, 11, 1) // predominantly horizontal: yielded
	in.TouchRelease(16, 11)
	if got := log.take(); got != "" {
		t.Errorf("expected scroll abort after SetAxis, got %q", got)
	}
}

// --- Cancellation tests ---

func TestEscapeCancelsAtLastKnownPosition(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{})

	in.Press(10, 10)
	in.Move(30, 10)
	log.take()

	in.KeyDown(KeyEscape)
	if got, want := log.take(), "cancel(30,10)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// The gesture is gone; the release that eventually arrives is noise.
	in.Release(40, 10)
	if got := log.take(); got != "" {
		t.Errorf("expected no events after cancellation, got %q", got)
	}
}

func TestEscapeBeforeThresholdEndsSilently(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{})

	in.Press(10, 10)
	in.KeyDown(KeyEscape)
	if got := log.take(); got != "" {
		t.Fatalf("expected silent teardown, got %q", got)
	}

	// Transient listeners are gone, so crossing the threshold afterwards
	// reports nothing.
	in.Move(50, 10)
	in.Release(50, 10)
	if got := log.take(); got != "" {
		t.Errorf("expected no events after pre-threshold escape, got %q", got)
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	in, _, rec, log := newTestRig(t, Options{})

	in.Press(10, 10)
	in.Move(30, 10)
	log.take()
	in.KeyDown(Key("a"))
	if got := log.take(); got != "" {
		t.Fatalf("expected non-escape key to be ignored, got %q", got)
	}
	if !rec.Dragging() {
		t.Error("drag lost after unrelated key press")
	}
	in.Release(30, 10)
	log.take()
}

func TestBlurCancelsAtLastKnownPosition(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{})

	in.TouchPress(10, 10, 1)
	in.TouchMove(25, 20, 1)
	log.take()

	in.Blur()
	if got, want := log.take(), "cancel(25,20)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	in.TouchRelease(40, 20)
	if got := log.take(); got != "" {
		t.Fatalf("expected no events after blur, got %q", got)
	}

	// Back to idle: the next press opens a fresh gesture.
	in.TouchPress(5, 5, 1)
	in.TouchMove(15, 5, 1)
	in.TouchRelease(15, 5)
	if got, want := log.take(), "start(5,5) drag(15,5) end(15,5)"; got != want {
		t.Errorf("after blur got %q, want %q", got, want)
	}
}

func TestBlurWhileIdleIsNoise(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{})

	in.Blur()
	in.KeyDown(KeyEscape)
	if got := log.take(); got != "" {
		t.Errorf("expected nothing while idle, got %q", got)
	}
}

// --- Default action and click suppression tests ---

func TestMousePressSuppressesDefaultOnGenericTarget(t *testing.T) {
	in, _, _, _ := newTestRig(t, Options{})

	if flags := in.Press(10, 10); !flags.DefaultSuppressed {
		t.Error("press default not suppressed on a generic target")
	}
	in.Release(10, 10)
}

func TestMousePressKeepsDefaultOnFormControls(t *testing.T) {
	kinds := []TargetKind{TargetButton, TargetTextInput, TargetTextArea, TargetSelect, TargetOption}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			in := NewSyntheticInput()
			region := in.Region(Rect{Width: 100, Height: 100}, kind)
			rec, err := NewRecognizer(in, Options{}, region)
			if err != nil {
				t.Fatalf("NewRecognizer: %v", err)
			}
			log := &gestureLog{}
			log.watch(rec)

			if flags := in.Press(10, 10); flags.DefaultSuppressed {
				t.Error("press default suppressed on a form control")
			}

			// The gesture itself still runs; only the press default differs.
			in.Move(30, 10)
			in.Release(30, 10)
			if got, want := log.take(), "start(10,10) drag(30,10) end(30,10)"; got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}
}

func TestTouchPressKeepsDefault(t *testing.T) {
	in, _, _, _ := newTestRig(t, Options{})

	if flags := in.TouchPress(10, 10, 1); flags.DefaultSuppressed {
		t.Error("touch press default suppressed; only mouse presses are")
	}
	in.TouchRelease(10, 10)
}

func TestMoveDefaultSuppressedWhileGestureOpen(t *testing.T) {
	in, _, _, _ := newTestRig(t, Options{})

	in.Press(10, 10)
	// Even before the threshold, moves belong to the gesture attempt.
	if flags := in.Move(10.3, 10.2); !flags.DefaultSuppressed {
		t.Error("sub-threshold move default not suppressed")
	}
	if flags := in.Move(30, 10); !flags.DefaultSuppressed {
		t.Error("dragging move default not suppressed")
	}
	in.Release(30, 10)
}

func TestMoveDefaultUntouchedWhileIdle(t *testing.T) {
	in, _, _, _ := newTestRig(t, Options{})

	if flags := in.Move(50, 50); flags.DefaultSuppressed {
		t.Error("idle move default suppressed")
	}
}

func TestReleaseDefaultSuppressedOnlyAfterDrag(t *testing.T) {
	in, _, _, _ := newTestRig(t, Options{})

	in.Press(10, 10)
	if flags := in.Release(10, 10); flags.DefaultSuppressed {
		t.Error("release default suppressed for a plain click")
	}

	in.Press(10, 10)
	in.Move(30, 10)
	if flags := in.Release(30, 10); !flags.DefaultSuppressed {
		t.Error("release default not suppressed after a drag")
	}
}

func TestClickSuppressedAfterMouseDrag(t *testing.T) {
	in, region, _, _ := newTestRig(t, Options{})

	var clicks int
	if _, err := region.OnClick(func(e *PointerEvent) { clicks++ }); err != nil {
		t.Fatalf("OnClick: %v", err)
	}

	// The drag ends inside the region, so the platform synthesizes a click
	// there. The recognizer must eat it.
	in.Drag(10, 10, 50, 50, 4)
	if clicks != 0 {
		t.Fatalf("synthetic click after drag reached the surface, clicks = %d", clicks)
	}

	// The suppressor is one-shot: a genuine click right after works.
	in.Click(20, 20)
	if clicks != 1 {
		t.Errorf("follow-up click lost, clicks = %d", clicks)
	}
}

func TestClickSuppressorRemovedWithoutClick(t *testing.T) {
	in, region, _, _ := newTestRig(t, Options{})

	var clicks int
	if _, err := region.OnClick(func(e *PointerEvent) { clicks++ }); err != nil {
		t.Fatalf("OnClick: %v", err)
	}

	// Ending outside the region means no synthetic click is fired; the
	// suppressor must still disarm.
	in.Drag(10, 10, 300, 300, 4)
	if clicks != 0 {
		t.Fatalf("unexpected click, clicks = %d", clicks)
	}
	in.Click(20, 20)
	if clicks != 1 {
		t.Errorf("suppressor outlived its tick, clicks = %d", clicks)
	}
}

func TestTapClickNotSuppressed(t *testing.T) {
	in, region, _, _ := newTestRig(t, Options{})

	var clicks int
	if _, err := region.OnClick(func(e *PointerEvent) { clicks++ }); err != nil {
		t.Fatalf("OnClick: %v", err)
	}

	// A motionless tap is a click, not a drag; nothing intercepts it.
	in.TouchPress(20, 20, 1)
	in.TouchRelease(20, 20)
	if clicks != 1 {
		t.Errorf("tap click lost, clicks = %d", clicks)
	}
}

// --- Modality switch tests ---

func TestDisableTouch(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{DisableTouch: true})

	in.TouchPress(10, 10, 1)
	in.TouchMove(50, 10, 1)
	in.TouchRelease(50, 10)
	if got := log.take(); got != "" {
		t.Fatalf("touch recognized despite DisableTouch, got %q", got)
	}

	in.Press(10, 10)
	in.Move(50, 10)
	in.Release(50, 10)
	if got, want := log.take(), "start(10,10) drag(50,10) end(50,10)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDisableMouse(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{DisableMouse: true})

	in.Press(10, 10)
	in.Move(50, 10)
	in.Release(50, 10)
	if got := log.take(); got != "" {
		t.Fatalf("mouse recognized despite DisableMouse, got %q", got)
	}

	in.TouchPress(10, 10, 1)
	in.TouchMove(50, 10, 1)
	in.TouchRelease(50, 10)
	if got, want := log.take(), "start(10,10) drag(50,10) end(50,10)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// --- Threshold tests ---

func TestThresholdOption(t *testing.T) {
	in, _, _, log := newTestRig(t, Options{Threshold: 20})

	in.Press(10, 10)
	in.Move(25, 10) // 15px, under the configured threshold
	if got := log.take(); got != "" {
		t.Fatalf("expected no events under a 20px threshold, got %q", got)
	}
	in.Move(35, 10) // 25px
	if got, want := log.take(), "start(10,10) drag(35,10)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	in.Release(35, 10)
	log.take()
}

func TestSetThreshold(t *testing.T) {
	in, _, rec, log := newTestRig(t, Options{})

	rec.SetThreshold(30)
	in.Press(10, 10)
	in.Move(30, 10)
	if got := log.take(); got != "" {
		t.Fatalf("expected no events under a raised threshold, got %q", got)
	}
	in.Release(30, 10)

	// Non-positive restores the default.
	rec.SetThreshold(0)
	in.Press(10, 10)
	in.Move(11.5, 10)
	if got, want := log.take(), "start(10,10) drag(11.5,10)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	in.Release(11.5, 10)
	log.take()
}

// --- State accessor tests ---

func TestDragging(t *testing.T) {
	in, _, rec, _ := newTestRig(t, Options{})

	if rec.Dragging() {
		t.Fatal("Dragging() = true before any input")
	}
	in.Press(10, 10)
	if rec.Dragging() {
		t.Fatal("Dragging() = true before threshold")
	}
	in.Move(30, 10)
	if !rec.Dragging() {
		t.Fatal("Dragging() = false after confirmation")
	}
	in.Release(30, 10)
	if rec.Dragging() {
		t.Fatal("Dragging() = true after release")
	}
}

func TestDraggingDuringCallbacks(t *testing.T) {
	in, _, rec, _ := newTestRig(t, Options{})

	var inStart, inEnd bool
	rec.OnDragStart(func(GestureEvent) { inStart = rec.Dragging() })
	rec.OnDragEnd(func(GestureEvent) { inEnd = rec.Dragging() })

	in.Press(10, 10)
	in.Move(30, 10)
	in.Release(30, 10)

	// The start notification precedes the dragging flag; the end
	// notification fires while the drag is still considered live.
	if inStart {
		t.Error("Dragging() = true inside OnDragStart; the flag flips after the notification")
	}
	if !inEnd {
		t.Error("Dragging() = false inside OnDragEnd")
	}
}

// --- Subscription tests ---

func TestCallbackHandleRemove(t *testing.T) {
	in, _, rec, _ := newTestRig(t, Options{})

	var count int
	handle := rec.OnDrag(func(GestureEvent) { count++ })

	in.Press(10, 10)
	in.Move(30, 10)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	handle.Remove()
	in.Move(40, 10)
	if count != 1 {
		t.Fatalf("count = %d after Remove, want 1", count)
	}

	// Removing twice is harmless.
	handle.Remove()
	in.Release(40, 10)
}

func TestCallbackRemovesItselfDuringDispatch(t *testing.T) {
	in, _, rec, _ := newTestRig(t, Options{})

	var once, always int
	var handle CallbackHandle
	handle = rec.OnDrag(func(GestureEvent) {
		once++
		handle.Remove()
	})
	rec.OnDrag(func(GestureEvent) { always++ })

	in.Press(10, 10)
	in.Move(30, 10)
	in.Move(40, 10)
	in.Release(40, 10)

	if once != 1 {
		t.Errorf("self-removing callback fired %d times, want 1", once)
	}
	if always != 2 {
		t.Errorf("surviving callback fired %d times, want 2", always)
	}
}

func TestSubscribeInStartHandlerSeesSameTickMove(t *testing.T) {
	in, _, rec, _ := newTestRig(t, Options{})

	// The confirming input delivers start and then the first move in one
	// tick; a move subscription made inside the start handler is in place
	// before that first move goes out.
	var late int
	rec.OnDragStart(func(GestureEvent) {
		rec.OnDrag(func(GestureEvent) { late++ })
	})

	in.Press(10, 10)
	in.Move(30, 10)
	if late != 1 {
		t.Fatalf("subscriber from the start handler missed the same-tick move, late = %d", late)
	}
	in.Move(40, 10)
	if late != 2 {
		t.Errorf("late = %d, want 2", late)
	}
	in.Release(40, 10)
}

// --- Dispose tests ---

func TestDisposeMidDragEndsSilently(t *testing.T) {
	in, _, rec, log := newTestRig(t, Options{})

	in.Press(10, 10)
	in.Move(30, 10)
	log.take()

	rec.Dispose()
	if got := log.take(); got != "" {
		t.Fatalf("Dispose emitted notifications: %q", got)
	}
	if rec.Dragging() {
		t.Fatal("Dragging() = true after Dispose")
	}

	// Everything is detached: neither the tail of the old gesture nor a
	// fresh press reaches the recognizer.
	in.Move(50, 10)
	in.Release(50, 10)
	in.Press(10, 10)
	in.Move(40, 10)
	if got := log.take(); got != "" {
		t.Errorf("disposed recognizer still reporting: %q", got)
	}
}

func TestDisposeIdempotent(t *testing.T) {
	_, _, rec, _ := newTestRig(t, Options{})

	rec.Dispose()
	rec.Dispose()
}

// countingSurface accepts every attach and counts removals.
type countingSurface struct {
	attached int
	removed  int
}

func (s *countingSurface) OnTouchPress(fn func(*PointerEvent)) (Binding, error) {
	s.attached++
	return stubBinding{&s.removed}, nil
}

func (s *countingSurface) OnMousePress(fn func(*PointerEvent)) (Binding, error) {
	s.attached++
	return stubBinding{&s.removed}, nil
}

func (s *countingSurface) OnClick(fn func(*PointerEvent)) (Binding, error) {
	s.attached++
	return stubBinding{&s.removed}, nil
}

func TestDisposeRemovesPressListeners(t *testing.T) {
	in := NewSyntheticInput()
	surface := &countingSurface{}
	rec, err := NewRecognizer(in, Options{}, surface)
	if err != nil {
		t.Fatalf("NewRecognizer: %v", err)
	}
	if surface.attached != 2 {
		t.Fatalf("attached = %d, want one press listener per modality", surface.attached)
	}

	rec.Dispose()
	if surface.removed != surface.attached {
		t.Errorf("removed = %d, want %d", surface.removed, surface.attached)
	}
}

func TestDisposeWhileIdle(t *testing.T) {
	in, _, rec, log := newTestRig(t, Options{})

	rec.Dispose()
	in.Press(10, 10)
	in.Move(40, 10)
	in.Release(40, 10)
	if got := log.take(); got != "" {
		t.Errorf("expected nothing after idle Dispose, got %q", got)
	}
}

// --- Event payload tests ---

func TestGestureEventPayload(t *testing.T) {
	in, _, rec, _ := newTestRig(t, Options{})

	var starts, moves, ends []GestureEvent
	rec.OnDragStart(func(ev GestureEvent) { starts = append(starts, ev) })
	rec.OnDrag(func(ev GestureEvent) { moves = append(moves, ev) })
	rec.OnDragEnd(func(ev GestureEvent) { ends = append(ends, ev) })

	in.Press(10, 10)
	in.Move(30, 20)
	in.Release(31, 21)

	if len(starts) != 1 || len(moves) != 1 || len(ends) != 1 {
		t.Fatalf("counts = %d/%d/%d, want 1/1/1", len(starts), len(moves), len(ends))
	}
	if starts[0].Start != (Vec2{10, 10}) || starts[0].Current != (Vec2{10, 10}) {
		t.Errorf("start payload = %+v", starts[0])
	}
	if moves[0].Start != (Vec2{10, 10}) || moves[0].Current != (Vec2{30, 20}) {
		t.Errorf("move payload = %+v", moves[0])
	}
	if moves[0].Delta() != (Vec2{20, 10}) {
		t.Errorf("move Delta() = %v, want {20 10}", moves[0].Delta())
	}
	if ends[0].Current != (Vec2{31, 21}) || ends[0].Cancelled {
		t.Errorf("end payload = %+v", ends[0])
	}
	if _, ok := ends[0].Event.(*PointerEvent); !ok {
		t.Errorf("end Event = %T, want *PointerEvent", ends[0].Event)
	}
}

func TestCancelledEventCarriesKeyEvent(t *testing.T) {
	in, _, rec, _ := newTestRig(t, Options{})

	var end GestureEvent
	rec.OnDragEnd(func(ev GestureEvent) { end = ev })

	in.Press(10, 10)
	in.Move(30, 10)
	in.KeyDown(KeyEscape)

	if !end.Cancelled {
		t.Fatal("Cancelled = false for an escape cancellation")
	}
	key, ok := end.Event.(*KeyEvent)
	if !ok {
		t.Fatalf("end Event = %T, want *KeyEvent", end.Event)
	}
	if key.Name != KeyEscape {
		t.Errorf("key name = %q, want %q", key.Name, KeyEscape)
	}
}

// --- Benchmarks ---

func BenchmarkDragMove(b *testing.B) {
	in := NewSyntheticInput()
	region := in.Region(Rect{Width: 1000, Height: 1000}, TargetGeneric)
	rec, err := NewRecognizer(in, Options{}, region)
	if err != nil {
		b.Fatal(err)
	}
	rec.OnDrag(func(GestureEvent) {})

	in.Press(0, 0)
	in.Move(10, 10)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		in.Move(float64(10+i%100), 10)
	}
}

func BenchmarkUnobservedGesture(b *testing.B) {
	in := NewSyntheticInput()
	region := in.Region(Rect{Width: 1000, Height: 1000}, TargetGeneric)
	if _, err := NewRecognizer(in, Options{}, region); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		in.Press(0, 0)
		in.Move(20, 0)
		in.Release(20, 0)
	}
}
