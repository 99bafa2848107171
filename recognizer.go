package grasp

import (
	"github.com/pkg/errors"
)

// DefaultThreshold is the movement in pixels that confirms a drag. Presses
// that never travel this far from their origin are plain clicks and produce
// no notifications.
const DefaultThreshold = 1.0

// Options configures a Recognizer at construction time.
type Options struct {
	// DisableTouch stops the recognizer from watching touch presses.
	DisableTouch bool
	// DisableMouse stops the recognizer from watching mouse presses.
	DisableMouse bool
	// Axis constrains recognition to one screen axis. The zero value
	// recognizes drags in any direction.
	Axis Axis
	// Threshold overrides DefaultThreshold when positive.
	Threshold float64
}

// Recognizer turns raw press, move, and release primitives into drag
// notifications with one shape across mouse and touch. It watches one or
// more Surfaces for presses; once a press is accepted it follows the gesture
// through window-global Stage listeners, so dragging beyond the surface (or
// even the window) keeps working.
//
// A Recognizer tracks at most one gesture at a time. While a gesture is
// open, presses on every watched surface are ignored, which keeps nested or
// overlapping surfaces from starting a second gesture.
//
// All methods must be called from the platform's input goroutine. The
// recognizer never blocks and takes no locks.
type Recognizer struct {
	stage     Stage
	surfaces  []Surface
	axis      Axis
	threshold float64
	touch     bool
	mouse     bool

	starts feed
	moves  feed
	ends   feed

	// Gesture state. handled spans press acceptance to teardown; dragging
	// flips once movement clears the threshold.
	handled  bool
	dragging bool
	start    Vec2
	current  Vec2
	origin   Surface   // surface the open gesture began on
	active   []Binding // transient listeners, removed as a group

	installed []Binding // press listeners, live until Dispose
	disposed  bool
	debug     bool
}

// NewRecognizer watches the given surfaces for presses on every enabled
// modality. It fails when stage is nil, when no surface is given, when both
// modalities are disabled, or when a press listener cannot be attached.
// A partially attached recognizer is rolled back before returning.
func NewRecognizer(stage Stage, opts Options, surfaces ...Surface) (*Recognizer, error) {
	if stage == nil {
		return nil, errors.New("grasp: nil stage")
	}
	if len(surfaces) == 0 {
		return nil, errors.New("grasp: no surfaces to watch")
	}
	if opts.DisableTouch && opts.DisableMouse {
		return nil, errors.New("grasp: touch and mouse both disabled")
	}
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	r := &Recognizer{
		stage:     stage,
		surfaces:  surfaces,
		axis:      opts.Axis,
		threshold: threshold,
		touch:     !opts.DisableTouch,
		mouse:     !opts.DisableMouse,
	}
	for _, s := range surfaces {
		if r.touch {
			b, err := s.OnTouchPress(r.pressFunc(s))
			if err != nil {
				r.Dispose()
				return nil, errors.Wrap(err, "grasp: attach touch press listener")
			}
			r.installed = append(r.installed, b)
		}
		if r.mouse {
			b, err := s.OnMousePress(r.pressFunc(s))
			if err != nil {
				r.Dispose()
				return nil, errors.Wrap(err, "grasp: attach mouse press listener")
			}
			r.installed = append(r.installed, b)
		}
	}
	return r, nil
}

// pressFunc binds the press handler to the surface it watches.
func (r *Recognizer) pressFunc(s Surface) func(*PointerEvent) {
	return func(e *PointerEvent) { r.press(s, e) }
}

// OnDragStart subscribes to drag confirmations. The event carries the press
// origin as both Start and Current; the first move notification follows
// immediately within the same input tick.
func (r *Recognizer) OnDragStart(fn func(GestureEvent)) CallbackHandle {
	return r.starts.subscribe(fn)
}

// OnDrag subscribes to movement of a confirmed drag.
func (r *Recognizer) OnDrag(fn func(GestureEvent)) CallbackHandle {
	return r.moves.subscribe(fn)
}

// OnDragEnd subscribes to the end of a confirmed drag. Cancelled is set when
// the gesture was ended by the escape key or focus loss rather than by
// lifting the pointer.
func (r *Recognizer) OnDragEnd(fn func(GestureEvent)) CallbackHandle {
	return r.ends.subscribe(fn)
}

// SetAxis changes the axis constraint. An already confirmed drag is not
// re-evaluated; the constraint applies from the next unconfirmed gesture
// movement.
func (r *Recognizer) SetAxis(axis Axis) {
	r.axis = axis
}

// Axis returns the current axis constraint.
func (r *Recognizer) Axis() Axis {
	return r.axis
}

// SetThreshold changes the drag confirmation distance in pixels.
// Non-positive values restore DefaultThreshold.
func (r *Recognizer) SetThreshold(pixels float64) {
	if pixels <= 0 {
		pixels = DefaultThreshold
	}
	r.threshold = pixels
}

// Dragging reports whether a confirmed drag is in progress.
func (r *Recognizer) Dragging() bool {
	return r.dragging
}

// SetDebug turns state transition traces on stderr on or off.
func (r *Recognizer) SetDebug(on bool) {
	r.debug = on
}

// press is the shared decision tree for touch and mouse press-down.
func (r *Recognizer) press(s Surface, e *PointerEvent) {
	r.debugCheckDisposed("press")
	if r.disposed {
		return
	}
	if e.Source == Touch && e.Touches > 1 {
		r.debugf("press ignored: %d contacts", e.Touches)
		return
	}
	if e.Source == Mouse && !e.Buttons.Contain(ButtonPrimary) {
		r.debugf("press ignored: buttons %v", e.Buttons)
		return
	}
	if r.handled {
		r.debugf("press ignored: gesture already open")
		return
	}

	r.handled = true
	r.start = e.Position
	r.current = e.Position
	r.origin = s
	if !r.watch(e.Source) {
		return
	}

	// Native mouse press behavior (text selection, image dragging) would
	// fight the gesture. Form controls keep it, or focus and dropdowns
	// would break.
	if e.Source == Mouse && !e.Target.retainsDefault() {
		e.SuppressDefault()
	}
	r.debugf("press accepted at (%g, %g) via %v", e.Position.X, e.Position.Y, e.Source)
}

// watch installs the transient listeners for one open gesture: move and
// release of the pressing modality plus escape and focus loss. On attach
// failure the gesture is abandoned before it produced anything.
func (r *Recognizer) watch(src Source) bool {
	onMove, onRelease := r.stage.OnMouseMove, r.stage.OnMouseRelease
	if src == Touch {
		onMove, onRelease = r.stage.OnTouchMove, r.stage.OnTouchRelease
	}
	attach := []func() (Binding, error){
		func() (Binding, error) { return onMove(r.move) },
		func() (Binding, error) { return onRelease(r.release) },
		func() (Binding, error) { return r.stage.OnKeyDown(r.keyDown) },
		func() (Binding, error) { return r.stage.OnBlur(r.blur) },
	}
	for _, fn := range attach {
		b, err := fn()
		if err != nil {
			r.debugf("gesture abandoned: %v", err)
			r.reset()
			return false
		}
		r.active = append(r.active, b)
	}
	return true
}

// move follows the pointer while a gesture is open.
func (r *Recognizer) move(e *PointerEvent) {
	r.debugCheckDisposed("move")
	if !r.handled {
		return
	}
	if e.Source == Touch && e.Touches > 1 {
		// A second finger turns the gesture into something else (a pinch,
		// a fumble). Abort hard: no notifications, not even an end.
		r.debugf("gesture aborted: %d contacts", e.Touches)
		r.reset()
		return
	}

	delta := e.Position.Sub(r.start)
	if e.Source == Touch && !r.dragging && r.axis.scrolls(delta) {
		// The perpendicular direction belongs to native scrolling. Hand the
		// gesture back untouched so the platform still scrolls.
		r.debugf("gesture yielded to scroll, delta (%g, %g)", delta.X, delta.Y)
		r.reset()
		return
	}

	e.SuppressDefault()
	if !r.dragging {
		if delta.Len() < r.threshold {
			// Sub-threshold jitter. Some platforms deliver a move even for
			// a motionless click.
			return
		}
		if r.starts.active() {
			r.starts.emit(GestureEvent{Event: e, Start: r.start, Current: r.start})
		}
		r.dragging = true
		r.debugf("drag confirmed at (%g, %g)", e.Position.X, e.Position.Y)
	}
	r.current = e.Position
	if r.moves.active() {
		r.moves.emit(GestureEvent{Event: e, Start: r.start, Current: r.current})
	}
}

// release ends the open gesture at the pointer's release position.
func (r *Recognizer) release(e *PointerEvent) {
	r.debugCheckDisposed("release")
	if !r.handled {
		return
	}
	wasDragging := r.dragging
	origin := r.origin
	if wasDragging {
		e.SuppressDefault()
	}
	r.finish(e, e.Position, false)
	if wasDragging && e.Source == Mouse {
		// The platform will synthesize a click on the press target right
		// after this release. A drag is not a click; intercept it.
		r.suppressClick(origin)
	}
}

// keyDown cancels the open gesture when escape is pressed. Other keys pass
// through untouched.
func (r *Recognizer) keyDown(e *KeyEvent) {
	if e.Name != KeyEscape || !r.handled {
		return
	}
	r.debugf("gesture cancelled: escape")
	r.finish(e, r.current, true)
}

// blur cancels the open gesture when the window loses focus. Without this a
// drag opened before an alt-tab would stay stuck until the next unrelated
// release.
func (r *Recognizer) blur(e *FocusEvent) {
	if !r.handled {
		return
	}
	r.debugf("gesture cancelled: focus lost")
	r.finish(e, r.current, true)
}

// finish closes the open gesture. A confirmed drag emits exactly one end
// notification; an unconfirmed press was a plain click and ends silently.
// State resets either way.
func (r *Recognizer) finish(e Event, pos Vec2, cancelled bool) {
	if r.dragging {
		if r.ends.active() {
			r.ends.emit(GestureEvent{Event: e, Start: r.start, Current: pos, Cancelled: cancelled})
		}
		r.debugf("drag ended at (%g, %g), cancelled=%v", pos.X, pos.Y, cancelled)
	}
	r.reset()
}

// reset removes the transient listeners and returns to idle.
func (r *Recognizer) reset() {
	for _, b := range r.active {
		b.Remove()
	}
	r.active = nil
	r.handled = false
	r.dragging = false
	r.start = Vec2{}
	r.current = Vec2{}
	r.origin = nil
}

// Dispose removes the press listeners and discards any open gesture without
// emitting an end notification. Safe to call more than once; a disposed
// recognizer ignores all further input.
func (r *Recognizer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.reset()
	for _, b := range r.installed {
		b.Remove()
	}
	r.installed = nil
}
