package grasp

// Dispatcher is the event-routing core shared by every input backend in this
// module and available to adapters for other platforms: embed one, translate
// platform events into [PointerEvent], [KeyEvent], and [FocusEvent] values,
// and feed them through the Dispatch methods. The embedding type then
// satisfies [Stage], and its [Dispatcher.Region] surfaces satisfy [Surface].
//
// Backends own the tick structure: call [Dispatcher.Settle] once per input
// tick, after every primitive the tick produces (including synthesized
// clicks), so deferred work sees a fully dispatched tick.
//
// Propagation stopping works through [Flags]: when an event's Actions is a
// *Flags, a listener calling StopPropagation hides the event from the
// remaining listeners and regions. Events carrying a foreign Actions
// implementation are delivered to every listener.
type Dispatcher struct {
	touchMove    pointerList
	touchRelease pointerList
	mouseMove    pointerList
	mouseRelease pointerList
	keys         keyList
	focus        focusList

	regions  []*Region
	deferred []func()
}

// OnTouchMove installs a window-global listener for touch movement.
func (d *Dispatcher) OnTouchMove(fn func(*PointerEvent)) (Binding, error) {
	return d.touchMove.add(fn), nil
}

// OnTouchRelease installs a window-global listener for the last contact
// lifting.
func (d *Dispatcher) OnTouchRelease(fn func(*PointerEvent)) (Binding, error) {
	return d.touchRelease.add(fn), nil
}

// OnMouseMove installs a window-global listener for mouse movement.
func (d *Dispatcher) OnMouseMove(fn func(*PointerEvent)) (Binding, error) {
	return d.mouseMove.add(fn), nil
}

// OnMouseRelease installs a window-global listener for mouse release.
func (d *Dispatcher) OnMouseRelease(fn func(*PointerEvent)) (Binding, error) {
	return d.mouseRelease.add(fn), nil
}

// OnKeyDown installs a window-global listener for key presses.
func (d *Dispatcher) OnKeyDown(fn func(*KeyEvent)) (Binding, error) {
	return d.keys.add(fn), nil
}

// OnBlur installs a listener for loss of window focus.
func (d *Dispatcher) OnBlur(fn func(*FocusEvent)) (Binding, error) {
	return d.focus.add(fn), nil
}

// Defer schedules fn to run once the current input tick has fully
// dispatched, including any events the tick still synthesizes.
func (d *Dispatcher) Defer(fn func()) {
	d.deferred = append(d.deferred, fn)
}

// Region creates a new watched area on top of the existing ones.
func (d *Dispatcher) Region(bounds Rect, kind TargetKind) *Region {
	g := &Region{Bounds: bounds, Kind: kind}
	d.regions = append(d.regions, g)
	return g
}

// Settle runs and clears the deferred queue. Backends call it once per
// input tick, after all dispatch. Deferred work may defer more work; it
// runs in the same settle.
func (d *Dispatcher) Settle() {
	for len(d.deferred) > 0 {
		fns := d.deferred
		d.deferred = nil
		for _, fn := range fns {
			fn()
		}
	}
}

// TargetAt classifies the topmost region containing pos. Positions outside
// every region are TargetGeneric.
func (d *Dispatcher) TargetAt(pos Vec2) TargetKind {
	for i := len(d.regions) - 1; i >= 0; i-- {
		if d.regions[i].Bounds.Contains(pos.X, pos.Y) {
			return d.regions[i].Kind
		}
	}
	return TargetGeneric
}

// eventFlags recovers the propagation state the backend attached to the
// event, if any.
func eventFlags(a Actions) *Flags {
	flags, _ := a.(*Flags)
	return flags
}

// DispatchPress delivers a press to every region containing its position,
// topmost first, honoring stopped propagation. The event's Source selects
// the touch or mouse press listeners.
func (d *Dispatcher) DispatchPress(e *PointerEvent) {
	flags := eventFlags(e.Actions)
	for i := len(d.regions) - 1; i >= 0; i-- {
		g := d.regions[i]
		if !g.Bounds.Contains(e.Position.X, e.Position.Y) {
			continue
		}
		if e.Source == Touch {
			g.touchPress.emit(e, flags)
		} else {
			g.mousePress.emit(e, flags)
		}
		if flags != nil && flags.PropagationStopped {
			return
		}
	}
}

// tapSlop is how far a touch contact may wander, in pixels, and still
// count as a tap for click synthesis. Mouse clicks have no slop; platforms
// fire them on any press/release pair over the same element.
const tapSlop = 8.0

// DispatchClick delivers a synthetic click to every region containing both
// the press and the release position, topmost first, honoring stopped
// propagation. Platforms fire the click on the element that saw both
// halves of it.
func (d *Dispatcher) DispatchClick(pressPos, releasePos Vec2, e *PointerEvent) {
	flags := eventFlags(e.Actions)
	for i := len(d.regions) - 1; i >= 0; i-- {
		g := d.regions[i]
		if !g.Bounds.Contains(pressPos.X, pressPos.Y) {
			continue
		}
		if !g.Bounds.Contains(releasePos.X, releasePos.Y) {
			continue
		}
		g.click.emit(e, flags)
		if flags != nil && flags.PropagationStopped {
			return
		}
	}
}

// DispatchTouchMove delivers a touch move to the window-global listeners.
func (d *Dispatcher) DispatchTouchMove(e *PointerEvent) {
	d.touchMove.emit(e, eventFlags(e.Actions))
}

// DispatchTouchRelease delivers the last contact lifting to the
// window-global listeners.
func (d *Dispatcher) DispatchTouchRelease(e *PointerEvent) {
	d.touchRelease.emit(e, eventFlags(e.Actions))
}

// DispatchMouseMove delivers a mouse move to the window-global listeners.
func (d *Dispatcher) DispatchMouseMove(e *PointerEvent) {
	d.mouseMove.emit(e, eventFlags(e.Actions))
}

// DispatchMouseRelease delivers a mouse release to the window-global
// listeners.
func (d *Dispatcher) DispatchMouseRelease(e *PointerEvent) {
	d.mouseRelease.emit(e, eventFlags(e.Actions))
}

// DispatchKeyDown delivers a key press to the window-global listeners.
func (d *Dispatcher) DispatchKeyDown(e *KeyEvent) {
	d.keys.emit(e, eventFlags(e.Actions))
}

// DispatchBlur delivers loss of window focus to the window-global
// listeners.
func (d *Dispatcher) DispatchBlur(e *FocusEvent) {
	d.focus.emit(e, eventFlags(e.Actions))
}
