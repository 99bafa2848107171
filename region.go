package grasp

// pointerEntry pairs a pointer listener with its registration id.
type pointerEntry struct {
	id uint32
	fn func(*PointerEvent)
}

// pointerList is an ordered set of pointer listeners with stable removal
// handles. Dispatch runs newest first so interceptors installed during a
// gesture (the click suppressor) see events before older listeners.
type pointerList struct {
	nextID  uint32
	entries []pointerEntry
}

func (l *pointerList) add(fn func(*PointerEvent)) Binding {
	l.nextID++
	l.entries = append(l.entries, pointerEntry{id: l.nextID, fn: fn})
	return &listenerBinding{remove: l.remove, id: l.nextID}
}

// remove moves the surviving entries to a fresh slice so a dispatch in
// progress keeps iterating its own snapshot.
func (l *pointerList) remove(id uint32) {
	for i := range l.entries {
		if l.entries[i].id != id {
			continue
		}
		if len(l.entries) == 1 {
			l.entries = nil
			return
		}
		next := make([]pointerEntry, 0, len(l.entries)-1)
		next = append(next, l.entries[:i]...)
		next = append(next, l.entries[i+1:]...)
		l.entries = next
		return
	}
}

// emit delivers e newest-listener-first, stopping when a listener stops
// propagation.
func (l *pointerList) emit(e *PointerEvent, flags *Flags) {
	entries := l.entries
	for i := len(entries) - 1; i >= 0; i-- {
		entries[i].fn(e)
		if flags != nil && flags.PropagationStopped {
			return
		}
	}
}

type keyEntry struct {
	id uint32
	fn func(*KeyEvent)
}

type keyList struct {
	nextID  uint32
	entries []keyEntry
}

func (l *keyList) add(fn func(*KeyEvent)) Binding {
	l.nextID++
	l.entries = append(l.entries, keyEntry{id: l.nextID, fn: fn})
	return &listenerBinding{remove: l.remove, id: l.nextID}
}

func (l *keyList) remove(id uint32) {
	for i := range l.entries {
		if l.entries[i].id != id {
			continue
		}
		if len(l.entries) == 1 {
			l.entries = nil
			return
		}
		next := make([]keyEntry, 0, len(l.entries)-1)
		next = append(next, l.entries[:i]...)
		next = append(next, l.entries[i+1:]...)
		l.entries = next
		return
	}
}

func (l *keyList) emit(e *KeyEvent, flags *Flags) {
	entries := l.entries
	for i := len(entries) - 1; i >= 0; i-- {
		entries[i].fn(e)
		if flags != nil && flags.PropagationStopped {
			return
		}
	}
}

type focusEntry struct {
	id uint32
	fn func(*FocusEvent)
}

type focusList struct {
	nextID  uint32
	entries []focusEntry
}

func (l *focusList) add(fn func(*FocusEvent)) Binding {
	l.nextID++
	l.entries = append(l.entries, focusEntry{id: l.nextID, fn: fn})
	return &listenerBinding{remove: l.remove, id: l.nextID}
}

func (l *focusList) remove(id uint32) {
	for i := range l.entries {
		if l.entries[i].id != id {
			continue
		}
		if len(l.entries) == 1 {
			l.entries = nil
			return
		}
		next := make([]focusEntry, 0, len(l.entries)-1)
		next = append(next, l.entries[:i]...)
		next = append(next, l.entries[i+1:]...)
		l.entries = next
		return
	}
}

func (l *focusList) emit(e *FocusEvent, flags *Flags) {
	entries := l.entries
	for i := len(entries) - 1; i >= 0; i-- {
		entries[i].fn(e)
		if flags != nil && flags.PropagationStopped {
			return
		}
	}
}

// listenerBinding removes one listener from the list that created it.
type listenerBinding struct {
	remove func(uint32)
	id     uint32
}

// Remove detaches the listener. Calling it again is a no-op.
func (b *listenerBinding) Remove() {
	if b.remove == nil {
		return
	}
	b.remove(b.id)
	b.remove = nil
}

// Region is a rectangular Surface served by the in-package input backends
// and by any adapter built on [Dispatcher]. A backend dispatches each press
// to every region containing the press position and each synthetic click to
// every region containing both the press and the release position, topmost
// (most recently created) first. A listener that stops propagation hides
// the event from regions below and from listeners installed earlier on the
// same region.
type Region struct {
	// Bounds is the watched area in page coordinates.
	Bounds Rect
	// Kind classifies the region for default-action decisions. Presses on
	// TargetGeneric regions have their native behavior suppressed by an
	// attached recognizer; form-control kinds keep it.
	Kind TargetKind

	touchPress pointerList
	mousePress pointerList
	click      pointerList
}

var _ Surface = (*Region)(nil)

// OnTouchPress installs a listener for touch press-down inside the region.
func (g *Region) OnTouchPress(fn func(*PointerEvent)) (Binding, error) {
	return g.touchPress.add(fn), nil
}

// OnMousePress installs a listener for mouse press-down inside the region.
func (g *Region) OnMousePress(fn func(*PointerEvent)) (Binding, error) {
	return g.mousePress.add(fn), nil
}

// OnClick installs a listener for clicks on the region. Listeners run
// newest first.
func (g *Region) OnClick(fn func(*PointerEvent)) (Binding, error) {
	return g.click.add(fn), nil
}
