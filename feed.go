package grasp

// subscriber pairs a notification callback with its registration id.
type subscriber struct {
	id uint32
	fn func(GestureEvent)
}

// feed is a lazily activated broadcast list for one notification kind.
// Storage is allocated on the first subscription and released when the last
// subscriber leaves, so a feed nobody listens to costs a length check per
// gesture. Not safe for concurrent use; feeds live on the input goroutine
// with everything else.
type feed struct {
	nextID uint32
	subs   []subscriber
}

// subscribe registers fn and returns a handle that can remove it.
func (f *feed) subscribe(fn func(GestureEvent)) CallbackHandle {
	f.nextID++
	f.subs = append(f.subs, subscriber{id: f.nextID, fn: fn})
	return CallbackHandle{feed: f, id: f.nextID}
}

// remove drops the subscriber with the given id. The remaining subscribers
// move to a fresh slice so an emit in progress keeps iterating its own
// snapshot undisturbed.
func (f *feed) remove(id uint32) {
	for i := range f.subs {
		if f.subs[i].id != id {
			continue
		}
		if len(f.subs) == 1 {
			f.subs = nil
			return
		}
		next := make([]subscriber, 0, len(f.subs)-1)
		next = append(next, f.subs[:i]...)
		next = append(next, f.subs[i+1:]...)
		f.subs = next
		return
	}
}

// active reports whether anyone is subscribed. Emitters check it first so an
// unobserved feed costs nothing, not even event construction.
func (f *feed) active() bool {
	return len(f.subs) > 0
}

// emit delivers ev to every subscriber registered before the call. Handlers
// may remove themselves or subscribe new handlers during dispatch; neither
// affects the current delivery round.
func (f *feed) emit(ev GestureEvent) {
	subs := f.subs
	for i := range subs {
		subs[i].fn(ev)
	}
}

// CallbackHandle identifies one subscription to a notification feed.
// The zero value is inert.
type CallbackHandle struct {
	feed *feed
	id   uint32
}

// Remove unregisters the callback so it no longer fires. Safe to call more
// than once, and safe to call from inside a notification callback.
func (h CallbackHandle) Remove() {
	if h.feed == nil {
		return
	}
	h.feed.remove(h.id)
}
