package grasp

// Binding is a handle to one installed listener. Remove detaches the
// listener; calling it again is a no-op.
type Binding interface {
	Remove()
}

// Surface is an interactive element watched for gesture starts. The press
// and click primitives delivered through it must already be scoped to the
// element: hit-testing is the Surface implementation's job, not the
// recognizer's. Implementations must deliver events on the platform's input
// goroutine.
//
// Region is the Surface used by the in-package backends; adapters for other
// platforms provide their own.
type Surface interface {
	// OnTouchPress installs a listener for touch press-down on the element.
	OnTouchPress(fn func(*PointerEvent)) (Binding, error)
	// OnMousePress installs a listener for mouse press-down on the element.
	OnMousePress(fn func(*PointerEvent)) (Binding, error)
	// OnClick installs a listener for clicks on the element. Listeners run
	// newest first, so a freshly installed listener can intercept a click
	// before earlier ones observe it.
	OnClick(fn func(*PointerEvent)) (Binding, error)
}

// Stage is the window-global input channel. Moves and releases must be
// observable wherever the pointer is, not just over the originating Surface:
// a drag routinely leaves the element it started on, and letting go outside
// the element still ends the gesture.
type Stage interface {
	// OnTouchMove installs a window-global listener for touch movement.
	OnTouchMove(fn func(*PointerEvent)) (Binding, error)
	// OnTouchRelease installs a window-global listener for the last touch
	// contact lifting.
	OnTouchRelease(fn func(*PointerEvent)) (Binding, error)
	// OnMouseMove installs a window-global listener for mouse movement.
	OnMouseMove(fn func(*PointerEvent)) (Binding, error)
	// OnMouseRelease installs a window-global listener for mouse button
	// release.
	OnMouseRelease(fn func(*PointerEvent)) (Binding, error)
	// OnKeyDown installs a window-global listener for key presses.
	OnKeyDown(fn func(*KeyEvent)) (Binding, error)
	// OnBlur installs a listener for loss of window focus.
	OnBlur(fn func(*FocusEvent)) (Binding, error)
	// Defer schedules fn to run once the platform finishes delivering the
	// current input tick, after any events the tick still synthesizes.
	Defer(fn func())
}
