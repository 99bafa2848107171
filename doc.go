// Package grasp recognizes pointer drag gestures over mouse and touch input
// and reports them through one uniform notification stream.
//
// A [Recognizer] watches one or more [Surface] values for press-down, then
// follows the gesture through window-global [Stage] listeners: movement past
// a small threshold confirms a drag, the escape key or window focus loss
// cancels it, and letting go ends it. Consumers subscribe to the start,
// move, and end feeds and never deal with the mouse/touch split, scroll
// disambiguation, or the synthetic click that platforms fire after a
// mouse drag.
//
// # Quick start
//
// With [Ebitengine], create an [EbitenInput], carve out the draggable area
// as a [Region], and pump it from your game's Update:
//
//	input := grasp.NewEbitenInput()
//	box := input.Region(grasp.Rect{X: 40, Y: 40, Width: 120, Height: 80}, grasp.TargetGeneric)
//
//	rec, err := grasp.NewRecognizer(input, grasp.Options{}, box)
//	if err != nil {
//		log.Fatal(err)
//	}
//	rec.OnDrag(func(ev grasp.GestureEvent) {
//		pos = startPos.Add(ev.Delta())
//	})
//
//	func (g *game) Update() error { g.input.Update(); return nil }
//
// The same recognizer code runs unchanged on a [MobileInput] fed from a
// golang.org/x/mobile event loop, on the headless [SyntheticInput] used in
// tests and scripted demos, or on any other Surface/Stage implementation.
//
// # Gesture lifecycle
//
// A press on a watched surface opens a gesture attempt. Until movement
// reaches the threshold (1 pixel by default, see [Options.Threshold])
// nothing is reported: a motionless press and release is a plain click and
// grasp stays silent. Once movement clears the threshold, [Recognizer.OnDragStart]
// fires with the press origin, immediately followed by the first
// [Recognizer.OnDrag]. Every further move fires OnDrag again, and
// [Recognizer.OnDragEnd] fires exactly once per confirmed drag, with
// Cancelled set when escape or focus loss ended it.
//
// Only one gesture is tracked at a time; presses during an open gesture are
// ignored, including presses on other surfaces watched by the same
// recognizer. Multi-touch never drags: a second finger on the press is
// ignored and a second finger mid-drag aborts without an end notification.
//
// # Axis constraint
//
// A recognizer constrained with [AxisHorizontal] or [AxisVertical] yields
// touch gestures that begin predominantly along the other axis back to the
// platform, so a horizontal carousel inside a vertically scrolling page
// does not trap scrolling. See [Axis].
//
// # Concurrency
//
// Everything lives on the platform's input goroutine: construction,
// subscription, event delivery, and disposal. The recognizer takes no locks
// and never blocks; do not share one across goroutines.
//
// [Ebitengine]: https://ebitengine.org
package grasp
