// Package gioinput feeds [Gio] window events into a grasp dispatcher.
//
// The adapter is [Input]. Create hit regions on it, attach recognizers, and
// forward every event from the window loop to [Input.HandleEvent]; event
// types with no gesture meaning are ignored, so no filtering is needed.
//
// Usage:
//
//	in := gioinput.New()
//	region := in.Region(grasp.Rect{Width: 200, Height: 120}, grasp.TargetGeneric)
//	rec, _ := grasp.NewRecognizer(in, grasp.Options{}, region)
//	rec.OnDrag(func(ev grasp.GestureEvent) { move(ev.Delta()) })
//
//	for {
//		switch e := window.Event().(type) {
//		case app.DestroyEvent:
//			return e.Err
//		case app.FrameEvent:
//			// layout and draw
//		default:
//			in.HandleEvent(e)
//		}
//	}
//
// This package lives in its own module so grasp itself does not depend on
// Gio.
//
// [Gio]: https://gioui.org
package gioinput
