package grasp

// suppressClick installs a one-shot click interceptor on the surface a
// mouse drag began on. Browser-like platforms synthesize a click on the
// press target after the release that ended the drag; to the user the
// pointer was dragging, not clicking, so the element must never see it.
//
// The interceptor stops propagation and suppresses the default action of
// any click delivered before the platform settles the current input tick,
// then removes itself unconditionally. A later, unrelated click is
// unaffected whether or not a synthetic click ever arrived.
func (r *Recognizer) suppressClick(s Surface) {
	b, err := s.OnClick(func(e *PointerEvent) {
		e.StopPropagation()
		e.SuppressDefault()
	})
	if err != nil {
		// The gesture already ended cleanly; a stray click is the worst
		// outcome, so log rather than fail.
		r.debugf("click suppressor attach failed: %v", err)
		return
	}
	r.stage.Defer(b.Remove)
	r.debugf("click suppressor armed")
}
