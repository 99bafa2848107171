package grasp

import "time"

const (
	// velocityWindow is how far back samples still contribute to the
	// estimate. Older movement says nothing about the speed a gesture
	// ended at.
	velocityWindow = 100 * time.Millisecond
	// velocitySamples is the ring capacity. At typical move event rates it
	// holds more than velocityWindow worth of history.
	velocitySamples = 16
)

// velocitySample is one timestamped pointer position.
type velocitySample struct {
	pos Vec2
	at  time.Time
}

// VelocityTracker estimates pointer velocity from recent positions, for
// callers that want fling or momentum behavior when a drag ends. Feed it
// from the drag notifications and read it at the end:
//
//	var vt grasp.VelocityTracker
//	rec.OnDragStart(func(ev grasp.GestureEvent) {
//		vt.Reset()
//		vt.Sample(ev.Current)
//	})
//	rec.OnDrag(func(ev grasp.GestureEvent) { vt.Sample(ev.Current) })
//	rec.OnDragEnd(func(ev grasp.GestureEvent) { fling(vt.Velocity()) })
//
// The zero value is ready to use. Like the recognizer, a tracker belongs to
// the input goroutine.
type VelocityTracker struct {
	samples [velocitySamples]velocitySample
	head    int // next write position
	count   int
	now     func() time.Time
}

// SetNowFunc replaces the clock, for tests. A nil fn restores time.Now.
func (t *VelocityTracker) SetNowFunc(fn func() time.Time) {
	t.now = fn
}

func (t *VelocityTracker) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

// Reset discards all history. Call it when a new gesture begins so the
// previous gesture's speed cannot leak into this one.
func (t *VelocityTracker) Reset() {
	t.head = 0
	t.count = 0
}

// Sample records the pointer position at the current time.
func (t *VelocityTracker) Sample(pos Vec2) {
	t.samples[t.head] = velocitySample{pos: pos, at: t.clock()}
	t.head = (t.head + 1) % velocitySamples
	if t.count < velocitySamples {
		t.count++
	}
}

// Velocity returns the estimated pointer velocity in pixels per second,
// measured across the samples inside velocityWindow of the newest one.
// Fewer than two usable samples, or zero elapsed time between them, yield
// a zero vector.
func (t *VelocityTracker) Velocity() Vec2 {
	if t.count < 2 {
		return Vec2{}
	}
	newest := t.sampleBack(0)
	oldest := newest
	for i := 1; i < t.count; i++ {
		s := t.sampleBack(i)
		if newest.at.Sub(s.at) > velocityWindow {
			break
		}
		oldest = s
	}
	dt := newest.at.Sub(oldest.at).Seconds()
	if dt <= 0 {
		return Vec2{}
	}
	return newest.pos.Sub(oldest.pos).Scale(1 / dt)
}

// sampleBack returns the i-th most recent sample. i must be < count.
func (t *VelocityTracker) sampleBack(i int) velocitySample {
	idx := (t.head - 1 - i + 2*velocitySamples) % velocitySamples
	return t.samples[idx]
}
