package grasp

import "math"

// Axis constrains drag recognition to one screen axis so the perpendicular
// axis stays available for native scrolling on touch devices.
type Axis uint8

const (
	// AxisBoth recognizes drags in any direction. This is the zero value.
	AxisBoth Axis = iota
	// AxisHorizontal recognizes horizontal drags. A touch gesture whose
	// first qualifying movement is predominantly vertical is handed back to
	// the platform as a scroll.
	AxisHorizontal
	// AxisVertical recognizes vertical drags. A touch gesture whose first
	// qualifying movement is predominantly horizontal is handed back to the
	// platform as a scroll.
	AxisVertical
)

// String returns the axis name. It panics on an invalid value.
func (a Axis) String() string {
	switch a {
	case AxisBoth:
		return "both"
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		panic("grasp: invalid Axis")
	}
}

// scrolls reports whether a touch gesture's first movement of delta should
// be yielded to native scrolling instead of being recognized. Equal
// components favor recognition.
func (a Axis) scrolls(delta Vec2) bool {
	switch a {
	case AxisHorizontal:
		return math.Abs(delta.Y) > math.Abs(delta.X)
	case AxisVertical:
		return math.Abs(delta.X) > math.Abs(delta.Y)
	default:
		return false
	}
}
