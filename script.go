package grasp

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action  string  `json:"action"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Steps   int     `json:"steps,omitempty"`
	Touches int     `json:"touches,omitempty"`
	Key     string  `json:"key,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for a gesture script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// scriptActions names every action LoadScript accepts.
var scriptActions = map[string]bool{
	"press":        true, // mouse press at x, y
	"move":         true, // mouse move to x, y
	"release":      true, // mouse release at x, y
	"click":        true, // mouse press and release at x, y
	"drag":         true, // mouse drag fromX, fromY to toX, toY over steps moves
	"touchpress":   true, // touch press at x, y with touches contacts
	"touchmove":    true, // touch move to x, y with touches contacts
	"touchrelease": true, // touch release at x, y
	"touchdrag":    true, // touch drag fromX, fromY to toX, toY over steps moves
	"key":          true, // key press of key
	"blur":         true, // window focus loss
	"wait":         true, // idle for frames ticks of Step
}

// Script is a replayable sequence of input primitives parsed from JSON.
// Scripts drive a SyntheticInput, either all at once through Play or one
// action per frame through Step, which makes them usable both in tests and
// as attract-mode input for demos.
type Script struct {
	steps  []scriptStep
	cursor int
	wait   int
}

// LoadScript parses a JSON gesture script. Every step's action is validated
// here so a typo fails at load time, not halfway through a replay.
func LoadScript(data []byte) (*Script, error) {
	var file scriptFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "grasp: parse gesture script")
	}
	if len(file.Steps) == 0 {
		return nil, errors.New("grasp: gesture script has no steps")
	}
	for i, st := range file.Steps {
		if !scriptActions[st.Action] {
			return nil, errors.Errorf("grasp: gesture script step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: file.Steps}, nil
}

// Len returns the number of steps in the script.
func (sc *Script) Len() int {
	return len(sc.steps)
}

// Done reports whether the script has run out of steps.
func (sc *Script) Done() bool {
	return sc.cursor >= len(sc.steps) && sc.wait == 0
}

// Reset rewinds the script so it can be replayed.
func (sc *Script) Reset() {
	sc.cursor = 0
	sc.wait = 0
}

// Step executes the next action against in. A wait action idles for its
// frame count; every other action completes within the call. Calling Step
// on a finished script is a no-op.
func (sc *Script) Step(in *SyntheticInput) {
	if sc.wait > 0 {
		sc.wait--
		return
	}
	if sc.cursor >= len(sc.steps) {
		return
	}
	st := sc.steps[sc.cursor]
	sc.cursor++
	sc.apply(st, in)
}

// Play executes every remaining step against in, collapsing waits.
func (sc *Script) Play(in *SyntheticInput) {
	for sc.cursor < len(sc.steps) {
		st := sc.steps[sc.cursor]
		sc.cursor++
		if st.Action == "wait" {
			continue
		}
		sc.apply(st, in)
	}
	sc.wait = 0
}

func (sc *Script) apply(st scriptStep, in *SyntheticInput) {
	touches := st.Touches
	if touches < 1 {
		touches = 1
	}
	switch st.Action {
	case "press":
		in.Press(st.X, st.Y)
	case "move":
		in.Move(st.X, st.Y)
	case "release":
		in.Release(st.X, st.Y)
	case "click":
		in.Click(st.X, st.Y)
	case "drag":
		in.Drag(st.FromX, st.FromY, st.ToX, st.ToY, st.Steps)
	case "touchpress":
		in.TouchPress(st.X, st.Y, touches)
	case "touchmove":
		in.TouchMove(st.X, st.Y, touches)
	case "touchrelease":
		in.TouchRelease(st.X, st.Y)
	case "touchdrag":
		in.TouchDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Steps)
	case "key":
		in.KeyDown(Key(st.Key))
	case "blur":
		in.Blur()
	case "wait":
		if st.Frames > 1 {
			sc.wait = st.Frames - 1 // this call counts as one frame
		}
	}
}
