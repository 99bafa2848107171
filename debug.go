package grasp

import (
	"fmt"
	"os"
)

// debugf prints a state transition trace to stderr. Only active when
// SetDebug(true) was called; release-mode gestures pay a single bool check.
func (r *Recognizer) debugf(format string, args ...any) {
	if !r.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[grasp] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a primitive
// reaches a disposed recognizer. Dispose removes every listener, so this
// firing means a Surface or Stage implementation's Binding.Remove is broken.
// Only called in debug mode; release mode drops the event silently.
func (r *Recognizer) debugCheckDisposed(primitive string) {
	if r.debug && r.disposed {
		panic(fmt.Sprintf("grasp debug: %s delivered to disposed recognizer", primitive))
	}
}
