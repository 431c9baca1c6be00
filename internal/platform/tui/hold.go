package tui

import "github.com/vovakirdan/malformed/internal/core"

// Terminals report no key-up, so a held key is seen as one press followed,
// after the auto-repeat delay, by a fast run of repeats. The tracker infers
// the release from the gaps between those events.
const (
	// TapRelease is when a jump key with no repeat behind it counts as
	// released. It falls inside the jump window so a tap is a short hop.
	TapRelease = 0.2
	// RepeatDelay is how long the key may stay quiet before its first
	// repeat. Events inside it belong to the same hold.
	RepeatDelay = 0.7
	// RepeatGap is how long the key may stay quiet once repeats started.
	RepeatGap = 0.15
)

// holdTracker turns jump key events into press and release edges. Each
// hold produces exactly one press edge and at most one release edge.
type holdTracker struct {
	tapRelease  float64
	repeatDelay float64
	repeatGap   float64

	latched  bool    // key events still belong to the current hold
	full     bool    // the hold came from the high jump key
	repeated bool    // an auto-repeat arrived during this hold
	released bool    // the release edge of this hold was emitted
	age      float64 // seconds since the hold began
	idle     float64 // seconds since the last key event
}

func newHoldTracker() holdTracker {
	return holdTracker{
		tapRelease:  TapRelease,
		repeatDelay: RepeatDelay,
		repeatGap:   RepeatGap,
	}
}

// press records a jump key event. Only the first event of a hold is an
// edge. A full hold is never released early, so a tap still gives a
// full jump.
func (h *holdTracker) press(f *core.InputFrame, full bool) {
	if h.latched {
		h.repeated = true
		h.idle = 0
		return
	}
	f.Press(core.ActionJump)
	*h = holdTracker{
		tapRelease:  h.tapRelease,
		repeatDelay: h.repeatDelay,
		repeatGap:   h.repeatGap,
		latched:     true,
		full:        full,
	}
}

// cut ends a hold immediately. Pressing another key stops the terminal's
// auto-repeat, so the next jump key event starts a new hold.
func (h *holdTracker) cut(f *core.InputFrame) {
	h.release(f)
	h.latched = false
}

func (h *holdTracker) release(f *core.InputFrame) {
	if h.latched && !h.released {
		f.Release(core.ActionJump)
		h.released = true
	}
}

// tick ages the hold by dt and emits the release edge once the key is
// judged up. It runs before the frame is handed to the game.
func (h *holdTracker) tick(dt float64, f *core.InputFrame) {
	if !h.latched {
		return
	}
	h.age += dt
	h.idle += dt

	if !h.full && !h.repeated && h.age >= h.tapRelease {
		h.release(f)
	}

	quiet := h.repeatDelay
	if h.repeated {
		quiet = h.repeatGap
	}
	if h.idle >= quiet {
		h.cut(f)
	}
}
