package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up
	ActionCut            // S, Down - releases a held jump early
	ActionRestart        // R key - revive after death
	ActionPause          // P, Escape - pause/unpause
	ActionBack           // B - back to menu
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionCut:
		return "Cut"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the button edges observed during one simulation tick.
// A press and a release of the same action may both appear in one frame.
type InputFrame struct {
	pressed  map[Action]bool
	released map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		pressed:  make(map[Action]bool),
		released: make(map[Action]bool),
	}
}

// Press records a press edge for a.
func (f *InputFrame) Press(a Action) {
	if f.pressed == nil {
		f.pressed = make(map[Action]bool)
	}
	f.pressed[a] = true
}

// Release records a release edge for a.
func (f *InputFrame) Release(a Action) {
	if f.released == nil {
		f.released = make(map[Action]bool)
	}
	f.released[a] = true
}

// Pressed reports whether a was pressed during this frame.
func (f InputFrame) Pressed(a Action) bool {
	return f.pressed[a]
}

// Released reports whether a was released during this frame.
func (f InputFrame) Released(a Action) bool {
	return f.released[a]
}

// Empty reports whether the frame carries no edges at all.
func (f InputFrame) Empty() bool {
	return len(f.pressed) == 0 && len(f.released) == 0
}

// Clear resets all edges for the next frame.
func (f *InputFrame) Clear() {
	clear(f.pressed)
	clear(f.released)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.pressed {
		c.pressed[k] = v
	}
	for k, v := range f.released {
		c.released[k] = v
	}
	return c
}
