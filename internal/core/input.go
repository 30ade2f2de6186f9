package core

// Action is a semantic input, decoupled from the physical key that raised it.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Move the cursor up
	ActionDown           // Move the cursor down
	ActionLeft           // Move the cursor left
	ActionRight          // Move the cursor right
	ActionSelect         // Pick up the piece under the cursor, or swap with the picked one
	ActionCancel         // Drop the current selection
	ActionConfirm        // Enter
	ActionBack           // Leave the game view
	ActionRestart        // Start a new game after game over
	ActionQuit
	ActionPause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionCancel:
		return "Cancel"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// PointerKind distinguishes pointer presses from releases.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerRelease
)

// PointerEvent is a mouse press or release in screen cells.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

// InputFrame collects the input raised during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
	Pointer []PointerEvent // In arrival order
}

// NewInputFrame creates an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as raised.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the action was raised.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// AddPointer appends a pointer event.
func (f *InputFrame) AddPointer(ev PointerEvent) {
	f.Pointer = append(f.Pointer, ev)
}

// Clear empties the frame for reuse.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = nil
}

// Empty reports whether nothing was raised.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Pointer) == 0
}
