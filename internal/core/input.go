package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone           Action = iota
	ActionLeft                  // Left arrow, h - move basket left
	ActionRight                 // Right arrow, l - move basket right
	ActionConfirm               // Enter, Space - start a session
	ActionRestart               // Enter, Space, R after a session ended - replay
	ActionBack                  // B, Escape - go back to menu
	ActionQuit                  // Q, Ctrl+C - exit game/session
	ActionDifficultyNext        // D - cycle difficulty preset
	ActionEasy                  // 1
	ActionNormal                // 2
	ActionHard                  // 3
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionDifficultyNext:
		return "DifficultyNext"
	case ActionEasy:
		return "Easy"
	case ActionNormal:
		return "Normal"
	case ActionHard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// PointerPhase identifies the stage of a pointer (mouse or touch) gesture.
type PointerPhase int

const (
	PointerDown PointerPhase = iota + 1
	PointerMove
	PointerUp
)

// PointerEvent is a pointer sample in screen cells.
type PointerEvent struct {
	Phase PointerPhase
	X, Y  int
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Pointer holds pointer samples in arrival order; drags need every sample.
	Pointer []PointerEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddPointer appends a pointer sample.
func (f *InputFrame) AddPointer(ev PointerEvent) {
	f.Pointer = append(f.Pointer, ev)
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
}
