package core

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // Left arrow, A
	ActionRight           // Right arrow, D
	ActionUp              // Up arrow, W - rotate
	ActionDown            // Down arrow, S - soft drop
	ActionDrop            // Space - hard drop
	ActionHold            // C
	ActionToggleAI        // A toggles the auto-player
	ActionAssist          // 1 - AI assist powerup
	ActionClearRow        // 2 - clear bottom row powerup
	ActionConfirm         // Enter
	ActionBack            // B, Escape
	ActionRestart         // R after game over
	ActionQuit            // Q, Ctrl+C
	ActionPause           // P
)

var actionNames = [...]string{
	ActionNone:     "None",
	ActionLeft:     "Left",
	ActionRight:    "Right",
	ActionUp:       "Up",
	ActionDown:     "Down",
	ActionDrop:     "Drop",
	ActionHold:     "Hold",
	ActionToggleAI: "ToggleAI",
	ActionAssist:   "Assist",
	ActionClearRow: "ClearRow",
	ActionConfirm:  "Confirm",
	ActionBack:     "Back",
	ActionRestart:  "Restart",
	ActionQuit:     "Quit",
	ActionPause:    "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame holds the actions triggered during one simulation tick.
// Order of key presses inside a frame is preserved so that, for example,
// rotate-then-drop is applied in the same order the player typed it.
type InputFrame struct {
	Actions map[Action]bool
	order   []Action
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
	if !f.Actions[a] {
		f.order = append(f.order, a)
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

// Ordered returns the triggered actions in the order they were set.
func (f InputFrame) Ordered() []Action {
	out := make([]Action, len(f.order))
	copy(out, f.order)
	return out
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.order = f.order[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for _, a := range f.order {
		clone.Set(a)
	}
	return clone
}
