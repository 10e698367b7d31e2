// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave
	ActionEscape // Cancel command mode or clear highlights

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd

	// --- Selection ---
	ActionExtendUp
	ActionExtendDown
	ActionExtendLeft
	ActionExtendRight

	// --- Text Manipulation ---
	ActionInsertRune // Requires Rune
	ActionInsertNewLine
	ActionTab // Tab; completes in command mode
	ActionDeleteCharForward
	ActionDeleteCharBackward
	ActionPaste

	// --- Editor Mode ---
	ActionEnterCommandMode

	// --- Registered commands ---
	ActionRunCommand // Requires Command
)

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action  Action
	Rune    rune   // ActionInsertRune
	Command string // ActionRunCommand
}
