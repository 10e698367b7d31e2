// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

type Keymap map[tcell.Key]ActionEvent   // special keys (Enter, arrows, Ctrl+letter)
type RuneKeymap map[rune]ActionEvent    // plain rune bindings
type ModKeymap map[tcell.ModMask]Keymap // keys combined with modifiers

// DefaultCommandKeys binds Ctrl+letter to registered commands.
var DefaultCommandKeys = map[tcell.Key]string{
	tcell.KeyCtrlL: "highlight",
	tcell.KeyCtrlN: "next",
	tcell.KeyCtrlP: "prev",
	tcell.KeyCtrlA: "select_all",
	tcell.KeyCtrlK: "clear",
	tcell.KeyCtrlD: "doc",
	tcell.KeyCtrlY: "copy_key",
	tcell.KeyCtrlW: "wc",
}

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	simple := map[tcell.Key]Action{
		tcell.KeyUp:         ActionMoveUp,
		tcell.KeyDown:       ActionMoveDown,
		tcell.KeyLeft:       ActionMoveLeft,
		tcell.KeyRight:      ActionMoveRight,
		tcell.KeyPgUp:       ActionMovePageUp,
		tcell.KeyPgDn:       ActionMovePageDown,
		tcell.KeyHome:       ActionMoveHome,
		tcell.KeyEnd:        ActionMoveEnd,
		tcell.KeyEnter:      ActionInsertNewLine,
		tcell.KeyTab:        ActionTab,
		tcell.KeyBackspace:  ActionDeleteCharBackward,
		tcell.KeyBackspace2: ActionDeleteCharBackward,
		tcell.KeyDelete:     ActionDeleteCharForward,
		tcell.KeyEscape:     ActionEscape,
		tcell.KeyCtrlC:      ActionQuit,
	}
	for key, action := range simple {
		p.keymap[key] = ActionEvent{Action: action}
	}

	shiftMap := Keymap{
		tcell.KeyUp:    {Action: ActionExtendUp},
		tcell.KeyDown:  {Action: ActionExtendDown},
		tcell.KeyLeft:  {Action: ActionExtendLeft},
		tcell.KeyRight: {Action: ActionExtendRight},
	}
	p.modKeymap[tcell.ModShift] = shiftMap

	ctrlMap := Keymap{
		tcell.KeyCtrlS: {Action: ActionSave},
		tcell.KeyCtrlQ: {Action: ActionForceQuit},
		tcell.KeyCtrlV: {Action: ActionPaste},
		tcell.KeyCtrlC: {Action: ActionQuit},
	}
	for key, name := range DefaultCommandKeys {
		ctrlMap[key] = ActionEvent{Action: ActionRunCommand, Command: name}
	}
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	p.runeKeymap[':'] = ActionEvent{Action: ActionEnterCommandMode, Rune: ':'}
}

// BindCommand binds Ctrl+key to a registered command, replacing any
// existing binding.
func (p *InputProcessor) BindCommand(key tcell.Key, command string) {
	p.modKeymap[tcell.ModCtrl][key] = ActionEvent{Action: ActionRunCommand, Command: command}
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
// Mode is not considered here; the mode handler interprets the action.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	// Terminals report Ctrl+letter as KeyCtrlX with or without ModCtrl.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return action
		}
	}

	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return action
		}
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return action
		}
	}

	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.runeKeymap[ev.Rune()]; ok {
			return action
		}
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}

	return ActionEvent{Action: ActionUnknown}
}
