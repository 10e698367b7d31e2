// internal/modehandler/modehandler.go
package modehandler

import (
	"github.com/bethropolis/focusnav/internal/clipboard"
	"github.com/bethropolis/focusnav/internal/event"
	"github.com/bethropolis/focusnav/internal/input"
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/plugin"
	"github.com/bethropolis/focusnav/internal/statusbar"
	"github.com/bethropolis/focusnav/internal/view"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

func (m InputMode) String() string {
	if m == ModeCommand {
		return "COMMAND"
	}
	return "NORMAL"
}

// ModeHandler manages input modes and runs actions and commands.
type ModeHandler struct {
	view           func() *view.View
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	registry       *plugin.Registry
	clipboard      clipboard.Clipboard
	highlightStyle string
	quitSignal     chan<- struct{}

	currentMode      InputMode
	cmdBuffer        []rune
	forceQuitPending bool
	quitting         bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	View           func() *view.View
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	Registry       *plugin.Registry
	Clipboard      clipboard.Clipboard
	HighlightStyle string
	QuitSignal     chan<- struct{}
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.View == nil || cfg.InputProcessor == nil || cfg.EventManager == nil ||
		cfg.StatusBar == nil || cfg.Registry == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	clip := cfg.Clipboard
	if clip == nil {
		clip = &clipboard.Internal{}
	}
	return &ModeHandler{
		view:           cfg.View,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		registry:       cfg.Registry,
		clipboard:      clip,
		highlightStyle: cfg.HighlightStyle,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	var actionProcessed bool
	switch mh.currentMode {
	case ModeNormal:
		actionProcessed = mh.handleActionNormal(actionEvent)
	case ModeCommand:
		actionProcessed = mh.handleActionCommand(actionEvent)
	default:
		logger.Debugf("Warning: Unknown input mode: %v", mh.currentMode)
	}

	return actionProcessed || mh.forceQuitPending
}

// RunCommand runs a registered command and reports failures in the
// status bar. Key bindings and command mode both go through it.
func (mh *ModeHandler) RunCommand(name string, args []string) {
	mh.runCommand(name, args)
}

// SetHighlightStyle changes the style new highlights are drawn with.
func (mh *ModeHandler) SetHighlightStyle(style string) {
	mh.highlightStyle = style
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command being typed, empty outside command mode.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}

// Quit closes the quit signal once.
func (mh *ModeHandler) Quit() {
	if mh.quitting {
		return
	}
	mh.quitting = true
	close(mh.quitSignal)
}

func (mh *ModeHandler) setMode(mode InputMode) {
	mh.currentMode = mode
	mh.statusBar.SetEditorMode(mode.String())
	mh.statusBar.SetCommandInput(string(mh.cmdBuffer), mode == ModeCommand)
}
