package modehandler

import (
	"errors"

	"github.com/bethropolis/focusnav/internal/clipboard"
	"github.com/bethropolis/focusnav/internal/highlight"
	"github.com/bethropolis/focusnav/internal/input"
	"github.com/bethropolis/focusnav/internal/logger"
)

// handleActionNormal handles actions when in ModeNormal.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent) bool {
	v := mh.view()
	actionProcessed := true

	switch actionEvent.Action {
	case input.ActionEnterCommandMode:
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.setMode(ModeCommand)
		logger.Debugf("ModeHandler: Entering Command Mode")

	case input.ActionEscape:
		if highlight.NewNavigator(v, mh.highlightStyle).Clear() {
			mh.statusBar.SetTemporaryMessage("Highlights cleared")
		} else {
			actionProcessed = false
		}

	case input.ActionQuit:
		if v.Buffer().IsModified() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press Ctrl+C again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
			return true
		}
		mh.Quit()
		return false
	case input.ActionForceQuit:
		mh.Quit()
		return false

	case input.ActionSave:
		if err := v.Save(); err != nil {
			mh.statusBar.SetTemporaryError("Save FAILED: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Buffer saved to %s", v.Buffer().FilePath())
		}

	case input.ActionMoveUp:
		v.MoveCaret(-1, 0, false)
	case input.ActionMoveDown:
		v.MoveCaret(1, 0, false)
	case input.ActionMoveLeft:
		v.MoveCaret(0, -1, false)
	case input.ActionMoveRight:
		v.MoveCaret(0, 1, false)
	case input.ActionExtendUp:
		v.MoveCaret(-1, 0, true)
	case input.ActionExtendDown:
		v.MoveCaret(1, 0, true)
	case input.ActionExtendLeft:
		v.MoveCaret(0, -1, true)
	case input.ActionExtendRight:
		v.MoveCaret(0, 1, true)
	case input.ActionMovePageUp:
		v.PageMove(-1)
	case input.ActionMovePageDown:
		v.PageMove(1)
	case input.ActionMoveHome:
		v.Home(false)
	case input.ActionMoveEnd:
		v.End(false)

	case input.ActionPaste:
		text, err := mh.clipboard.Paste()
		switch {
		case errors.Is(err, clipboard.ErrEmpty) || (err == nil && text == ""):
			mh.statusBar.SetTemporaryMessage("Clipboard empty")
			actionProcessed = false
		case err != nil:
			mh.statusBar.SetTemporaryError("Paste failed: %v", err)
			actionProcessed = false
		default:
			actionProcessed = mh.insert(text)
		}

	case input.ActionInsertRune:
		actionProcessed = mh.insert(string(actionEvent.Rune))
	case input.ActionInsertNewLine:
		actionProcessed = mh.insert("\n")
	case input.ActionTab:
		actionProcessed = mh.insert("\t")
	case input.ActionDeleteCharBackward:
		if err := v.Backspace(); err != nil {
			logger.Debugf("Err Backspace: %v", err)
			actionProcessed = false
		}
	case input.ActionDeleteCharForward:
		if err := v.DeleteForward(); err != nil {
			logger.Debugf("Err DeleteForward: %v", err)
			actionProcessed = false
		}

	case input.ActionRunCommand:
		mh.runCommand(actionEvent.Command, nil)

	default:
		actionProcessed = false
	}

	if actionEvent.Action != input.ActionQuit && actionEvent.Action != input.ActionUnknown {
		mh.forceQuitPending = false
	}
	return actionProcessed
}

func (mh *ModeHandler) insert(text string) bool {
	if err := mh.view().InsertText(text); err != nil {
		logger.Debugf("Err InsertText: %v", err)
		return false
	}
	return true
}
