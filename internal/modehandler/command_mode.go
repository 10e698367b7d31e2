package modehandler

import (
	"errors"
	"sort"
	"strings"

	"github.com/bethropolis/focusnav/internal/completions"
	"github.com/bethropolis/focusnav/internal/input"
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/plugin"
)

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune, input.ActionEnterCommandMode:
		mh.cmdBuffer = append(mh.cmdBuffer, actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) == 0 {
			mh.setMode(ModeNormal)
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
			return true
		}
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]

	case input.ActionTab:
		mh.completeCommandName()

	case input.ActionInsertNewLine:
		cmdStr := string(mh.cmdBuffer)
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.setMode(ModeNormal)
		mh.executeCommand(cmdStr)
		return true

	case input.ActionEscape, input.ActionQuit:
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.setMode(ModeNormal)
		logger.Debugf("ModeHandler: Canceled Command Mode")
		return true

	default:
		return false
	}

	mh.statusBar.SetCommandInput(string(mh.cmdBuffer), true)
	return true
}

// executeCommand parses and runs a command line.
func (mh *ModeHandler) executeCommand(cmdStr string) {
	parts := strings.Fields(cmdStr)
	if len(parts) == 0 {
		return
	}
	mh.runCommand(parts[0], parts[1:])
}

func (mh *ModeHandler) runCommand(name string, args []string) {
	logger.Debugf("ModeHandler: Executing command ':%s' with args %v", name, args)
	err := mh.registry.Run(name, args)
	switch {
	case err == nil:
	case errors.Is(err, plugin.ErrUnknownCommand):
		if guess, ok := completions.Suggest(name, mh.registry.Names()); ok {
			mh.statusBar.SetTemporaryError("Unknown command: %s (did you mean %s?)", name, guess)
		} else {
			mh.statusBar.SetTemporaryError("Unknown command: %s", name)
		}
	case errors.Is(err, plugin.ErrCommandDisabled):
		mh.statusBar.SetTemporaryMessage("%s is not available here", name)
	default:
		mh.statusBar.SetTemporaryError("Error executing command '%s': %v", name, err)
	}
}

// completeCommandName extends the typed command name to the longest
// prefix shared by the registered names, listing them when ambiguous.
func (mh *ModeHandler) completeCommandName() {
	typed := string(mh.cmdBuffer)
	if strings.ContainsAny(typed, " \t") {
		return
	}
	var matches []string
	for _, name := range mh.registry.Names() {
		if strings.HasPrefix(name, typed) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return
	}
	sort.Strings(matches)
	common := matches[0]
	for _, m := range matches[1:] {
		for !strings.HasPrefix(m, common) {
			common = common[:len(common)-1]
		}
	}
	if len(matches) == 1 {
		common += " "
	} else if common == typed {
		mh.statusBar.SetTemporaryMessage("%s", strings.Join(matches, " "))
	}
	mh.cmdBuffer = []rune(common)
}
