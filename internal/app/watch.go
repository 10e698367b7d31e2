package app

import (
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/watcher"
	"github.com/gdamore/tcell/v2"
)

// fileChanged is posted from the watcher goroutine to the event loop.
type fileChanged struct {
	path string
}

func (a *App) postFileChanged(path string) {
	if err := a.tuiManager.PostEvent(tcell.NewEventInterrupt(fileChanged{path: path})); err != nil {
		logger.WarnTagf("watcher", "Dropped change notification for %s: %v", path, err)
	}
}

// onFileChanged runs on the event loop. Unsaved edits are never
// overwritten.
func (a *App) onFileChanged(path string) {
	if a.view.Buffer().IsModified() {
		a.statusBar.SetTemporaryError("%s changed on disk; unsaved changes kept (:reload to discard them)", path)
		return
	}
	if err := a.reloadFromDisk(); err != nil {
		a.statusBar.SetTemporaryError("Reload failed: %v", err)
	}
}

// reloadFromDisk reads the file again and reports what changed.
func (a *App) reloadFromDisk() error {
	before := a.view.Buffer().Text()
	if err := a.view.Reload(); err != nil {
		return err
	}
	change := watcher.Summarize(before, a.view.Buffer().Text())
	a.editorAPI.SetStatusMessage("Reloaded %s (%s)", a.view.Buffer().FilePath(), change)
	logger.InfoTagf("watcher", "Reloaded %s: %s", a.view.Buffer().FilePath(), change)
	return nil
}
