package app

import (
	"github.com/bethropolis/focusnav/internal/highlight"
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/tui"
)

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.redrawPending = false
	a.updateStatusBarContent()

	activeTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	logger.DebugTagf("draw", "drawEditor: Screen Size (%d x %d)", width, height)

	a.tuiManager.Clear()
	tui.DrawView(a.tuiManager, a.view, activeTheme)
	a.statusBar.Draw(screen, width, height)
	tui.DrawCursor(a.tuiManager, a.view)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current view state to the status bar.
func (a *App) updateStatusBarContent() {
	buf := a.view.Buffer()
	a.statusBar.SetFileInfo(buf.FilePath(), buf.IsModified())
	a.statusBar.SetCursorInfo(a.view.CaretPosition(), a.view.Selection().Len())

	nav := highlight.NewNavigator(a.view, a.highlightStyle)
	count := 0
	if nav.Active() {
		count = len(nav.Regions())
	}
	a.statusBar.SetHighlightCount(count)
}
