package app

import (
	"github.com/bethropolis/focusnav/internal/event"
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/watcher"
)

func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSaved)
	a.eventManager.Subscribe(event.TypeBufferReloaded, a.handleBufferReloaded)
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModified)
	a.eventManager.Subscribe(event.TypeRegionsChanged, a.handleRegionsChanged)
}

// handleBufferSaved records the saved content so the watcher ignores our
// own write.
func (a *App) handleBufferSaved(e event.Event) bool {
	a.diskHash.Store(watcher.HashText(a.view.Buffer().Text()))
	a.requestRedraw()
	return false
}

func (a *App) handleBufferReloaded(e event.Event) bool {
	a.diskHash.Store(watcher.HashText(a.view.Buffer().Text()))
	width, height := a.tuiManager.Size()
	a.resize(width, height)
	a.requestRedraw()
	return false
}

// handleBufferModified keeps the gutter width in step with the line count.
func (a *App) handleBufferModified(e event.Event) bool {
	width, height := a.tuiManager.Size()
	a.resize(width, height)
	return false
}

func (a *App) handleRegionsChanged(e event.Event) bool {
	if data, ok := e.Data.(event.RegionsChangedData); ok {
		logger.DebugTagf("draw", "Region set %q now has %d regions", data.Key, data.Count)
	}
	a.requestRedraw()
	return false
}
