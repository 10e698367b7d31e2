// internal/app/editor_api.go
package app

import (
	"github.com/bethropolis/focusnav/internal/clipboard"
	"github.com/bethropolis/focusnav/internal/completions"
	"github.com/bethropolis/focusnav/internal/event"
	"github.com/bethropolis/focusnav/internal/plugin"
	"github.com/bethropolis/focusnav/internal/view"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI is the App as plugins see it.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

func (api *appEditorAPI) ActiveView() *view.View {
	return api.app.view
}

func (api *appEditorAPI) Clipboard() clipboard.Clipboard {
	return api.app.clipboard
}

func (api *appEditorAPI) Completions() *completions.Node {
	return api.app.completions
}

func (api *appEditorAPI) HighlightStyle() string {
	return api.app.highlightStyle
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(cmd plugin.Command) error {
	return api.app.registry.Register(cmd)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

func (api *appEditorAPI) SetStatusError(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryError(format, args...)
	api.app.requestRedraw()
}

func (api *appEditorAPI) RequestRedraw() {
	api.app.requestRedraw()
}
