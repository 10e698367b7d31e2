// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/focusnav/internal/clipboard"
	"github.com/bethropolis/focusnav/internal/completions"
	"github.com/bethropolis/focusnav/internal/event"
	"github.com/bethropolis/focusnav/internal/view"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes arguments (e.g., from user input) and returns an error.
type CommandFunc func(args []string) error

// Command is a named action a plugin exposes to command mode and key
// bindings. Enabled and Description are optional.
type Command struct {
	Name        string
	Run         CommandFunc
	Enabled     func() bool
	Description func() string
}

// IsEnabled reports whether the command can run now.
func (c Command) IsEnabled() bool {
	return c.Enabled == nil || c.Enabled()
}

// Describe returns the command's label.
func (c Command) Describe() string {
	if c.Description == nil {
		return c.Name
	}
	return c.Description()
}

// EditorAPI defines the methods plugins can use to interact with the editor.
// This acts as a controlled interface, preventing plugins from accessing everything.
type EditorAPI interface {
	// ActiveView is the view commands act on.
	ActiveView() *view.View

	// Clipboard and completion data shared by the editor.
	Clipboard() clipboard.Clipboard
	Completions() *completions.Node

	// HighlightStyle is the configured style for entity highlights.
	HighlightStyle() string

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(cmd Command) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})
	SetStatusError(format string, args ...interface{})

	RequestRedraw()
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	// Used for setup, subscribing to events, registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
