package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/focusnav/internal/config"
	"github.com/bethropolis/focusnav/internal/highlight"
	"github.com/bethropolis/focusnav/internal/plugin"
	"github.com/bethropolis/focusnav/internal/statusbar"
)

var errUnsaved = errors.New("unsaved changes (use :q! to discard)")

// registerAppCommands registers the built-in commands.
func registerAppCommands(a *App) error {
	api := a.editorAPI
	cmds := []plugin.Command{
		{Name: "w", Run: a.cmdWrite, Description: describe("Save the buffer")},
		{Name: "q", Run: a.cmdQuit, Description: describe("Quit")},
		{Name: "q!", Run: func([]string) error { a.modeHandler.Quit(); return nil }, Description: describe("Quit without saving")},
		{Name: "wq", Run: a.cmdWriteQuit, Description: describe("Save and quit")},
		{Name: "reload", Run: a.cmdReload, Description: describe("Read the file again, discarding changes")},
		{Name: "theme", Run: a.cmdTheme, Description: describe("Show or set the theme")},
		{Name: "themes", Run: a.cmdThemes, Description: describe("List themes")},
		{Name: "style", Run: a.cmdStyle, Description: describe("Show or set the highlight style")},
		{Name: "help", Run: a.cmdHelp, Description: describe("Describe a command")},
	}
	for _, cmd := range cmds {
		if err := api.RegisterCommand(cmd); err != nil {
			return fmt.Errorf("failed to register ':%s' command: %w", cmd.Name, err)
		}
	}
	return nil
}

func describe(text string) func() string {
	return func() string { return text }
}

func (a *App) cmdWrite([]string) error {
	if err := a.view.Save(); err != nil {
		return err
	}
	a.editorAPI.SetStatusMessage("Buffer saved to %s", a.view.Buffer().FilePath())
	return nil
}

func (a *App) cmdQuit([]string) error {
	if a.view.Buffer().IsModified() {
		return errUnsaved
	}
	a.modeHandler.Quit()
	return nil
}

func (a *App) cmdWriteQuit(args []string) error {
	if err := a.cmdWrite(args); err != nil {
		return err
	}
	a.modeHandler.Quit()
	return nil
}

func (a *App) cmdReload([]string) error {
	return a.reloadFromDisk()
}

func (a *App) cmdTheme(args []string) error {
	if len(args) == 0 {
		a.editorAPI.SetStatusMessage("Current theme: %s", a.themeManager.Current().Name)
		return nil
	}

	themeName := strings.Join(args, " ")
	if err := a.themeManager.SetTheme(themeName); err != nil {
		return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(a.themeManager.ListThemes(), ", "))
	}
	current := a.themeManager.Current()
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(current, config.MessageTimeout))
	a.tuiManager.SetStyle(current.GetStyle("Default"))
	a.editorAPI.SetStatusMessage("Theme set to: %s", current.Name)
	return nil
}

func (a *App) cmdThemes([]string) error {
	a.editorAPI.SetStatusMessage("Available themes: %s", strings.Join(a.themeManager.ListThemes(), ", "))
	return nil
}

// cmdStyle changes the highlight style and redraws a live highlight set
// with it.
func (a *App) cmdStyle(args []string) error {
	if len(args) == 0 {
		a.editorAPI.SetStatusMessage("Highlight style: %s", a.highlightStyle)
		return nil
	}
	switch style := args[0]; style {
	case config.StyleOutline, config.StyleFill, config.StyleUnderline:
		a.highlightStyle = style
		a.modeHandler.SetHighlightStyle(style)
	default:
		return fmt.Errorf("unknown highlight style %q (outline, fill, underline)", style)
	}

	if nav := highlight.NewNavigator(a.view, a.highlightStyle); nav.Active() {
		nav.Render(nav.Regions())
	}
	a.editorAPI.SetStatusMessage("Highlight style: %s", a.highlightStyle)
	return nil
}

func (a *App) cmdHelp(args []string) error {
	if len(args) == 0 {
		a.editorAPI.SetStatusMessage("Commands: %s", strings.Join(a.registry.Names(), " "))
		return nil
	}
	cmd, ok := a.registry.Lookup(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", plugin.ErrUnknownCommand, args[0])
	}
	state := ""
	if !cmd.IsEnabled() {
		state = " (not available here)"
	}
	a.editorAPI.SetStatusMessage(":%s - %s%s", cmd.Name, cmd.Describe(), state)
	return nil
}
