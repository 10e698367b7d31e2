// internal/app/app.go
package app

import (
	"fmt"
	"sync/atomic"

	"github.com/bethropolis/focusnav/internal/buffer"
	"github.com/bethropolis/focusnav/internal/clipboard"
	"github.com/bethropolis/focusnav/internal/completions"
	"github.com/bethropolis/focusnav/internal/config"
	"github.com/bethropolis/focusnav/internal/event"
	"github.com/bethropolis/focusnav/internal/focus"
	"github.com/bethropolis/focusnav/internal/input"
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/modehandler"
	"github.com/bethropolis/focusnav/internal/plugin"
	"github.com/bethropolis/focusnav/internal/scope"
	"github.com/bethropolis/focusnav/internal/statusbar"
	"github.com/bethropolis/focusnav/internal/theme"
	"github.com/bethropolis/focusnav/internal/tui"
	"github.com/bethropolis/focusnav/internal/view"
	"github.com/bethropolis/focusnav/internal/watcher"
	"github.com/gdamore/tcell/v2"
)

// App encapsulates the core components and main loop of the editor.
// Everything except the file watcher runs on the goroutine calling Run.
type App struct {
	cfg            *config.Config
	tuiManager     *tui.TUI
	view           *view.View
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	pluginManager  *plugin.Manager
	registry       *plugin.Registry
	modeHandler    *modehandler.ModeHandler
	editorAPI      plugin.EditorAPI
	themeManager   *theme.Manager
	clipboard      clipboard.Clipboard
	completions    *completions.Node
	watcher        *watcher.Watcher
	filePath       string
	highlightStyle string

	// diskHash is the hash of the file content the buffer was last
	// loaded from or saved to. The watcher goroutine reads it.
	diskHash atomic.Uint64

	quit          chan struct{}
	redrawPending bool
}

// NewApp creates the terminal screen and the application for filePath.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	tm := theme.NewManager(theme.DefaultThemesDir(), cfg.Editor.Theme)
	tuiManager, err := tui.New(tm.Current().GetStyle("Default"))
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	a, err := newApp(cfg, filePath, tuiManager, tm)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	return a, nil
}

func newApp(cfg *config.Config, filePath string, tuiManager *tui.TUI, tm *theme.Manager) (*App, error) {
	mapping, err := scope.DefaultMapping().WithOverrides(cfg.Scopes)
	if err != nil {
		return nil, fmt.Errorf("scope overrides: %w", err)
	}

	buf := buffer.NewRuneBuffer()
	if filePath != "" {
		if err := buf.Load(filePath); err != nil {
			return nil, fmt.Errorf("load %s: %w", filePath, err)
		}
	}

	var v *view.View
	if filePath == "" || focus.MatchesFile(cfg.Editor.FocusFiles, filePath) {
		v = view.NewFocus(buf, mapping)
	} else {
		logger.Infof("%s does not match focus_files, opening as plain text", filePath)
		v = view.NewPlain(buf, mapping)
	}
	v.TabWidth = cfg.Editor.TabWidth
	v.ScrollOff = cfg.Editor.ScrollOff

	eventManager := event.NewManager()
	v.SetEventManager(eventManager)

	a := &App{
		cfg:            cfg,
		tuiManager:     tuiManager,
		view:           v,
		statusBar:      statusbar.New(statusbar.ConfigFromTheme(tm.Current(), config.MessageTimeout)),
		eventManager:   eventManager,
		pluginManager:  plugin.NewManager(),
		registry:       plugin.NewRegistry(),
		themeManager:   tm,
		clipboard:      clipboard.New(cfg.Editor.SystemClipboard),
		completions:    completions.Default(),
		filePath:       filePath,
		highlightStyle: cfg.Highlight.Style,
		quit:           make(chan struct{}),
	}
	a.diskHash.Store(watcher.HashText(buf.Text()))

	a.modeHandler = modehandler.New(modehandler.Config{
		View:           a.ActiveView,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      a.statusBar,
		Registry:       a.registry,
		Clipboard:      a.clipboard,
		HighlightStyle: a.highlightStyle,
		QuitSignal:     a.quit,
	})
	a.statusBar.SetEditorMode(a.modeHandler.GetCurrentMode().String())
	a.editorAPI = newEditorAPI(a)

	a.subscribeEvents()
	if err := registerAppCommands(a); err != nil {
		return nil, err
	}
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Errorf("Plugin registration: %v", err)
	}
	if err := a.pluginManager.InitializePlugins(a.editorAPI); err != nil {
		logger.Errorf("Plugin initialization: %v", err)
	}

	if cfg.Editor.WatchFile && filePath != "" {
		w, err := watcher.New(filePath, watcher.DefaultDebounce, a.diskHash.Load, a.postFileChanged)
		if err != nil {
			logger.Warnf("File watching disabled: %v", err)
		} else {
			a.watcher = w
		}
	}

	width, height := tuiManager.Size()
	a.resize(width, height)
	a.eventManager.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: filePath})
	return a, nil
}

// ActiveView returns the view commands act on.
func (a *App) ActiveView() *view.View {
	return a.view
}

// Run starts the event loop and returns when the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()

	if a.watcher != nil {
		if err := a.watcher.Start(); err != nil {
			logger.Warnf("File watching disabled: %v", err)
		} else {
			defer a.watcher.Stop()
		}
	}

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("focusnav - Ctrl+L highlight | Ctrl+N/P next/prev | Ctrl+D doc | : command | Ctrl+Q quit")
	a.drawEditor()

	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return nil
		}
		needsRedraw := a.handleEvent(ev)

		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.view.Buffer().IsModified() {
				logger.Warnf("Exited with unsaved changes.")
			}
			logger.Infof("Exiting application.")
			return nil
		default:
		}

		if needsRedraw || a.redrawPending {
			a.drawEditor()
		}
	}
}

// handleEvent applies one terminal event and reports whether to redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		a.resize(ev.Size())
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(ev)
	case *tcell.EventInterrupt:
		if changed, ok := ev.Data().(fileChanged); ok {
			a.onFileChanged(changed.path)
			return true
		}
	}
	return false
}

func (a *App) resize(width, height int) {
	gutter := tui.GutterWidth(a.view.Buffer().LineCount(), width)
	a.view.SetViewSize(width-gutter, height)
}

// requestRedraw marks the screen dirty; the loop redraws after the
// current event.
func (a *App) requestRedraw() {
	a.redrawPending = true
}
