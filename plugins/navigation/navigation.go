// Package navigation exposes entity highlighting as editor commands: one set
// per matcher kind plus auto-detecting variants, documentation lookup and
// copying the matched key.
package navigation

import (
	"errors"
	"fmt"

	"github.com/bethropolis/focusnav/internal/event"
	"github.com/bethropolis/focusnav/internal/highlight"
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/plugin"
)

// Ensure Navigation implements plugin.Plugin
var _ plugin.Plugin = (*Navigation)(nil)

// Navigation registers the highlight commands.
type Navigation struct {
	api plugin.EditorAPI
}

// New creates a new instance of the Navigation plugin.
func New() *Navigation {
	return &Navigation{}
}

// Name returns the unique name of the plugin.
func (p *Navigation) Name() string {
	return "Navigation"
}

// Initialize registers the commands and clears highlights when the buffer
// is reloaded, since the stored regions refer to the old text.
func (p *Navigation) Initialize(api plugin.EditorAPI) error {
	p.api = api

	var cmds []plugin.Command
	for _, kind := range highlight.DetectOrder {
		for _, cmd := range highlight.Commands {
			cmds = append(cmds, p.kindCommand(kind, cmd))
		}
	}
	cmds = append(cmds, p.autoCommands()...)

	for _, cmd := range cmds {
		if err := api.RegisterCommand(cmd); err != nil {
			return fmt.Errorf("failed to register '%s' command: %w", cmd.Name, err)
		}
	}

	api.SubscribeEvent(event.TypeBufferReloaded, func(e event.Event) bool {
		if p.navigator().Clear() {
			logger.DebugTagf("highlight", "Cleared highlights after reload")
		}
		return false
	})
	return nil
}

// Shutdown performs cleanup (nothing needed).
func (p *Navigation) Shutdown() error {
	return nil
}

func (p *Navigation) navigator() *highlight.Navigator {
	return highlight.NewNavigator(p.api.ActiveView(), p.api.HighlightStyle())
}

// matcher builds and checks a matcher for kind at the current selection.
func (p *Navigation) matcher(kind highlight.Kind) (highlight.EntityMatcher, bool) {
	v := p.api.ActiveView()
	m, err := highlight.NewMatcher(kind, v, v.Selection())
	if err != nil {
		logger.Errorf("navigation: %v", err)
		return nil, false
	}
	return m, m.Check()
}

// detect finds the first matcher kind that recognises the selection.
func (p *Navigation) detect() (highlight.EntityMatcher, bool) {
	v := p.api.ActiveView()
	return highlight.Detect(v, v.Selection())
}

// kindCommand builds "<kind>_<command>".
func (p *Navigation) kindCommand(kind highlight.Kind, cmd highlight.Command) plugin.Command {
	c := plugin.Command{
		Name: kind.String() + "_" + cmd.String(),
		Description: func() string {
			m, _ := p.matcher(kind)
			if m == nil {
				return cmd.String()
			}
			return m.Describe(cmd)
		},
	}
	if cmd == highlight.CommandHighlight {
		c.Enabled = func() bool {
			_, ok := p.matcher(kind)
			return ok
		}
		c.Run = func([]string) error {
			m, ok := p.matcher(kind)
			return p.highlight(m, ok)
		}
		return c
	}
	c.Enabled = func() bool { return p.navigator().Active() }
	c.Run = p.navigationFunc(cmd)
	return c
}

func (p *Navigation) autoCommands() []plugin.Command {
	active := func() bool { return p.navigator().Active() }
	detected := func() bool {
		_, ok := p.detect()
		return ok
	}
	label := func(cmd highlight.Command) func() string {
		return func() string {
			if m, ok := p.detect(); ok {
				return m.Describe(cmd)
			}
			return highlight.GenericLabel(cmd)
		}
	}

	return []plugin.Command{
		{
			Name: "highlight",
			Run: func([]string) error {
				m, ok := p.detect()
				return p.highlight(m, ok)
			},
			Description: label(highlight.CommandHighlight),
		},
		{Name: "next", Run: p.navigationFunc(highlight.CommandMoveForward), Enabled: active, Description: label(highlight.CommandMoveForward)},
		{Name: "prev", Run: p.navigationFunc(highlight.CommandMoveBackward), Enabled: active, Description: label(highlight.CommandMoveBackward)},
		{Name: "clear", Run: p.navigationFunc(highlight.CommandClear), Description: label(highlight.CommandClear)},
		{Name: "select_all", Run: p.navigationFunc(highlight.CommandSelectAll), Enabled: active, Description: label(highlight.CommandSelectAll)},
		{Name: "doc", Run: p.doc, Enabled: detected, Description: func() string { return "Show documentation of the entity under the caret" }},
		{Name: "copy_key", Run: p.copyKey, Enabled: detected, Description: func() string { return "Copy the entity name" }},
		{Name: "describe", Run: p.describe, Description: func() string { return "Describe the highlight commands here" }},
		{Name: "complete", Run: p.complete, Description: func() string { return "List Focus completions" }},
	}
}

// highlight renders the occurrences of a checked matcher. Only an
// invariant violation is reported as an error.
func (p *Navigation) highlight(m highlight.EntityMatcher, ok bool) error {
	if !ok {
		p.api.SetStatusMessage("Nothing to highlight here")
		return nil
	}
	regions, err := m.OccurrenceRegions()
	if err != nil {
		if errors.Is(err, highlight.ErrInvariantViolation) {
			p.api.SetStatusError("Highlight failed: %v", err)
			return err
		}
		logger.WarnTagf("highlight", "navigation: %v", err)
		p.api.SetStatusMessage("Nothing highlighted")
		return nil
	}
	if len(regions) == 0 {
		p.api.SetStatusMessage("Nothing highlighted")
		return nil
	}
	p.navigator().Render(regions)
	p.api.SetStatusMessage("%d occurrences of %s", len(regions), m.SearchKey())
	p.api.RequestRedraw()
	return nil
}

func (p *Navigation) navigationFunc(cmd highlight.Command) plugin.CommandFunc {
	return func([]string) error {
		nav := p.navigator()
		var ok bool
		switch cmd {
		case highlight.CommandMoveForward:
			ok = nav.MoveNext()
		case highlight.CommandMoveBackward:
			ok = nav.MovePrevious()
		case highlight.CommandSelectAll:
			ok = nav.SelectAll()
			if ok {
				p.api.SetStatusMessage("Selected %d highlights", len(nav.Regions()))
			}
		case highlight.CommandClear:
			ok = nav.Clear()
		default:
			return fmt.Errorf("unsupported command %v", cmd)
		}
		if !ok && cmd != highlight.CommandClear {
			p.api.SetStatusMessage("No highlights")
		}
		p.api.RequestRedraw()
		return nil
	}
}
