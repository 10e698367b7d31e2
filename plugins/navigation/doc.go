package navigation

import (
	"fmt"
	"strings"

	"github.com/bethropolis/focusnav/internal/completions"
	"github.com/bethropolis/focusnav/internal/highlight"
)

// maxCompletions shown in the status bar.
const maxCompletions = 8

// doc shows the documentation of the entity under the caret.
func (p *Navigation) doc([]string) error {
	m, ok := p.detect()
	if !ok {
		p.api.SetStatusMessage("Nothing documented here")
		return nil
	}
	p.api.SetStatusMessage("%s", p.lookupDoc(m))
	return nil
}

func (p *Navigation) lookupDoc(m highlight.EntityMatcher) string {
	v := p.api.ActiveView()
	key := m.SearchKey()

	switch m.Kind() {
	case highlight.KindFSLocal:
		block, ok := v.CodeBlockAt(m.SearchRegion().Begin)
		if !ok {
			return fmt.Sprintf("%s: no enclosing code block", key)
		}
		entry, ok := block.Documentation().Entry(key)
		if !ok {
			return fmt.Sprintf("%s is not documented in %s", key, block.Name)
		}
		return entry.Text
	case highlight.KindSubroutine:
		block, ok := v.File().Block(key)
		if !ok {
			return fmt.Sprintf("%s is not defined in this file", key)
		}
		summary := block.Documentation().Summary()
		if summary == "" {
			return fmt.Sprintf("%s has no documentation", key)
		}
		first, _, _ := strings.Cut(summary, "\n")
		return fmt.Sprintf("%s: %s", key, first)
	case highlight.KindBreak:
		return "@Break stops execution in the debugger"
	default:
		return fmt.Sprintf("No documentation for %s", key)
	}
}

// copyKey copies the matched entity's name.
func (p *Navigation) copyKey([]string) error {
	m, ok := p.detect()
	if !ok {
		p.api.SetStatusMessage("Nothing to copy here")
		return nil
	}
	if err := p.api.Clipboard().Copy(m.SearchKey()); err != nil {
		return fmt.Errorf("copy %s: %w", m.SearchKey(), err)
	}
	p.api.SetStatusMessage("Copied %s", m.SearchKey())
	return nil
}

// describe lists what each highlight command would do at the caret.
func (p *Navigation) describe([]string) error {
	m, ok := p.detect()
	if !ok {
		p.api.SetStatusMessage("%s", highlight.GenericLabel(highlight.CommandHighlight)+": nothing here")
		return nil
	}
	parts := make([]string, 0, len(highlight.Commands))
	for _, cmd := range highlight.Commands {
		parts = append(parts, m.Describe(cmd))
	}
	p.api.SetStatusMessage("[%s] %s", m.Kind(), strings.Join(parts, " | "))
	return nil
}

// complete lists completions. "@Br" completes "Br" under "@"; further
// arguments walk deeper, e.g. ":complete @ Break O".
func (p *Navigation) complete(args []string) error {
	root := p.api.Completions()
	path, prefix := completionQuery(root, args)

	items := root.Complete(prefix, path...)
	if len(items) == 0 {
		p.api.SetStatusMessage("No completions for %q", strings.Join(append(path, prefix), " "))
		return nil
	}
	shown := items
	if len(shown) > maxCompletions {
		shown = shown[:maxCompletions]
	}
	parts := make([]string, len(shown))
	for i, it := range shown {
		if it.Type != "" {
			parts[i] = fmt.Sprintf("%s (%s)", it.Text, it.Type)
		} else {
			parts[i] = it.Text
		}
	}
	more := ""
	if len(items) > len(shown) {
		more = fmt.Sprintf(" +%d more", len(items)-len(shown))
	}
	p.api.SetStatusMessage("%s%s", strings.Join(parts, ", "), more)
	return nil
}

// completionQuery splits args into a tree path and the prefix to complete.
func completionQuery(root *completions.Node, args []string) ([]string, string) {
	if len(args) == 0 {
		return nil, ""
	}
	path := append([]string(nil), args[:len(args)-1]...)
	prefix := args[len(args)-1]

	if len(path) == 0 {
		if _, ok := root.Lookup(prefix); ok {
			return []string{prefix}, ""
		}
		for sigil := range root.Children {
			if len(prefix) > len(sigil) && strings.HasPrefix(prefix, sigil) {
				return []string{sigil}, prefix[len(sigil):]
			}
		}
	}
	return path, prefix
}
