package highlight

import (
	"fmt"

	"github.com/bethropolis/focusnav/internal/focus"
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/types"
)

// fsLocalMatcher finds a single-letter local or |N argument of the enclosing
// code block, either where it is used or where its documentation entry is.
type fsLocalMatcher struct {
	baseMatcher

	block  *focus.CodeBlock
	locals types.Region
	args   types.Region
}

func newFSLocalMatcher(host Host, sel types.Selection) *fsLocalMatcher {
	return &fsLocalMatcher{baseMatcher: newBase(KindFSLocal, host, sel, scopeFSLocal)}
}

func (m *fsLocalMatcher) reset() {
	m.baseMatcher.reset()
	m.block = nil
	m.locals = types.Region{}
	m.args = types.Region{}
}

// documentationRegions returns the locals and arguments sections of block.
// A missing section falls back to the whole documentation comment.
func documentationRegions(block *focus.CodeBlock) (locals, args types.Region) {
	doc := block.Documentation()
	locals, ok := doc.SectionRegion(focus.SectionLocals)
	if !ok {
		locals = block.DocumentationRegion
	}
	args, ok = doc.SectionRegion(focus.SectionArguments)
	if !ok {
		args = block.DocumentationRegion
	}
	return locals, args
}

func (m *fsLocalMatcher) Check() bool {
	m.reset()
	caret := m.caret()
	if m.host.ScoreSelector(caret, scopeSubroutine) <= 0 || m.sel.Size() > 1 {
		return false
	}
	block, ok := m.host.CodeBlockAt(caret)
	if !ok {
		return false
	}
	m.block = block
	m.locals, m.args = documentationRegions(block)

	if m.host.ScoreSelector(caret, m.scopeKey) > 0 {
		return m.checkReference()
	}
	if m.host.ScoreSelector(caret, scopeComment) > 0 {
		return m.checkDocumentation()
	}
	return false
}

// checkReference matches the local token under the caret.
func (m *fsLocalMatcher) checkReference() bool {
	target := m.sel
	if target.Empty() {
		target = types.Region{Begin: target.Begin, End: target.Begin + 1}
	}
	for _, r := range m.host.FindBySelector(m.scopeKey) {
		if r.Contains(target) {
			return m.match(m.host.Substr(r), r)
		}
	}
	return false
}

// checkDocumentation matches the documentation entry under the caret. The
// locals section is tried first; when it has no entry there the arguments
// section is tried, so a doc with only "Arguments:" still matches.
func (m *fsLocalMatcher) checkDocumentation() bool {
	scans := []struct {
		pattern string
		within  types.Region
	}{
		{focus.LocalsEntryPattern, m.locals},
		{focus.ArgumentsEntryPattern, m.args},
	}
	for _, scan := range scans {
		if !m.sel.Intersects(scan.within) {
			continue
		}
		entries, err := m.host.FindAllIn(scan.pattern, scan.within)
		if err != nil {
			logger.WarnTagf("highlight", "fs_local: scanning documentation of %s: %v", m.block.Name, err)
			return false
		}
		for _, entry := range entries {
			if !entry.Covers(m.sel) {
				continue
			}
			key, ok := focus.ExtractKey(m.host.Substr(entry))
			if !ok {
				return false
			}
			return m.match(key, entry)
		}
	}
	return false
}

// OccurrenceRegions resolves the block again so edits made since Check are
// seen. A key the block no longer knows is an ErrInvariantViolation.
func (m *fsLocalMatcher) OccurrenceRegions() ([]types.Region, error) {
	if !m.matched {
		return nil, nil
	}
	block, ok := m.host.CodeBlockAt(m.region.Begin)
	if !ok {
		return nil, m.violation(fmt.Sprintf("no code block at %d", m.region.Begin))
	}
	variable, ok := block.Variables()[m.key]
	if !ok {
		return nil, m.violation(fmt.Sprintf("%q is not a variable of %s", m.key, block.Name))
	}

	regions := make([]types.Region, 0, len(variable.Regions)+2)
	regions = append(regions, variable.Regions...)

	locals, args := documentationRegions(block)
	argDecl, hasArg := m.declaration(args)
	if hasArg {
		regions = append(regions, argDecl)
	}
	if localDecl, ok := m.declaration(locals); ok && !(hasArg && localDecl == argDecl) {
		regions = append(regions, localDecl)
	}
	logger.DebugTagf("highlight", "fs_local %q in %s: %d occurrences", m.key, block.Name, len(regions))
	return regions, nil
}

// declaration finds the first entry for the key from the start of within,
// trimmed to the identifier's first character.
func (m *fsLocalMatcher) declaration(within types.Region) (types.Region, bool) {
	r, ok, err := m.host.FindFirst(focus.DeclarationPattern(m.key), within.Begin)
	if err != nil {
		logger.WarnTagf("highlight", "fs_local: declaration of %q: %v", m.key, err)
		return types.Region{}, false
	}
	if !ok || !within.Contains(r) {
		return types.Region{}, false
	}
	return types.Region{Begin: r.Begin, End: r.Begin + 1}, true
}

func (m *fsLocalMatcher) violation(detail string) error {
	err := fmt.Errorf("%w: %s", ErrInvariantViolation, detail)
	logger.ErrorTagf("highlight", "fs_local: %v", err)
	return err
}

func (m *fsLocalMatcher) Describe(cmd Command) string {
	if !m.matched || m.block == nil {
		return m.baseMatcher.Describe(cmd)
	}
	return describe(labels{
		CommandHighlight: fmt.Sprintf("Highlight uses of %s in %s", m.key, m.block.Name),
		CommandSelectAll: fmt.Sprintf("Select all uses of %s in %s", m.key, m.block.Name),
	}, cmd)
}
