package highlight

import (
	"fmt"

	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/types"
)

// selectorMatcher highlights every token of one scope with the same text as
// the token under the caret. Local and Subroutine differ only in the key.
type selectorMatcher struct {
	baseMatcher
}

func newLocalMatcher(host Host, sel types.Selection) *selectorMatcher {
	return &selectorMatcher{baseMatcher: newBase(KindLocal, host, sel, scopeFocusLocal)}
}

func newSubroutineMatcher(host Host, sel types.Selection) *selectorMatcher {
	return &selectorMatcher{baseMatcher: newBase(KindSubroutine, host, sel, scopeSubroutineName)}
}

func (m *selectorMatcher) Check() bool {
	m.reset()
	if m.host.ScoreSelector(m.caret(), m.scopeKey) <= 0 {
		return false
	}
	for _, r := range m.host.FindBySelector(m.scopeKey) {
		if r.Covers(m.sel) {
			return m.match(m.host.Substr(r), r)
		}
	}
	logger.DebugTagf("highlight", "%s: scope matches at %d but no %s token holds %v", m.kind, m.caret(), m.scopeKey, m.sel)
	return false
}

func (m *selectorMatcher) OccurrenceRegions() ([]types.Region, error) {
	if !m.matched {
		return nil, nil
	}
	var out []types.Region
	for _, r := range m.host.FindBySelector(m.scopeKey) {
		if m.host.Substr(r) == m.key {
			out = append(out, r)
		}
	}
	logger.DebugTagf("highlight", "%s %q: %d occurrences", m.kind, m.key, len(out))
	return out, nil
}

func (m *selectorMatcher) Describe(cmd Command) string {
	if !m.matched {
		return m.baseMatcher.Describe(cmd)
	}
	return describe(labels{
		CommandHighlight: fmt.Sprintf("Highlight uses of %s", m.key),
		CommandSelectAll: fmt.Sprintf("Select all uses of %s", m.key),
	}, cmd)
}
