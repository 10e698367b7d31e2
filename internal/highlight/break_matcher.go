package highlight

import (
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/types"
)

const breakKey = "Break"

// breakMatcher treats every debug break as one entity.
type breakMatcher struct {
	baseMatcher
}

func newBreakMatcher(host Host, sel types.Selection) *breakMatcher {
	return &breakMatcher{baseMatcher: newBase(KindBreak, host, sel, scopeDebugFunction)}
}

func (m *breakMatcher) Check() bool {
	m.reset()
	if m.host.ScoreSelector(m.caret(), m.scopeKey) <= 0 {
		return false
	}
	region := m.sel
	for _, r := range m.host.FindBySelector(m.scopeKey) {
		if r.Covers(m.sel) {
			region = r
			break
		}
	}
	return m.match(breakKey, region)
}

func (m *breakMatcher) OccurrenceRegions() ([]types.Region, error) {
	if !m.matched {
		return nil, nil
	}
	regions := m.host.FindBySelector(m.scopeKey)
	logger.DebugTagf("highlight", "break: %d occurrences", len(regions))
	return regions, nil
}

func (m *breakMatcher) Describe(cmd Command) string {
	if !m.matched {
		return m.baseMatcher.Describe(cmd)
	}
	return describe(labels{
		CommandHighlight: "Highlight all Break calls",
		CommandSelectAll: "Select all Break calls",
	}, cmd)
}
