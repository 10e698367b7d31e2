package buffer

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/types"
	"github.com/dlclark/regexp2"
)

// matchTimeout bounds backtracking patterns; lookaround makes runaway scans possible.
const matchTimeout = 250 * time.Millisecond

var (
	patternMu    sync.Mutex
	patternCache = make(map[string]*regexp2.Regexp)
)

// Compile returns a cached multiline regexp2 pattern.
func Compile(pattern string) (*regexp2.Regexp, error) {
	patternMu.Lock()
	defer patternMu.Unlock()

	if re, ok := patternCache[pattern]; ok {
		return re, nil
	}
	re, err := regexp2.Compile(pattern, regexp2.Multiline)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = matchTimeout
	patternCache[pattern] = re
	return re, nil
}

// MatchRegions returns every match of re in runes, shifted by base.
// Empty matches are skipped.
func MatchRegions(re *regexp2.Regexp, runes []rune, base int) ([]types.Region, error) {
	var out []types.Region
	m, err := re.FindRunesMatch(runes)
	for m != nil && err == nil {
		if m.Length > 0 {
			out = append(out, types.Region{Begin: base + m.Index, End: base + m.Index + m.Length})
		}
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return out, nil
}

// FindFirst returns the first match starting at or after from.
func (b *RuneBuffer) FindFirst(pattern string, from int) (types.Region, bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return types.Region{}, false, err
	}
	if from < 0 {
		from = 0
	}
	if from > len(b.runes) {
		return types.Region{}, false, nil
	}
	m, err := re.FindRunesMatchStartingAt(b.runes, from)
	if err != nil {
		return types.Region{}, false, fmt.Errorf("search failed: %w", err)
	}
	if m == nil {
		return types.Region{}, false, nil
	}
	return types.Region{Begin: m.Index, End: m.Index + m.Length}, true, nil
}

// FindAll returns all non-empty matches in document order.
func (b *RuneBuffer) FindAll(pattern string) ([]types.Region, error) {
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	regions, err := MatchRegions(re, b.runes, 0)
	if err != nil {
		return nil, err
	}
	logger.DebugTagf("buffer", "FindAll %q: %d matches", pattern, len(regions))
	return regions, nil
}

// FindAllIn scans only the text inside within. Anchors such as ^ and $ see
// within's bounds as the text bounds.
func (b *RuneBuffer) FindAllIn(pattern string, within types.Region) ([]types.Region, error) {
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	within = within.Clamp(len(b.runes))
	return MatchRegions(re, b.runes[within.Begin:within.End], within.Begin)
}
