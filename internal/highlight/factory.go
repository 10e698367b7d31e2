package highlight

import (
	"fmt"

	"github.com/bethropolis/focusnav/internal/types"
)

// NewMatcher builds the matcher variant for kind.
func NewMatcher(kind Kind, host Host, sel types.Selection) (EntityMatcher, error) {
	switch kind {
	case KindLocal:
		return newLocalMatcher(host, sel), nil
	case KindSubroutine:
		return newSubroutineMatcher(host, sel), nil
	case KindBreak:
		return newBreakMatcher(host, sel), nil
	case KindFSLocal:
		return newFSLocalMatcher(host, sel), nil
	default:
		return nil, fmt.Errorf("unknown matcher kind %v", kind)
	}
}

// Detect returns the first variant in DetectOrder whose Check succeeds.
func Detect(host Host, sel types.Selection) (EntityMatcher, bool) {
	for _, kind := range DetectOrder {
		m, err := NewMatcher(kind, host, sel)
		if err != nil {
			continue
		}
		if m.Check() {
			return m, true
		}
	}
	return nil, false
}
