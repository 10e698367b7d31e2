package scope

import (
	"errors"
	"strings"
)

// Selector is a comma separated list of dotted scope prefixes.
// "comment, string.quoted" matches "comment.line.fs" and "string.quoted.double.fs".
type Selector struct {
	alternatives [][]string
}

// ParseSelector parses a selector string.
func ParseSelector(s string) (Selector, error) {
	var sel Selector
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sel.alternatives = append(sel.alternatives, strings.Split(part, "."))
	}
	if len(sel.alternatives) == 0 {
		return Selector{}, errors.New("empty selector")
	}
	return sel, nil
}

// Score returns how specifically the selector matches scope: the number of
// dotted segments of the best matching alternative, or 0 for no match.
func (s Selector) Score(scope string) int {
	segments := strings.Split(scope, ".")
	best := 0
	for _, alt := range s.alternatives {
		if len(alt) > len(segments) {
			continue
		}
		matched := true
		for i, seg := range alt {
			if segments[i] != seg {
				matched = false
				break
			}
		}
		if matched && len(alt) > best {
			best = len(alt)
		}
	}
	return best
}

func (s Selector) String() string {
	parts := make([]string, len(s.alternatives))
	for i, alt := range s.alternatives {
		parts[i] = strings.Join(alt, ".")
	}
	return strings.Join(parts, ", ")
}
