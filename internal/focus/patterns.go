package focus

import (
	"fmt"
	"strings"

	"github.com/bethropolis/focusnav/internal/buffer"
	"github.com/bethropolis/focusnav/internal/types"
	"github.com/dlclark/regexp2"
)

const (
	// entryLead is the start of any documentation entry: an optional {, an
	// optional | and a letter or 1-2 digit label, then a separator.
	entryLead = `[ \t]*\{?\|?(?:[A-Z]|\d{1,2})\}?[ \t]*[-=:]`

	sectionHeader = `[ \t]*[A-Z][a-z]+(?:[ \t]+[A-Za-z]+)*[ \t]*:[ \t]*$`

	// entryBody consumes the rest of the entry line and every following line
	// that neither starts another entry, closes the comment, nor opens a section.
	entryBody = `[^\n]*\n?(?:(?!` + entryLead + `)(?![ \t]*\*/)(?!` + sectionHeader + `)[ \t]*\S[^\n]*\n?)*`
)

var (
	// LocalsEntryPattern matches one "Local Variables" entry such as "A - does X".
	LocalsEntryPattern = `(?m)^[ \t]*[A-Z][ \t]*[-=:]` + entryBody

	// ArgumentsEntryPattern matches one "Arguments" entry: "|0 - count",
	// "{A} - copied into A" or "B: flag".
	ArgumentsEntryPattern = `(?m)^` + entryLead + entryBody

	// KeyPattern extracts the identifier from an entry's text.
	KeyPattern = `^[ \t]*\{?(\|)?([A-Z]|\d{1,2})`

	sectionHeaderPattern = `(?m)^[ \t]*([A-Z][a-z]+(?:[ \t]+[A-Za-z]+)*)[ \t]*:[ \t]*$`
	headerPattern        = `(?m)^:(?i:code)[ \t]+([A-Za-z_][A-Za-z0-9_.]*)[^\n]*`
)

// DeclarationPattern matches key at the start of a documentation entry.
// Numeric argument keys ("|0") also match when written without the sigil.
func DeclarationPattern(key string) string {
	ident := regexp2.Escape(key)
	if strings.HasPrefix(key, "|") {
		ident = `\|?` + regexp2.Escape(key[1:])
	}
	return `(?m)(?<=^[ \t]*\{?)` + ident + `(?=\}?[ \t]*[-=:])`
}

// ExtractKey returns the identifier an entry documents. Numeric labels are
// normalised to the "|N" argument form.
func ExtractKey(entry string) (string, bool) {
	re, err := buffer.Compile(KeyPattern)
	if err != nil {
		return "", false
	}
	m, err := re.FindStringMatch(entry)
	if err != nil || m == nil {
		return "", false
	}
	ident := m.GroupByNumber(2).String()
	if ident[0] >= '0' && ident[0] <= '9' {
		return "|" + ident, true
	}
	return ident, true
}

func matchIn(runes []rune, pattern string, within types.Region) ([]types.Region, error) {
	re, err := buffer.Compile(pattern)
	if err != nil {
		return nil, err
	}
	within = within.Clamp(len(runes))
	matches, err := buffer.MatchRegions(re, runes[within.Begin:within.End], within.Begin)
	if err != nil {
		return nil, fmt.Errorf("scan documentation: %w", err)
	}
	return matches, nil
}
