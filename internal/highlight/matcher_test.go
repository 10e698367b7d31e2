package highlight

import (
	"errors"
	"strings"
	"testing"

	"github.com/bethropolis/focusnav/internal/buffer"
	"github.com/bethropolis/focusnav/internal/scope"
	"github.com/bethropolis/focusnav/internal/types"
	"github.com/bethropolis/focusnav/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `:Code Main
/* Totals.
Arguments:
|0 - item count
Local Variables:
A - does X
B - does Y
*/
A^|0, B^A, @Helper(A), @Break
/TOTAL^B, /TOTAL^A
@Break
:Code Helper
A^1, @Break, /TOTAL^A
`

func newView(t *testing.T, text string) *view.View {
	t.Helper()
	return view.NewFocus(buffer.NewRuneBufferFromString(text), scope.DefaultMapping())
}

// at returns the offset of the n-th (0-based) occurrence of sub plus shift.
func at(t *testing.T, text, sub string, n, shift int) int {
	t.Helper()
	offset := -1
	for i := 0; i <= n; i++ {
		next := strings.Index(text[offset+1:], sub)
		require.GreaterOrEqual(t, next, 0, "occurrence %d of %q", i, sub)
		offset += next + 1
	}
	return offset + shift
}

func span(t *testing.T, text, sub string, n int) types.Region {
	begin := at(t, text, sub, n, 0)
	return types.Region{Begin: begin, End: begin + len(sub)}
}

func caret(p int) types.Selection {
	return types.NewSelection(types.Point(p))
}

func matcher(t *testing.T, kind Kind, v *view.View, sel types.Selection) EntityMatcher {
	t.Helper()
	m, err := NewMatcher(kind, v, sel)
	require.NoError(t, err)
	return m
}

func TestLocalMatcherFiltersByKey(t *testing.T) {
	v := newView(t, source)
	m := matcher(t, KindLocal, v, caret(at(t, source, "/TOTAL", 0, 2)))

	require.True(t, m.Check())
	assert.Equal(t, "/TOTAL", m.SearchKey())
	assert.Equal(t, span(t, source, "/TOTAL", 0), m.SearchRegion())

	regions, err := m.OccurrenceRegions()
	require.NoError(t, err)
	assert.Len(t, regions, 3)
	assert.Contains(t, regions, m.SearchRegion())
	for _, r := range regions {
		assert.Equal(t, m.SearchKey(), v.Substr(r))
	}

	assert.Equal(t, "Highlight uses of /TOTAL", m.Describe(CommandHighlight))
	assert.Equal(t, "Select all uses of /TOTAL", m.Describe(CommandSelectAll))
	assert.Equal(t, "Move to next highlight", m.Describe(CommandMoveForward))
}

func TestLocalMatcherNoMatch(t *testing.T) {
	v := newView(t, source)
	m := matcher(t, KindLocal, v, caret(at(t, source, "@Break", 0, 1)))
	assert.False(t, m.Check())

	regions, err := m.OccurrenceRegions()
	require.NoError(t, err)
	assert.Empty(t, regions)
	assert.Equal(t, "Highlight entity", m.Describe(CommandHighlight))
	assert.Equal(t, unsupportedLabel, m.Describe(Command(42)))
}

func TestLocalMatcherCaretAfterToken(t *testing.T) {
	v := newView(t, source)
	// The caret right after /TOTAL scores the '^' that follows it.
	m := matcher(t, KindLocal, v, caret(span(t, source, "/TOTAL", 0).End))
	assert.False(t, m.Check())
}

func TestSubroutineMatcher(t *testing.T) {
	v := newView(t, source)
	m := matcher(t, KindSubroutine, v, caret(at(t, source, "Helper(", 0, 0)))

	require.True(t, m.Check())
	assert.Equal(t, "Helper", m.SearchKey())

	regions, err := m.OccurrenceRegions()
	require.NoError(t, err)
	assert.Equal(t, []types.Region{span(t, source, "Helper", 0), span(t, source, "Helper", 1)}, regions)
	assert.Equal(t, "Highlight uses of Helper", m.Describe(CommandHighlight))
}

func TestBreakMatcherCountsEveryBreak(t *testing.T) {
	v := newView(t, source)
	all := v.FindBySelector("debug_function")
	require.Len(t, all, 3)

	for i := range all {
		m := matcher(t, KindBreak, v, caret(all[i].Begin))
		require.True(t, m.Check())
		assert.Equal(t, "Break", m.SearchKey())
		assert.Equal(t, all[i], m.SearchRegion())

		regions, err := m.OccurrenceRegions()
		require.NoError(t, err)
		assert.Len(t, regions, len(all))
	}
}

func TestFSLocalDirectReference(t *testing.T) {
	v := newView(t, source)
	m := matcher(t, KindFSLocal, v, caret(at(t, source, "A^|0", 0, 0)))

	require.True(t, m.Check())
	assert.Equal(t, "A", m.SearchKey())

	regions, err := m.OccurrenceRegions()
	require.NoError(t, err)
	assert.Len(t, regions, 5, "four uses in Main plus the Local Variables entry")
	assert.Contains(t, regions, types.Region{Begin: at(t, source, "A - does X", 0, 0), End: at(t, source, "A - does X", 0, 1)})

	helper := span(t, source, ":Code Helper", 0).Begin
	for _, r := range regions {
		assert.Less(t, r.Begin, helper, "uses in other blocks are excluded")
		assert.Equal(t, "A", v.Substr(r))
	}

	assert.Equal(t, "Highlight uses of A in Main", m.Describe(CommandHighlight))
	assert.Equal(t, "Select all uses of A in Main", m.Describe(CommandSelectAll))
	assert.Equal(t, "Clear highlights", m.Describe(CommandClear))
}

func TestFSLocalDocumentationEntry(t *testing.T) {
	v := newView(t, source)
	bLine := span(t, source, "B - does Y\n", 0)

	for p := bLine.Begin; p < bLine.End; p++ {
		m := matcher(t, KindFSLocal, v, caret(p))
		require.True(t, m.Check(), "offset %d", p)
		assert.Equal(t, "B", m.SearchKey())
		assert.Equal(t, bLine, m.SearchRegion())
	}

	m := matcher(t, KindFSLocal, v, caret(bLine.Begin+4))
	require.True(t, m.Check())
	regions, err := m.OccurrenceRegions()
	require.NoError(t, err)
	assert.Len(t, regions, 3)
	assert.Contains(t, regions, types.Region{Begin: bLine.Begin, End: bLine.Begin + 1})
}

func TestFSLocalArgumentEntry(t *testing.T) {
	v := newView(t, source)
	m := matcher(t, KindFSLocal, v, caret(at(t, source, "item count", 0, 0)))

	require.True(t, m.Check())
	assert.Equal(t, "|0", m.SearchKey())

	regions, err := m.OccurrenceRegions()
	require.NoError(t, err)
	decl := at(t, source, "|0 - item", 0, 0)
	assert.ElementsMatch(t, []types.Region{span(t, source, "|0", 1), {Begin: decl, End: decl + 1}}, regions)
}

func TestFSLocalPreconditions(t *testing.T) {
	v := newView(t, source)
	a := at(t, source, "A^|0", 0, 0)

	wide := matcher(t, KindFSLocal, v, types.NewSelection(types.Region{Begin: a, End: a + 2}))
	assert.False(t, wide.Check(), "multi-character selections are rejected")

	one := matcher(t, KindFSLocal, v, types.NewSelection(types.Region{Begin: a, End: a + 1}))
	assert.True(t, one.Check())

	outside := newView(t, "A^B\n")
	assert.False(t, matcher(t, KindFSLocal, outside, caret(0)).Check(), "text outside a code block")

	summary := matcher(t, KindFSLocal, v, caret(at(t, source, "Totals", 0, 0)))
	assert.False(t, summary.Check(), "documentation text outside the sections")
}

func TestFSLocalFallsBackToWholeDocumentation(t *testing.T) {
	text := ":Code Short\n/*\nA - the only local\n*/\nA^1\n"
	v := newView(t, text)
	m := matcher(t, KindFSLocal, v, caret(at(t, text, "only", 0, 0)))

	require.True(t, m.Check())
	assert.Equal(t, "A", m.SearchKey())
	regions, err := m.OccurrenceRegions()
	require.NoError(t, err)
	assert.Len(t, regions, 2, "the use and the entry, counted once")
}

func TestFSLocalArgumentsOnlyDocumentation(t *testing.T) {
	text := ":Code Args\n/*\nArguments:\n{A} - copied\n|1 - count\n*/\nA^|1\n"
	v := newView(t, text)

	copied := matcher(t, KindFSLocal, v, caret(at(t, text, "copied", 0, 0)))
	require.True(t, copied.Check())
	assert.Equal(t, "A", copied.SearchKey())

	count := matcher(t, KindFSLocal, v, caret(at(t, text, "count", 0, 0)))
	require.True(t, count.Check())
	assert.Equal(t, "|1", count.SearchKey())

	regions, err := count.OccurrenceRegions()
	require.NoError(t, err)
	assert.Contains(t, regions, span(t, text, "|1", 1))
}

func TestFSLocalInvariantViolation(t *testing.T) {
	v := newView(t, ":Code H\nA^1\n")
	m := matcher(t, KindFSLocal, v, caret(8))
	require.True(t, m.Check())

	v.Buffer().SetText(":Code H\nB^1\n")
	_, err := m.OccurrenceRegions()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
}

func TestNewMatcherUnknownKind(t *testing.T) {
	_, err := NewMatcher(Kind(99), newView(t, ""), caret(0))
	assert.Error(t, err)

	k, ok := ParseKind("fs_local")
	require.True(t, ok)
	assert.Equal(t, KindFSLocal, k)
	_, ok = ParseKind("nope")
	assert.False(t, ok)
	assert.Equal(t, "select_all", CommandSelectAll.String())
}

func TestDetect(t *testing.T) {
	v := newView(t, source)
	tests := []struct {
		name   string
		offset int
		kind   Kind
	}{
		{"fs local", at(t, source, "B^A", 0, 0), KindFSLocal},
		{"focus local", at(t, source, "/TOTAL", 1, 1), KindLocal},
		{"subroutine", at(t, source, "Helper", 1, 2), KindSubroutine},
		{"break", at(t, source, "Break", 2, 0), KindBreak},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Detect(v, caret(tt.offset))
			require.True(t, ok)
			assert.Equal(t, tt.kind, m.Kind())
		})
	}

	_, ok := Detect(v, caret(at(t, source, ", @Helper", 0, 0)))
	assert.False(t, ok)
}
