package focus

import (
	"strings"
	"testing"

	"github.com/bethropolis/focusnav/internal/buffer"
	"github.com/bethropolis/focusnav/internal/scope"
	"github.com/bethropolis/focusnav/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `:Code Main
/* Computes totals.
Arguments:
|0 - item count
{A} - copied into A
Local Variables:
A - running total
B - scratch
  value kept between loops
C - documented but unused
*/
A^|0, B^A, @Helper(A), @Break
; trailing comment with X
"string X"
/GLOBAL.VAR^B
:Code Helper
A^1, @Break
`

func regionOf(t *testing.T, text, sub string) types.Region {
	t.Helper()
	i := strings.Index(text, sub)
	require.GreaterOrEqual(t, i, 0, "%q not found", sub)
	return types.Region{Begin: i, End: i + len(sub)}
}

func spansWith(spans []scope.Span, name string) []types.Region {
	var out []types.Region
	for _, s := range spans {
		if s.Scope == name {
			out = append(out, s.Region)
		}
	}
	return out
}

func TestParseBlocks(t *testing.T) {
	f := Parse(sample)
	require.Len(t, f.Blocks(), 2)

	main, helper := f.Blocks()[0], f.Blocks()[1]
	assert.Equal(t, "Main", main.Name)
	assert.Equal(t, "Helper", helper.Name)
	assert.Equal(t, main.Region.End, helper.Region.Begin)
	assert.Equal(t, len(sample), helper.Region.End)

	assert.True(t, main.HasDocumentation)
	assert.True(t, strings.HasPrefix(f.Text(main.DocumentationRegion), "/* Computes"))
	assert.True(t, strings.HasSuffix(f.Text(main.DocumentationRegion), "*/"))
	assert.False(t, helper.HasDocumentation)
	assert.True(t, helper.DocumentationRegion.Empty())

	b, ok := f.CodeBlockAt(regionOf(t, sample, "@Break").Begin)
	require.True(t, ok)
	assert.Equal(t, "Main", b.Name)
	b, ok = f.CodeBlockAt(len(sample))
	require.True(t, ok)
	assert.Equal(t, "Helper", b.Name)

	_, ok = Parse("A^B\n").CodeBlockAt(0)
	assert.False(t, ok)
}

func TestGrammarScopes(t *testing.T) {
	spans := Grammar{}.Tag(sample)

	assert.Len(t, spansWith(spans, ScopeSubroutine), 2)
	assert.Len(t, spansWith(spans, ScopeDebugFunction), 2)
	assert.Len(t, spansWith(spans, ScopeDocumentation), 1)
	assert.Equal(t, []types.Region{regionOf(t, sample, "; trailing comment with X")}, spansWith(spans, ScopeLineComment))
	assert.Equal(t, []types.Region{regionOf(t, sample, `"string X"`)}, spansWith(spans, ScopeString))
	assert.Equal(t, []types.Region{regionOf(t, sample, "/GLOBAL.VAR")}, spansWith(spans, ScopeFocusLocal))

	var names []string
	for _, r := range spansWith(spans, ScopeFunctionName) {
		names = append(names, sample[r.Begin:r.End])
	}
	assert.Equal(t, []string{"Main", "Helper", "Helper"}, names)

	for _, r := range spansWith(spans, ScopeLocal) {
		assert.NotEqual(t, "X", sample[r.Begin:r.End], "locals inside comments and strings are not tagged")
	}
}

func TestVariablesIndex(t *testing.T) {
	f := Parse(sample)
	main, _ := f.Block("Main")
	vars := main.Variables()

	assert.Len(t, vars["A"].Regions, 3)
	assert.Len(t, vars["B"].Regions, 2)
	assert.Len(t, vars["|0"].Regions, 1)
	require.Contains(t, vars, "C", "documented locals are indexed")
	assert.Empty(t, vars["C"].Regions)
	assert.NotContains(t, vars, "X")
	assert.Equal(t, []string{"A", "B", "C", "|0"}, main.VariableNames())

	for _, r := range vars["A"].Regions {
		assert.True(t, main.BodyRegion.Contains(r))
	}

	helper, _ := f.Block("Helper")
	assert.Len(t, helper.Variables()["A"].Regions, 1)
}

func TestDocumentationSections(t *testing.T) {
	f := Parse(sample)
	main, _ := f.Block("Main")
	doc := main.Documentation()

	locals, ok := doc.SectionRegion("local  variables")
	require.True(t, ok)
	assert.Equal(t, "A - running total\nB - scratch\n  value kept between loops\nC - documented but unused\n", f.Text(locals))

	args, ok := doc.SectionRegion(SectionArguments)
	require.True(t, ok)
	assert.Equal(t, "|0 - item count\n{A} - copied into A\n", f.Text(args))

	assert.Equal(t, []string{"Arguments", "Local Variables"}, doc.SectionNames())
	assert.Equal(t, "Computes totals.", doc.Summary())

	_, ok = doc.SectionRegion("Returns")
	assert.False(t, ok)

	var keys []string
	for _, e := range doc.Entries() {
		keys = append(keys, e.Section+":"+e.Key)
	}
	assert.Equal(t, []string{"Arguments:|0", "Arguments:A", "Local Variables:A", "Local Variables:B", "Local Variables:C"}, keys)

	e, ok := doc.Entry("B")
	require.True(t, ok)
	assert.Equal(t, "B - scratch\n  value kept between loops", e.Text)

	e, ok = doc.Entry("A")
	require.True(t, ok)
	assert.Equal(t, SectionArguments, e.Section)
}

func TestLocalsEntrySelection(t *testing.T) {
	doc := "A - does X\nB - does Y\n"
	runes := []rune(doc)
	within := types.Region{Begin: 0, End: len(runes)}
	bLine := regionOf(t, doc, "B - does Y\n")

	matches, err := matchIn(runes, LocalsEntryPattern, within)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	for p := bLine.Begin; p < bLine.End; p++ {
		var held []types.Region
		for _, m := range matches {
			if m.Covers(types.Point(p)) {
				held = append(held, m)
			}
		}
		require.Len(t, held, 1, "offset %d", p)
		assert.Equal(t, bLine, held[0])

		key, ok := ExtractKey(doc[held[0].Begin:held[0].End])
		require.True(t, ok)
		assert.Equal(t, "B", key)
	}
}

func TestArgumentsEntryForms(t *testing.T) {
	doc := "|0 - count\n{A} - copied\n12: label\n  more\nlower text\n"
	matches, err := matchIn([]rune(doc), ArgumentsEntryPattern, types.Region{Begin: 0, End: len(doc)})
	require.NoError(t, err)

	var keys []string
	for _, m := range matches {
		k, ok := ExtractKey(doc[m.Begin:m.End])
		require.True(t, ok)
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"|0", "A", "|12"}, keys)
	assert.Equal(t, "12: label\n  more\nlower text\n", doc[matches[2].Begin:matches[2].End])

	// Locals take letters only.
	matches, err = matchIn([]rune(doc), LocalsEntryPattern, types.Region{Begin: 0, End: len(doc)})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDeclarationPattern(t *testing.T) {
	buf := buffer.NewRuneBufferFromString(sample)
	main, _ := Parse(sample).Block("Main")
	doc := main.Documentation()
	args, _ := doc.SectionRegion(SectionArguments)
	locals, _ := doc.SectionRegion(SectionLocals)

	r, ok, err := buf.FindFirst(DeclarationPattern("|0"), args.Begin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, regionOf(t, sample, "|0 - item").Begin, r.Begin)

	r, ok, err = buf.FindFirst(DeclarationPattern("A"), args.Begin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, regionOf(t, sample, "{A}").Begin+1, r.Begin)
	assert.Equal(t, 1, r.Size())

	r, ok, err = buf.FindFirst(DeclarationPattern("A"), locals.Begin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, regionOf(t, sample, "A - running").Begin, r.Begin)

	// A body line starting with a local is found but lies outside the sections.
	r, ok, err = buf.FindFirst(DeclarationPattern("B"), locals.End)
	require.NoError(t, err)
	if ok {
		assert.False(t, locals.Contains(r))
	}
}

type stubSource struct {
	text    string
	version uint64
}

func (s *stubSource) ID() string      { return "stub" }
func (s *stubSource) Version() uint64 { return s.version }
func (s *stubSource) Text() string    { return s.text }

func TestModelFollowsVersion(t *testing.T) {
	m := NewModel()
	src := &stubSource{text: sample}

	first := m.File(src)
	assert.Same(t, first, m.File(src))

	src.text = ":Code Other\nA\n"
	src.version++
	b, ok := m.CodeBlockAt(src, 0)
	require.True(t, ok)
	assert.Equal(t, "Other", b.Name)
}
