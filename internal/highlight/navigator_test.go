package highlight

import (
	"testing"

	"github.com/bethropolis/focusnav/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fakeSurface records what the navigator does to a view.
type fakeSurface struct {
	sel      types.Selection
	shown    []types.Region
	settings map[string]interface{}
	regions  map[string][]types.Region
	styles   map[string]string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		settings: make(map[string]interface{}),
		regions:  make(map[string][]types.Region),
		styles:   make(map[string]string),
	}
}

func (f *fakeSurface) Selection() types.Selection { return f.sel }

func (f *fakeSurface) SetSelection(regions ...types.Region) {
	f.sel = types.NewSelection(regions...)
}

func (f *fakeSurface) ShowRegion(r types.Region) { f.shown = append(f.shown, r) }

func (f *fakeSurface) SettingBool(key string) bool {
	b, _ := f.settings[key].(bool)
	return b
}

func (f *fakeSurface) SetSetting(key string, value interface{}) { f.settings[key] = value }
func (f *fakeSurface) EraseSetting(key string)                  { delete(f.settings, key) }

func (f *fakeSurface) AddRegions(key string, regions []types.Region, style string) {
	f.regions[key] = append([]types.Region(nil), regions...)
	f.styles[key] = style
}

func (f *fakeSurface) GetRegions(key string) []types.Region {
	return append([]types.Region(nil), f.regions[key]...)
}

func (f *fakeSurface) EraseRegions(key string) {
	delete(f.regions, key)
	delete(f.styles, key)
}

var (
	r0 = types.Region{Begin: 2, End: 4}
	r1 = types.Region{Begin: 10, End: 12}
	r2 = types.Region{Begin: 20, End: 21}
)

func TestNavigatorWraps(t *testing.T) {
	s := newFakeSurface()
	n := NewNavigator(s, "outline")
	n.Render([]types.Region{r2, r0, r1})
	assert.Equal(t, "outline", s.styles[RegionsKey])

	s.SetSelection(types.Point(30))
	require.True(t, n.MoveNext())
	assert.Equal(t, r0, s.sel.Primary(), "past the last highlight wraps to the first")
	assert.Equal(t, []types.Region{r0}, s.shown)

	require.True(t, n.MoveNext())
	assert.Equal(t, r1, s.sel.Primary())

	s.SetSelection(types.Point(0))
	require.True(t, n.MovePrevious())
	assert.Equal(t, r2, s.sel.Primary(), "before the first highlight wraps to the last")

	require.True(t, n.MovePrevious())
	assert.Equal(t, r1, s.sel.Primary())
}

func TestNavigatorPrunesEmptyRegions(t *testing.T) {
	s := newFakeSurface()
	n := NewNavigator(s, "outline")
	n.Render([]types.Region{r0, types.Point(7), r1})

	s.SetSelection(types.Point(0))
	require.True(t, n.MoveNext())
	assert.Equal(t, []types.Region{r0, r1}, s.regions[RegionsKey])
	assert.Equal(t, r0, s.sel.Primary())
}

func TestNavigatorSelectAllSkipsEmptyRegions(t *testing.T) {
	s := newFakeSurface()
	n := NewNavigator(s, "outline")
	n.Render([]types.Region{r1, types.Point(7), r0})

	require.True(t, n.SelectAll())
	assert.Equal(t, []types.Region{r0, r1}, s.sel.Regions())
	assert.Equal(t, []types.Region{r0, r1}, s.regions[RegionsKey])

	n.Render([]types.Region{types.Point(3)})
	assert.False(t, n.SelectAll())
}

func TestNavigatorAllEmpty(t *testing.T) {
	s := newFakeSurface()
	n := NewNavigator(s, "outline")
	n.Render([]types.Region{types.Point(1), types.Point(5)})

	assert.False(t, n.MoveNext())
	assert.Empty(t, s.regions[RegionsKey])
	assert.True(t, n.Active())
}

func TestNavigatorInactive(t *testing.T) {
	s := newFakeSurface()
	n := NewNavigator(s, "outline")
	s.SetSelection(types.Point(3))

	assert.False(t, n.MoveNext())
	assert.False(t, n.MovePrevious())
	assert.False(t, n.SelectAll())
	assert.False(t, n.Clear())

	assert.Empty(t, s.regions)
	assert.Empty(t, s.settings)
	assert.Equal(t, types.Point(3), s.sel.Primary())
}

func TestNavigatorClear(t *testing.T) {
	s := newFakeSurface()
	n := NewNavigator(s, "outline")
	n.Render([]types.Region{r0})

	require.True(t, n.Clear())
	assert.False(t, n.Active())
	assert.NotContains(t, s.regions, RegionsKey)
	assert.NotContains(t, s.settings, SettingActive)
	assert.False(t, n.Clear())
}

func TestNavigatorSelectAll(t *testing.T) {
	s := newFakeSurface()
	n := NewNavigator(s, "fill")
	n.Render([]types.Region{r1, r0})

	require.True(t, n.SelectAll())
	assert.Equal(t, []types.Region{r0, r1}, s.sel.Regions())

	n.Render(nil)
	assert.False(t, n.SelectAll())
}

func TestRenderThenSelectAllRoundTrip(t *testing.T) {
	v := newView(t, source)
	m, ok := Detect(v, caret(at(t, source, "A^|0", 0, 0)))
	require.True(t, ok)

	regions, err := m.OccurrenceRegions()
	require.NoError(t, err)

	n := NewNavigator(v, "outline")
	n.Render(regions)
	require.True(t, n.SelectAll())
	assert.ElementsMatch(t, regions, v.Selection().Regions())
}

// disjointRegions draws 1-10 non-empty, non-overlapping regions in order.
func disjointRegions(t *rapid.T) []types.Region {
	count := rapid.IntRange(1, 10).Draw(t, "count")
	var out []types.Region
	pos := rapid.IntRange(1, 5).Draw(t, "start")
	for i := 0; i < count; i++ {
		size := rapid.IntRange(1, 4).Draw(t, "size")
		out = append(out, types.Region{Begin: pos, End: pos + size})
		pos += size + rapid.IntRange(1, 6).Draw(t, "gap")
	}
	return out
}

func TestNavigatorWrapProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		regions := disjointRegions(t)
		last := regions[len(regions)-1]

		s := newFakeSurface()
		n := NewNavigator(s, "outline")
		n.Render(regions)

		s.SetSelection(types.Point(last.End + rapid.IntRange(0, 5).Draw(t, "after")))
		if !n.MoveNext() || s.sel.Primary() != regions[0] {
			t.Fatalf("MoveNext after the last region selected %v, want %v", s.sel.Primary(), regions[0])
		}

		s.SetSelection(types.Point(rapid.IntRange(0, regions[0].Begin).Draw(t, "before")))
		if !n.MovePrevious() || s.sel.Primary() != last {
			t.Fatalf("MovePrevious before the first region selected %v, want %v", s.sel.Primary(), last)
		}

		// Stepping forward from the first region visits every region once.
		s.SetSelection(regions[0])
		for i := 1; i <= len(regions); i++ {
			n.MoveNext()
			want := regions[i%len(regions)]
			if s.sel.Primary() != want {
				t.Fatalf("step %d selected %v, want %v", i, s.sel.Primary(), want)
			}
		}
	})
}
