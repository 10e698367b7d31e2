// Package view is the editor surface commands act on: a buffer with a
// selection, per-view settings, named region sets and a viewport.
package view

import (
	"sort"

	"github.com/bethropolis/focusnav/internal/buffer"
	"github.com/bethropolis/focusnav/internal/config"
	"github.com/bethropolis/focusnav/internal/event"
	"github.com/bethropolis/focusnav/internal/focus"
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/scope"
	"github.com/bethropolis/focusnav/internal/types"
)

// RegionSet is a named group of regions drawn with one style.
type RegionSet struct {
	Regions []types.Region
	Style   string
}

// View ties a buffer to its selection and side state.
type View struct {
	buf    buffer.Buffer
	scopes *scope.Service
	model  *focus.Model
	events *event.Manager

	sel    types.Selection
	caret  int // moving end of the primary selection
	anchor int // fixed end while extending

	settings map[string]interface{}
	regions  map[string]RegionSet

	ViewportY  int
	ViewportX  int
	viewWidth  int
	viewHeight int
	ScrollOff  int
	TabWidth   int
}

// New creates a view over buf. The caret starts at offset 0.
func New(buf buffer.Buffer, scopes *scope.Service, model *focus.Model) *View {
	return &View{
		buf:       buf,
		scopes:    scopes,
		model:     model,
		sel:       types.NewSelection(types.Point(0)),
		settings:  make(map[string]interface{}),
		regions:   make(map[string]RegionSet),
		ScrollOff: config.DefaultScrollOff,
		TabWidth:  config.DefaultTabWidth,
	}
}

// NewFocus creates a view that tags buf with the Focus grammar.
func NewFocus(buf buffer.Buffer, mapping *scope.Mapping) *View {
	return New(buf, scope.NewService(mapping, focus.Grammar{}), focus.NewModel())
}

// NewPlain creates a view without scopes, so no entity matches.
func NewPlain(buf buffer.Buffer, mapping *scope.Mapping) *View {
	return New(buf, scope.NewService(mapping, scope.PlainText{}), focus.NewModel())
}

// SetEventManager sets the event manager for dispatching view events.
func (v *View) SetEventManager(mgr *event.Manager) {
	v.events = mgr
}

func (v *View) dispatch(t event.Type, data interface{}) {
	if v.events != nil {
		v.events.Dispatch(t, data)
	}
}

// Buffer returns the view's buffer.
func (v *View) Buffer() buffer.Buffer {
	return v.buf
}

// --- Selection ---

// Selection returns a copy of the current selection.
func (v *View) Selection() types.Selection {
	return types.NewSelection(v.sel.Regions()...)
}

// SetSelection replaces the selection. The caret moves to the end of the
// first region.
func (v *View) SetSelection(regions ...types.Region) {
	size := v.buf.Size()
	clamped := make([]types.Region, 0, len(regions))
	for _, r := range regions {
		clamped = append(clamped, r.Clamp(size))
	}
	if len(clamped) == 0 {
		clamped = append(clamped, types.Point(v.caret).Clamp(size))
	}
	v.sel.Set(clamped...)
	primary := v.sel.Primary()
	v.anchor, v.caret = primary.Begin, primary.End
	v.dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Selection: v.Selection()})
}

// Caret returns the caret offset.
func (v *View) Caret() int {
	return v.caret
}

// CaretPosition returns the caret as line and column.
func (v *View) CaretPosition() types.Position {
	return v.buf.RowCol(v.caret)
}

// --- Settings ---

// Setting returns a per-view setting.
func (v *View) Setting(key string) (interface{}, bool) {
	val, ok := v.settings[key]
	return val, ok
}

// SettingBool returns a boolean setting, false when unset or not a bool.
func (v *View) SettingBool(key string) bool {
	b, _ := v.settings[key].(bool)
	return b
}

// SetSetting stores a per-view setting.
func (v *View) SetSetting(key string, value interface{}) {
	v.settings[key] = value
}

// EraseSetting removes a setting.
func (v *View) EraseSetting(key string) {
	delete(v.settings, key)
}

// --- Region sets ---

// AddRegions replaces the region set stored under key.
func (v *View) AddRegions(key string, regions []types.Region, style string) {
	stored := make([]types.Region, len(regions))
	copy(stored, regions)
	v.regions[key] = RegionSet{Regions: stored, Style: style}
	logger.DebugTagf("view", "Region set %q: %d regions", key, len(stored))
	v.dispatch(event.TypeRegionsChanged, event.RegionsChangedData{Key: key, Count: len(stored)})
}

// GetRegions returns a copy of the regions stored under key.
func (v *View) GetRegions(key string) []types.Region {
	set, ok := v.regions[key]
	if !ok {
		return nil
	}
	out := make([]types.Region, len(set.Regions))
	copy(out, set.Regions)
	return out
}

// HasRegions reports whether a set is stored under key, even an empty one.
func (v *View) HasRegions(key string) bool {
	_, ok := v.regions[key]
	return ok
}

// RegionSet returns the set stored under key.
func (v *View) RegionSet(key string) (RegionSet, bool) {
	set, ok := v.regions[key]
	return set, ok
}

// EraseRegions removes the set stored under key.
func (v *View) EraseRegions(key string) {
	if _, ok := v.regions[key]; !ok {
		return
	}
	delete(v.regions, key)
	v.dispatch(event.TypeRegionsChanged, event.RegionsChangedData{Key: key})
}

// RegionKeys lists the stored set names in sorted order.
func (v *View) RegionKeys() []string {
	keys := make([]string, 0, len(v.regions))
	for k := range v.regions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- Text, scopes and language ---

// Substr returns the text of r.
func (v *View) Substr(r types.Region) string {
	return v.buf.Substr(r)
}

// FindFirst returns the first match of pattern at or after from.
func (v *View) FindFirst(pattern string, from int) (types.Region, bool, error) {
	return v.buf.FindFirst(pattern, from)
}

// FindAll returns every match of pattern.
func (v *View) FindAll(pattern string) ([]types.Region, error) {
	return v.buf.FindAll(pattern)
}

// FindAllIn returns the matches of pattern inside within.
func (v *View) FindAllIn(pattern string, within types.Region) ([]types.Region, error) {
	return v.buf.FindAllIn(pattern, within)
}

// ScoreSelector scores the scope key against the character right of offset.
func (v *View) ScoreSelector(offset int, key string) int {
	return v.scopes.Score(v.buf, offset, key)
}

// FindBySelector returns the regions tagged with the scope key.
func (v *View) FindBySelector(key string) []types.Region {
	return v.scopes.FindBySelector(v.buf, key)
}

// ScopesAt names the scopes at offset, outermost first.
func (v *View) ScopesAt(offset int) []string {
	return v.scopes.ScopesAt(v.buf, offset)
}

// ScopeSpans returns the tagged spans of the current text, sorted by
// Begin and then outermost first.
func (v *View) ScopeSpans() []scope.Span {
	return v.scopes.Spans(v.buf)
}

// CodeBlockAt returns the Focus code block holding offset.
func (v *View) CodeBlockAt(offset int) (*focus.CodeBlock, bool) {
	return v.model.CodeBlockAt(v.buf, offset)
}

// File returns the parsed Focus file for the current buffer version.
func (v *View) File() *focus.File {
	return v.model.File(v.buf)
}
