package highlight

import (
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/types"
)

// Keys of the per-view state the navigator owns.
const (
	SettingActive = "focus_highlight_active"
	RegionsKey    = "focus_last_highlight"
)

// Surface is the write side of the editor the navigator drives.
type Surface interface {
	Selection() types.Selection
	SetSelection(regions ...types.Region)
	ShowRegion(r types.Region)

	SettingBool(key string) bool
	SetSetting(key string, value interface{})
	EraseSetting(key string)

	AddRegions(key string, regions []types.Region, style string)
	GetRegions(key string) []types.Region
	EraseRegions(key string)
}

// Navigator keeps one highlight set per view and moves the selection
// through it.
type Navigator struct {
	surface Surface
	style   string
}

// NewNavigator creates a navigator that draws highlights with style.
func NewNavigator(surface Surface, style string) *Navigator {
	return &Navigator{surface: surface, style: style}
}

// Active reports whether a highlight set is shown.
func (n *Navigator) Active() bool {
	return n.surface.SettingBool(SettingActive)
}

// Regions returns the highlighted regions as stored.
func (n *Navigator) Regions() []types.Region {
	return n.surface.GetRegions(RegionsKey)
}

// Render replaces the highlight set with regions and marks it active.
func (n *Navigator) Render(regions []types.Region) {
	n.surface.AddRegions(RegionsKey, regions, n.style)
	n.surface.SetSetting(SettingActive, true)
	logger.DebugTagf("highlight", "Rendered %d highlights", len(regions))
}

// MoveNext selects the first highlight at or after the selection's end,
// wrapping to the first one.
func (n *Navigator) MoveNext() bool {
	return n.move(true)
}

// MovePrevious selects the last highlight ending at or before the
// selection's start, wrapping to the last one.
func (n *Navigator) MovePrevious() bool {
	return n.move(false)
}

func (n *Navigator) move(forward bool) bool {
	if !n.Active() {
		return false
	}
	regions := n.liveRegions()
	if len(regions) == 0 {
		return false
	}
	sel := n.surface.Selection().Primary()

	next, prev := regions[0], regions[len(regions)-1]
	for _, r := range regions {
		if r.Begin >= sel.End {
			next = r
			break
		}
	}
	for i := len(regions) - 1; i >= 0; i-- {
		if regions[i].End <= sel.Begin {
			prev = regions[i]
			break
		}
	}

	target := prev
	if forward {
		target = next
	}
	n.surface.SetSelection(target)
	n.surface.ShowRegion(target)
	return true
}

// liveRegions returns the highlights in position order without empty ones.
// Edits can collapse a highlight; those are dropped from the stored set.
func (n *Navigator) liveRegions() []types.Region {
	stored := n.surface.GetRegions(RegionsKey)
	types.SortRegions(stored)
	live := make([]types.Region, 0, len(stored))
	for _, r := range stored {
		if !r.Empty() {
			live = append(live, r)
		}
	}
	if len(live) != len(stored) {
		logger.DebugTagf("highlight", "Pruned %d empty highlights", len(stored)-len(live))
		n.surface.AddRegions(RegionsKey, live, n.style)
	}
	return live
}

// SelectAll selects every highlighted region.
func (n *Navigator) SelectAll() bool {
	if !n.Active() {
		return false
	}
	regions := n.liveRegions()
	if len(regions) == 0 {
		return false
	}
	n.surface.SetSelection(regions...)
	return true
}

// Clear removes the highlight set. It does nothing when none is active.
func (n *Navigator) Clear() bool {
	if !n.Active() {
		return false
	}
	n.surface.EraseRegions(RegionsKey)
	n.surface.EraseSetting(SettingActive)
	logger.DebugTagf("highlight", "Cleared highlights")
	return true
}
