package types

import (
	"fmt"
	"sort"
)

// Region is a half-open interval [Begin, End) of rune offsets into a buffer.
// Begin <= End always holds for regions built with NewRegion.
type Region struct {
	Begin int
	End   int
}

// NewRegion builds a region from two offsets in either order.
func NewRegion(a, b int) Region {
	if a > b {
		a, b = b, a
	}
	return Region{Begin: a, End: b}
}

// Point returns the empty region at offset p.
func Point(p int) Region {
	return Region{Begin: p, End: p}
}

// Empty reports whether the region covers no characters.
func (r Region) Empty() bool {
	return r.Begin == r.End
}

// Size returns the number of runes covered.
func (r Region) Size() int {
	return r.End - r.Begin
}

// ContainsPoint reports whether p lies in the closed range [Begin, End].
// A caret sitting right after the last character still counts as inside.
func (r Region) ContainsPoint(p int) bool {
	return r.Begin <= p && p <= r.End
}

// Contains reports whether o lies entirely inside r.
func (r Region) Contains(o Region) bool {
	return o.Begin >= r.Begin && o.End <= r.End
}

// Covers is Contains with a half-open rule for points: a caret at r.End
// belongs to whatever follows r, not to r.
func (r Region) Covers(o Region) bool {
	if !r.Contains(o) {
		return false
	}
	return !o.Empty() || o.Begin < r.End
}

// Intersects reports whether two regions overlap.
//
// Non-empty regions use the half-open rule, so [0,3) and [3,5) do not
// intersect. An empty region intersects any region whose closed range holds
// its position, which lets a caret at a boundary count as touching.
func (r Region) Intersects(o Region) bool {
	if r.Empty() {
		return o.ContainsPoint(r.Begin)
	}
	if o.Empty() {
		return r.ContainsPoint(o.Begin)
	}
	return r.Begin < o.End && o.Begin < r.End
}

// Cover returns the smallest region containing both r and o.
func (r Region) Cover(o Region) Region {
	return Region{Begin: min(r.Begin, o.Begin), End: max(r.End, o.End)}
}

// Shift moves both ends by delta.
func (r Region) Shift(delta int) Region {
	return Region{Begin: r.Begin + delta, End: r.End + delta}
}

// Clamp limits the region to [0, size].
func (r Region) Clamp(size int) Region {
	clampOne := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > size {
			return size
		}
		return v
	}
	return Region{Begin: clampOne(r.Begin), End: clampOne(r.End)}
}

func (r Region) String() string {
	return fmt.Sprintf("(%d, %d)", r.Begin, r.End)
}

// Less orders regions by Begin, then End.
func (r Region) Less(o Region) bool {
	if r.Begin != o.Begin {
		return r.Begin < o.Begin
	}
	return r.End < o.End
}

// SortRegions sorts regions in place by position.
func SortRegions(regions []Region) {
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Less(regions[j])
	})
}

// Selection is an ordered set of regions. The first region is the primary one.
type Selection struct {
	regions []Region
}

// NewSelection builds a selection from regions, ordering and de-duplicating them.
func NewSelection(regions ...Region) Selection {
	s := Selection{}
	s.Set(regions...)
	return s
}

// Set replaces the selection contents.
func (s *Selection) Set(regions ...Region) {
	out := make([]Region, 0, len(regions))
	for _, r := range regions {
		out = append(out, NewRegion(r.Begin, r.End))
	}
	SortRegions(out)
	deduped := out[:0]
	for i, r := range out {
		if i > 0 && r == deduped[len(deduped)-1] {
			continue
		}
		deduped = append(deduped, r)
	}
	s.regions = deduped
}

// Clear removes all regions.
func (s *Selection) Clear() {
	s.regions = nil
}

// Add inserts a region, keeping order.
func (s *Selection) Add(r Region) {
	s.Set(append(s.Regions(), r)...)
}

// Len returns the number of regions.
func (s Selection) Len() int {
	return len(s.regions)
}

// Primary returns the first region, or the empty region at 0.
func (s Selection) Primary() Region {
	if len(s.regions) == 0 {
		return Region{}
	}
	return s.regions[0]
}

// Regions returns a copy of the selected regions.
func (s Selection) Regions() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// Equal reports whether both selections hold the same regions.
func (s Selection) Equal(o Selection) bool {
	if len(s.regions) != len(o.regions) {
		return false
	}
	for i := range s.regions {
		if s.regions[i] != o.regions[i] {
			return false
		}
	}
	return true
}
