package types

// EditInfo describes a single buffer mutation in rune offsets.
type EditInfo struct {
	Start      int    // Offset where the edit begins
	OldEnd     int    // End of the replaced text before the edit
	NewEnd     int    // End of the inserted text after the edit
	OldVersion uint64 // Buffer version before the edit
	NewVersion uint64 // Buffer version after the edit
}

// Delta returns how far text after the edit has shifted.
func (e EditInfo) Delta() int {
	return e.NewEnd - e.OldEnd
}
