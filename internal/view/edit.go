package view

import (
	"fmt"

	"github.com/bethropolis/focusnav/internal/event"
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/types"
)

// InsertText replaces the primary selection with text and leaves the caret
// after it.
func (v *View) InsertText(text string) error {
	primary := v.sel.Primary()
	if !primary.Empty() {
		if err := v.deleteRegion(primary); err != nil {
			return err
		}
	}
	edit, err := v.buf.Insert(primary.Begin, text)
	if err != nil {
		return fmt.Errorf("insert text: %w", err)
	}
	v.applyEdit(edit)
	v.placeCaret(edit.NewEnd, false)
	return nil
}

// Backspace deletes the selection, or the character left of the caret.
func (v *View) Backspace() error {
	primary := v.sel.Primary()
	if primary.Empty() {
		if primary.Begin == 0 {
			return nil
		}
		primary = types.Region{Begin: primary.Begin - 1, End: primary.Begin}
	}
	if err := v.deleteRegion(primary); err != nil {
		return err
	}
	v.placeCaret(primary.Begin, false)
	return nil
}

// DeleteForward deletes the selection, or the character right of the caret.
func (v *View) DeleteForward() error {
	primary := v.sel.Primary()
	if primary.Empty() {
		if primary.End >= v.buf.Size() {
			return nil
		}
		primary = types.Region{Begin: primary.Begin, End: primary.Begin + 1}
	}
	if err := v.deleteRegion(primary); err != nil {
		return err
	}
	v.placeCaret(primary.Begin, false)
	return nil
}

func (v *View) deleteRegion(r types.Region) error {
	edit, err := v.buf.Delete(r)
	if err != nil {
		return fmt.Errorf("delete text: %w", err)
	}
	v.applyEdit(edit)
	return nil
}

// applyEdit keeps stored region sets attached to their text. Regions whose
// text was deleted collapse to empty regions.
func (v *View) applyEdit(edit types.EditInfo) {
	if edit.OldVersion == edit.NewVersion {
		return
	}
	for key, set := range v.regions {
		for i, r := range set.Regions {
			begin := shiftOffset(r.Begin, edit, false)
			end := shiftOffset(r.End, edit, true)
			if end < begin {
				end = begin
			}
			set.Regions[i] = types.Region{Begin: begin, End: end}
		}
		v.regions[key] = set
	}
	v.dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit})
}

// shiftOffset maps an offset across an edit. Text inserted exactly at a
// region's end stays outside it.
func shiftOffset(p int, edit types.EditInfo, isEnd bool) int {
	switch {
	case p < edit.Start:
		return p
	case p > edit.OldEnd:
		return p + edit.Delta()
	case edit.Start == edit.OldEnd:
		if isEnd && p == edit.Start {
			return p
		}
		return p + edit.Delta()
	case isEnd:
		return edit.NewEnd
	default:
		return edit.Start
	}
}

// Save writes the buffer to its file.
func (v *View) Save() error {
	if err := v.buf.Save(""); err != nil {
		return err
	}
	v.dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: v.buf.FilePath()})
	return nil
}

// Reload reads the buffer's file again. Unsaved changes are lost.
func (v *View) Reload() error {
	path := v.buf.FilePath()
	if path == "" {
		return fmt.Errorf("reload: buffer has no file")
	}
	if err := v.buf.Load(path); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	v.placeCaret(v.caret, false)
	logger.Infof("Reloaded %s (version %d)", path, v.buf.Version())
	v.dispatch(event.TypeBufferReloaded, event.BufferReloadedData{FilePath: path, Version: v.buf.Version()})
	return nil
}
