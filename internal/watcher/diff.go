package watcher

import (
	"fmt"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Change counts the runes a reload inserted and deleted.
type Change struct {
	Inserted int
	Deleted  int
}

// Empty reports whether nothing changed.
func (c Change) Empty() bool { return c.Inserted == 0 && c.Deleted == 0 }

func (c Change) String() string {
	if c.Empty() {
		return "no changes"
	}
	return fmt.Sprintf("+%d -%d chars", c.Inserted, c.Deleted)
}

// Summarize diffs the text before and after a reload.
func Summarize(oldText, newText string) Change {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var c Change
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			c.Inserted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			c.Deleted += utf8.RuneCountInString(d.Text)
		}
	}
	return c
}
