package focus

import (
	"strings"

	"github.com/bethropolis/focusnav/internal/buffer"
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/types"
)

// Section names used by Focus documentation comments.
const (
	SectionLocals    = "Local Variables"
	SectionArguments = "Arguments"
)

// Documentation reads the sections of a block's documentation comment.
type Documentation struct {
	block *CodeBlock
}

// Entry is one documented local or argument.
type Entry struct {
	Key     string
	Section string
	Region  types.Region
	Text    string
}

type section struct {
	name   string
	header types.Region
	body   types.Region
}

// inner is the comment text without its delimiters.
func (d *Documentation) inner() types.Region {
	r := d.block.DocumentationRegion
	if !d.block.HasDocumentation {
		return r
	}
	text := d.block.file.Text(r)
	begin, end := r.Begin, r.End
	if strings.HasPrefix(text, "/*") {
		begin += 2
	}
	if strings.HasSuffix(text, "*/") && end-2 >= begin {
		end -= 2
	}
	return types.Region{Begin: begin, End: end}
}

func (d *Documentation) sections() []section {
	if !d.block.HasDocumentation {
		return nil
	}
	inner := d.inner()
	re, err := buffer.Compile(sectionHeaderPattern)
	if err != nil {
		logger.Errorf("focus: section pattern: %v", err)
		return nil
	}
	runes := d.block.file.runes[inner.Begin:inner.End]

	var out []section
	m, err := re.FindRunesMatch(runes)
	for m != nil && err == nil {
		name := m.GroupByNumber(1)
		hdr := types.Region{Begin: inner.Begin + m.Index, End: inner.Begin + m.Index + m.Length}
		bodyStart := hdr.End
		if bodyStart < inner.End && d.block.file.runes[bodyStart] == '\n' {
			bodyStart++
		}
		if n := len(out); n > 0 {
			out[n-1].body.End = hdr.Begin
		}
		out = append(out, section{
			name:   name.String(),
			header: hdr,
			body:   types.Region{Begin: bodyStart, End: inner.End},
		})
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		logger.Warnf("focus: section scan in %s stopped: %v", d.block.Name, err)
	}
	return out
}

func sameSection(a, b string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(a), " "), strings.Join(strings.Fields(b), " "))
}

// SectionRegion returns the body of the named section, from the line after
// its header up to the next section or the end of the comment.
func (d *Documentation) SectionRegion(name string) (types.Region, bool) {
	for _, s := range d.sections() {
		if sameSection(s.name, name) {
			return s.body, true
		}
	}
	return types.Region{}, false
}

// SectionNames lists the sections in order of appearance.
func (d *Documentation) SectionNames() []string {
	var names []string
	for _, s := range d.sections() {
		names = append(names, s.name)
	}
	return names
}

// Summary is the free text before the first section.
func (d *Documentation) Summary() string {
	inner := d.inner()
	if secs := d.sections(); len(secs) > 0 {
		inner.End = secs[0].header.Begin
	}
	return strings.TrimSpace(d.block.file.Text(inner))
}

// Entries lists the documented locals and arguments. Without any of the two
// sections the whole comment is scanned as arguments.
func (d *Documentation) Entries() []Entry {
	if !d.block.HasDocumentation {
		return nil
	}
	type scan struct {
		section string
		pattern string
		region  types.Region
	}
	var scans []scan
	if r, ok := d.SectionRegion(SectionArguments); ok {
		scans = append(scans, scan{SectionArguments, ArgumentsEntryPattern, r})
	}
	if r, ok := d.SectionRegion(SectionLocals); ok {
		scans = append(scans, scan{SectionLocals, LocalsEntryPattern, r})
	}
	if len(scans) == 0 {
		scans = append(scans, scan{"", ArgumentsEntryPattern, d.inner()})
	}

	var out []Entry
	for _, s := range scans {
		matches, err := matchIn(d.block.file.runes, s.pattern, s.region)
		if err != nil {
			logger.Warnf("focus: %s entries of %s: %v", s.section, d.block.Name, err)
			continue
		}
		for _, m := range matches {
			text := d.block.file.Text(m)
			key, ok := ExtractKey(text)
			if !ok {
				continue
			}
			out = append(out, Entry{Key: key, Section: s.section, Region: m, Text: strings.TrimSpace(text)})
		}
	}
	return out
}

// Entry returns the first entry documenting key. Arguments come first.
func (d *Documentation) Entry(key string) (Entry, bool) {
	for _, e := range d.Entries() {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}
