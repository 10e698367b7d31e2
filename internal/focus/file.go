// Package focus models Focus source files: code blocks, their documentation
// comments and the locals they use.
package focus

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bethropolis/focusnav/internal/buffer"
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/scope"
	"github.com/bethropolis/focusnav/internal/types"
	gocache "github.com/patrickmn/go-cache"
)

// File is a parsed snapshot of one buffer version. It is never mutated.
type File struct {
	runes  []rune
	spans  []scope.Span
	blocks []*CodeBlock
}

// CodeBlock is one ":Code Name" subroutine.
type CodeBlock struct {
	Name                string
	Region              types.Region
	HeaderRegion        types.Region
	NameRegion          types.Region
	DocumentationRegion types.Region
	BodyRegion          types.Region
	HasDocumentation    bool

	file      *File
	varsOnce  sync.Once
	variables map[string]Variable
}

// Variable lists where a local is used in a block body. Documented locals
// that are never used have no regions.
type Variable struct {
	Name    string
	Regions []types.Region
}

// Parse tags text and splits it into code blocks.
func Parse(text string) *File {
	runes := []rune(text)
	f := &File{runes: runes}

	l := &lexer{runes: runes, headers: findHeaders(runes)}
	l.run()
	f.spans = l.spans

	for i, h := range l.headers {
		end := len(runes)
		if i+1 < len(l.headers) {
			end = l.headers[i+1].line.Begin
		}
		b := &CodeBlock{
			Name:         string(runes[h.name.Begin:h.name.End]),
			Region:       types.Region{Begin: h.line.Begin, End: end},
			HeaderRegion: h.line,
			NameRegion:   h.name,
			file:         f,
		}
		bodyStart := h.line.End
		if bodyStart < end && runes[bodyStart] == '\n' {
			bodyStart++
		}
		b.DocumentationRegion = types.Point(bodyStart)
		if idx, ok := docComment(runes, l, h.line.End, end); ok {
			doc := f.spans[idx].Region
			if doc.End > end {
				doc.End = end
			}
			f.spans[idx].Scope = ScopeDocumentation
			b.DocumentationRegion = doc
			b.HasDocumentation = true
			bodyStart = doc.End
		}
		b.BodyRegion = types.Region{Begin: bodyStart, End: end}
		f.blocks = append(f.blocks, b)
		f.spans = append(f.spans, scope.Span{Region: b.Region, Scope: ScopeSubroutine})
	}
	return f
}

func findHeaders(runes []rune) []header {
	re, err := buffer.Compile(headerPattern)
	if err != nil {
		logger.Errorf("focus: header pattern: %v", err)
		return nil
	}
	var out []header
	m, err := re.FindRunesMatch(runes)
	for m != nil && err == nil {
		name := m.GroupByNumber(1)
		out = append(out, header{
			line: types.Region{Begin: m.Index, End: m.Index + m.Length},
			name: types.Region{Begin: name.Index, End: name.Index + name.Length},
		})
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		logger.Warnf("focus: header scan stopped: %v", err)
	}
	return out
}

// docComment finds the block comment that follows a header with only
// whitespace in between.
func docComment(runes []rune, l *lexer, from, end int) (int, bool) {
	for _, idx := range l.comments {
		begin := l.spans[idx].Region.Begin
		if begin < from || begin >= end {
			continue
		}
		for _, r := range runes[from:begin] {
			if r != ' ' && r != '\t' && r != '\n' {
				return 0, false
			}
		}
		return idx, true
	}
	return 0, false
}

// Spans returns the scope spans of the file.
func (f *File) Spans() []scope.Span {
	out := make([]scope.Span, len(f.spans))
	copy(out, f.spans)
	return out
}

// Blocks returns the code blocks in document order.
func (f *File) Blocks() []*CodeBlock {
	return f.blocks
}

// Block finds a code block by name.
func (f *File) Block(name string) (*CodeBlock, bool) {
	for _, b := range f.blocks {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// CodeBlockAt returns the block holding offset. The end of the file belongs
// to the last block.
func (f *File) CodeBlockAt(offset int) (*CodeBlock, bool) {
	for _, b := range f.blocks {
		if offset >= b.Region.Begin && (offset < b.Region.End || (offset == b.Region.End && offset == len(f.runes))) {
			return b, true
		}
	}
	return nil, false
}

// Text returns the text of r.
func (f *File) Text(r types.Region) string {
	r = r.Clamp(len(f.runes))
	return string(f.runes[r.Begin:r.End])
}

// Variables indexes the locals of the block: every local used in the body,
// plus every key its documentation declares.
func (b *CodeBlock) Variables() map[string]Variable {
	b.varsOnce.Do(func() {
		b.variables = make(map[string]Variable)
		for _, span := range b.file.spans {
			if span.Scope != ScopeLocal || !b.BodyRegion.Contains(span.Region) {
				continue
			}
			name := b.file.Text(span.Region)
			v := b.variables[name]
			v.Name = name
			v.Regions = append(v.Regions, span.Region)
			b.variables[name] = v
		}
		for _, e := range b.Documentation().Entries() {
			if _, ok := b.variables[e.Key]; !ok {
				b.variables[e.Key] = Variable{Name: e.Key}
			}
		}
	})
	return b.variables
}

// VariableNames returns the indexed names, sorted.
func (b *CodeBlock) VariableNames() []string {
	vars := b.Variables()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Documentation returns the documentation view of the block.
func (b *CodeBlock) Documentation() *Documentation {
	return &Documentation{block: b}
}

func (b *CodeBlock) String() string {
	return fmt.Sprintf("%s%s", b.Name, b.Region)
}

const (
	fileExpiration      = 5 * time.Minute
	fileCleanupInterval = 10 * time.Minute
)

// Model hands out parsed files, one per buffer version.
type Model struct {
	cache *gocache.Cache
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{cache: gocache.New(fileExpiration, fileCleanupInterval)}
}

// File returns the parsed snapshot of src's current version.
func (m *Model) File(src scope.Source) *File {
	key := fmt.Sprintf("%s@%d", src.ID(), src.Version())
	if cached, ok := m.cache.Get(key); ok {
		if f, ok := cached.(*File); ok {
			return f
		}
	}
	f := Parse(src.Text())
	m.cache.Set(key, f, gocache.DefaultExpiration)
	logger.DebugTagf("focus", "Parsed %s: %d code blocks", key, len(f.blocks))
	return f
}

// CodeBlockAt returns the code block holding offset in src.
func (m *Model) CodeBlockAt(src scope.Source, offset int) (*CodeBlock, bool) {
	return m.File(src).CodeBlockAt(offset)
}
