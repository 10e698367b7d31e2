package focus

import (
	"github.com/bethropolis/focusnav/internal/scope"
	"github.com/bethropolis/focusnav/internal/types"
)

// Scope names produced by the grammar.
const (
	ScopeSubroutine    = "meta.subroutine.fs"
	ScopeFunctionName  = "entity.name.function.fs"
	ScopeDebugFunction = "support.function.debug.fs"
	ScopeDocumentation = "comment.block.documentation.fs"
	ScopeBlockComment  = "comment.block.fs"
	ScopeLineComment   = "comment.line.fs"
	ScopeString        = "string.quoted.double.fs"
	ScopeLocal         = "variable.other.local.fs"
	ScopeFocusLocal    = "variable.other.local.focus"
)

// Grammar tags Focus source text. It implements scope.Tagger.
type Grammar struct{}

// Tag returns the scope spans of text.
func (Grammar) Tag(text string) []scope.Span {
	return Parse(text).Spans()
}

type header struct {
	line types.Region
	name types.Region
}

type lexer struct {
	runes    []rune
	pos      int
	headers  []header
	spans    []scope.Span
	comments []int // indexes into spans
}

func (l *lexer) peek(n int) rune {
	if l.pos+n < len(l.runes) {
		return l.runes[l.pos+n]
	}
	return 0
}

func (l *lexer) emit(begin, end int, name string) {
	l.spans = append(l.spans, scope.Span{Region: types.Region{Begin: begin, End: end}, Scope: name})
}

func (l *lexer) run() {
	next := 0
	for l.pos < len(l.runes) {
		for next < len(l.headers) && l.headers[next].line.Begin < l.pos {
			next++
		}
		if next < len(l.headers) && l.headers[next].line.Begin == l.pos {
			h := l.headers[next]
			l.emit(h.name.Begin, h.name.End, ScopeFunctionName)
			l.pos = h.line.End
			next++
			continue
		}

		r := l.runes[l.pos]
		switch {
		case r == '/' && l.peek(1) == '*':
			l.blockComment()
		case r == ';':
			l.lineComment()
		case r == '"':
			l.quoted()
		case r == '@':
			l.call()
		case r == '/' && isUpper(l.peek(1)):
			l.focusLocal()
		case r == '|' && isDigit(l.peek(1)):
			l.argument()
		case isWordRune(r):
			l.word()
		default:
			l.pos++
		}
	}
}

func (l *lexer) blockComment() {
	start := l.pos
	l.pos += 2
	for l.pos < len(l.runes) && !(l.runes[l.pos] == '*' && l.peek(1) == '/') {
		l.pos++
	}
	if l.pos < len(l.runes) {
		l.pos += 2
	}
	l.comments = append(l.comments, len(l.spans))
	l.emit(start, l.pos, ScopeBlockComment)
}

func (l *lexer) lineComment() {
	start := l.pos
	for l.pos < len(l.runes) && l.runes[l.pos] != '\n' {
		l.pos++
	}
	l.emit(start, l.pos, ScopeLineComment)
}

// quoted strings end at the closing quote or the end of the line.
func (l *lexer) quoted() {
	start := l.pos
	l.pos++
	for l.pos < len(l.runes) && l.runes[l.pos] != '\n' {
		if l.runes[l.pos] == '"' {
			l.pos++
			break
		}
		l.pos++
	}
	l.emit(start, l.pos, ScopeString)
}

func (l *lexer) call() {
	l.pos++
	start := l.pos
	if l.pos >= len(l.runes) || !isIdentStart(l.runes[l.pos]) {
		return
	}
	for l.pos < len(l.runes) && isIdentRune(l.runes[l.pos]) {
		l.pos++
	}
	if string(l.runes[start:l.pos]) == "Break" {
		l.emit(start, l.pos, ScopeDebugFunction)
		return
	}
	l.emit(start, l.pos, ScopeFunctionName)
}

func (l *lexer) focusLocal() {
	start := l.pos
	l.pos++
	for l.pos < len(l.runes) {
		r := l.runes[l.pos]
		if !isUpper(r) && !isDigit(r) && r != '_' && r != '.' {
			break
		}
		l.pos++
	}
	end := l.pos
	for end > start+2 && l.runes[end-1] == '.' {
		end--
	}
	l.emit(start, end, ScopeFocusLocal)
}

// argument handles |N references. Labels longer than two digits are not locals.
func (l *lexer) argument() {
	start := l.pos
	l.pos++
	for l.pos < len(l.runes) && isDigit(l.runes[l.pos]) {
		l.pos++
	}
	if l.pos-start-1 <= 2 {
		l.emit(start, l.pos, ScopeLocal)
	}
}

// word emits a local for a lone capital letter and skips every other word.
func (l *lexer) word() {
	start := l.pos
	for l.pos < len(l.runes) && isWordRune(l.runes[l.pos]) {
		l.pos++
	}
	if l.pos-start == 1 && isUpper(l.runes[start]) {
		l.emit(start, l.pos, ScopeLocal)
	}
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return isUpper(r) || (r >= 'a' && r <= 'z') || r == '_'
}

func isIdentRune(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '.'
}

func isWordRune(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r > 0x7f
}
