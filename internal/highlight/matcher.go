// Package highlight finds every occurrence of the entity under the caret and
// lets the user step through or select the highlighted occurrences.
package highlight

import (
	"fmt"

	"github.com/bethropolis/focusnav/internal/focus"
	"github.com/bethropolis/focusnav/internal/types"
)

// Scope keys consulted by the matchers.
const (
	scopeFocusLocal     = "focus_local"
	scopeSubroutineName = "subroutine_name"
	scopeDebugFunction  = "debug_function"
	scopeSubroutine     = "subroutine"
	scopeFSLocal        = "fs_local"
	scopeComment        = "comment"
)

// Kind selects a matcher variant.
type Kind int

const (
	KindLocal Kind = iota
	KindSubroutine
	KindBreak
	KindFSLocal
)

var kindNames = map[Kind]string{
	KindLocal:      "local",
	KindSubroutine: "subroutine",
	KindBreak:      "break",
	KindFSLocal:    "fs_local",
}

// DetectOrder is the order Detect tries the variants in.
var DetectOrder = []Kind{KindFSLocal, KindLocal, KindSubroutine, KindBreak}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a command prefix such as "fs_local" back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Command identifies a user-facing highlight action.
type Command int

const (
	CommandHighlight Command = iota
	CommandMoveForward
	CommandMoveBackward
	CommandClear
	CommandSelectAll
)

// Commands lists every command in menu order.
var Commands = []Command{CommandHighlight, CommandMoveForward, CommandMoveBackward, CommandClear, CommandSelectAll}

var commandNames = map[Command]string{
	CommandHighlight:    "highlight",
	CommandMoveForward:  "move_forward",
	CommandMoveBackward: "move_backward",
	CommandClear:        "clear",
	CommandSelectAll:    "select_all",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Host is the read side of the editor a matcher inspects.
type Host interface {
	Substr(r types.Region) string
	ScoreSelector(offset int, key string) int
	FindBySelector(key string) []types.Region
	FindFirst(pattern string, from int) (types.Region, bool, error)
	FindAllIn(pattern string, within types.Region) ([]types.Region, error)
	CodeBlockAt(offset int) (*focus.CodeBlock, bool)
}

// EntityMatcher recognises an entity at the selection and enumerates its
// occurrences.
type EntityMatcher interface {
	// Check looks for an entity at the selection. It recomputes on every call.
	Check() bool
	// OccurrenceRegions returns every occurrence of the matched entity,
	// or nothing when Check did not match.
	OccurrenceRegions() ([]types.Region, error)
	// Describe labels a command for menus and the status bar.
	Describe(cmd Command) string

	Kind() Kind
	SearchKey() string
	SearchRegion() types.Region
}

const unsupportedLabel = "Unsupported command"

type labels map[Command]string

var genericLabels = labels{
	CommandHighlight:    "Highlight entity",
	CommandMoveForward:  "Move to next highlight",
	CommandMoveBackward: "Move to previous highlight",
	CommandClear:        "Clear highlights",
	CommandSelectAll:    "Select all highlights",
}

// GenericLabel is the label of cmd when no entity is matched.
func GenericLabel(cmd Command) string {
	return describe(nil, cmd)
}

// describe looks cmd up in table, then in the generic labels.
func describe(table labels, cmd Command) string {
	if label, ok := table[cmd]; ok {
		return label
	}
	if label, ok := genericLabels[cmd]; ok {
		return label
	}
	return unsupportedLabel
}

// baseMatcher holds what every variant shares. On its own it never matches.
type baseMatcher struct {
	kind     Kind
	host     Host
	sel      types.Region
	scopeKey string

	matched bool
	key     string
	region  types.Region
}

func newBase(kind Kind, host Host, sel types.Selection, scopeKey string) baseMatcher {
	return baseMatcher{kind: kind, host: host, sel: sel.Primary(), scopeKey: scopeKey}
}

func (b *baseMatcher) Check() bool {
	return b.matched
}

func (b *baseMatcher) OccurrenceRegions() ([]types.Region, error) {
	return nil, nil
}

func (b *baseMatcher) Describe(cmd Command) string {
	return describe(nil, cmd)
}

func (b *baseMatcher) Kind() Kind                 { return b.kind }
func (b *baseMatcher) SearchKey() string          { return b.key }
func (b *baseMatcher) SearchRegion() types.Region { return b.region }

func (b *baseMatcher) reset() {
	b.matched = false
	b.key = ""
	b.region = types.Region{}
}

func (b *baseMatcher) match(key string, region types.Region) bool {
	b.matched = true
	b.key = key
	b.region = region
	return true
}

func (b *baseMatcher) caret() int {
	return b.sel.Begin
}
