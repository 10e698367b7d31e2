// Package completions holds the Focus keyword tree used by :complete and by
// command-mode suggestions.
package completions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/hbollon/go-edlib"
)

//go:embed completions.json
var defaultJSON []byte

// Minimum Jaro-Winkler similarity for a fuzzy match.
const fuzzyThreshold = 0.75

// Node is one level of the completion tree. Types, when present, runs
// parallel to Completions.
type Node struct {
	Children    map[string]*Node `json:"children,omitempty"`
	Completions []string         `json:"completions"`
	Types       []string         `json:"types,omitempty"`
	Required    bool             `json:"required,omitempty"`
}

// Item is a completion with its type tag.
type Item struct {
	Text string
	Type string
}

// Load parses a completion tree from JSON.
func Load(data []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse completions: %w", err)
	}
	if err := root.validate(""); err != nil {
		return nil, err
	}
	return &root, nil
}

// Default returns the embedded tree.
func Default() *Node {
	root, err := Load(defaultJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded completions: %v", err))
	}
	return root
}

func (n *Node) validate(path string) error {
	if len(n.Types) != 0 && len(n.Types) != len(n.Completions) {
		return fmt.Errorf("completions at %q: %d types for %d completions", path, len(n.Types), len(n.Completions))
	}
	for name, child := range n.Children {
		if child == nil {
			return fmt.Errorf("completions at %q: child %q is null", path, name)
		}
		if err := child.validate(path + "/" + name); err != nil {
			return err
		}
	}
	return nil
}

// Lookup walks the tree along path.
func (n *Node) Lookup(path ...string) (*Node, bool) {
	cur := n
	for _, name := range path {
		next, ok := cur.Children[name]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Items returns the completions of n paired with their types.
func (n *Node) Items() []Item {
	items := make([]Item, len(n.Completions))
	for i, text := range n.Completions {
		items[i] = Item{Text: text}
		if i < len(n.Types) {
			items[i].Type = n.Types[i]
		}
	}
	return items
}

// Complete returns the completions under path that start with prefix,
// case-insensitively and in alphabetical order. When nothing starts with
// prefix the closest completions by Jaro-Winkler similarity are returned
// instead, best first.
func (n *Node) Complete(prefix string, path ...string) []Item {
	node, ok := n.Lookup(path...)
	if !ok {
		return nil
	}
	items := node.Items()
	if prefix == "" {
		return items
	}

	lower := strings.ToLower(prefix)
	var matched []Item
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Text), lower) {
			matched = append(matched, item)
		}
	}
	if len(matched) > 0 {
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Text < matched[j].Text })
		return matched
	}

	type scored struct {
		item  Item
		score float32
	}
	var fuzzy []scored
	for _, item := range items {
		score := similarity(lower, strings.ToLower(item.Text))
		if score >= fuzzyThreshold {
			fuzzy = append(fuzzy, scored{item, score})
		}
	}
	sort.SliceStable(fuzzy, func(i, j int) bool { return fuzzy[i].score > fuzzy[j].score })
	out := make([]Item, len(fuzzy))
	for i, s := range fuzzy {
		out[i] = s.item
	}
	logger.DebugTagf("completions", "No prefix match for %q, %d fuzzy candidates", prefix, len(out))
	return out
}

// Suggest returns the candidate closest to input, if any is similar enough.
func Suggest(input string, candidates []string) (string, bool) {
	best, bestScore := "", float32(0)
	for _, c := range candidates {
		if score := similarity(input, c); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore >= fuzzyThreshold
}

func similarity(a, b string) float32 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	score, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		return 0
	}
	return score
}
