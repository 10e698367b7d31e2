package focus

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchesFile reports whether path is a Focus file according to globs.
// Patterns without a slash are matched against the base name only.
func MatchesFile(globs []string, path string) bool {
	if path == "" {
		return false
	}
	slashed := filepath.ToSlash(filepath.Clean(path))
	base := filepath.Base(slashed)
	for _, glob := range globs {
		target := slashed
		if !strings.Contains(glob, "/") {
			target = base
		}
		if ok, err := doublestar.Match(glob, target); err == nil && ok {
			return true
		}
		if strings.HasPrefix(glob, "**/") {
			if ok, err := doublestar.Match(strings.TrimPrefix(glob, "**/"), base); err == nil && ok {
				return true
			}
		}
	}
	return false
}
