package scope

import (
	"fmt"
	"sort"
	"time"

	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/types"
	gocache "github.com/patrickmn/go-cache"
)

const (
	spanExpiration      = 5 * time.Minute
	spanCleanupInterval = 10 * time.Minute
)

// Span is a region of text tagged with a full scope name.
type Span struct {
	Region types.Region
	Scope  string
}

// Tagger assigns scopes to text. Spans may nest; offsets are rune offsets.
type Tagger interface {
	Tag(text string) []Span
}

// Source is the part of a buffer the service needs.
type Source interface {
	ID() string
	Version() uint64
	Text() string
}

// Service answers selector queries for buffers. Tagging results are cached
// per (buffer id, version), so an edit never sees stale spans.
type Service struct {
	mapping *Mapping
	tagger  Tagger
	cache   *gocache.Cache
}

// NewService creates a service over a mapping and a tagger.
func NewService(mapping *Mapping, tagger Tagger) *Service {
	return &Service{
		mapping: mapping,
		tagger:  tagger,
		cache:   gocache.New(spanExpiration, spanCleanupInterval),
	}
}

// Mapping returns the service's mapping table.
func (s *Service) Mapping() *Mapping {
	return s.mapping
}

func cacheKey(src Source) string {
	return fmt.Sprintf("%s@%d", src.ID(), src.Version())
}

// Spans returns the tagged spans for src, sorted by Begin then by size descending.
func (s *Service) Spans(src Source) []Span {
	key := cacheKey(src)
	if cached, ok := s.cache.Get(key); ok {
		if spans, ok := cached.([]Span); ok {
			return spans
		}
	}

	spans := s.tagger.Tag(src.Text())
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Region.Begin != spans[j].Region.Begin {
			return spans[i].Region.Begin < spans[j].Region.Begin
		}
		return spans[i].Region.Size() > spans[j].Region.Size()
	})
	s.cache.Set(key, spans, gocache.DefaultExpiration)
	logger.DebugTagf("scope", "Tagged %s: %d spans", key, len(spans))
	return spans
}

// Invalidate drops the cached spans for the current version of src.
func (s *Service) Invalidate(src Source) {
	s.cache.Delete(cacheKey(src))
}

// Score returns the best score of key's selector against the scopes covering
// the character to the right of offset. Zero means no match.
func (s *Service) Score(src Source, offset int, key string) int {
	sel, ok := s.mapping.Selector(key)
	if !ok {
		logger.WarnTagf("scope", "Unknown scope key %q", key)
		return 0
	}
	best := 0
	for _, span := range s.Spans(src) {
		if span.Region.Begin > offset {
			break
		}
		if offset >= span.Region.End {
			continue
		}
		if score := sel.Score(span.Scope); score > best {
			best = score
		}
	}
	return best
}

// FindBySelector returns the regions of all spans matching key, in document order.
func (s *Service) FindBySelector(src Source, key string) []types.Region {
	sel, ok := s.mapping.Selector(key)
	if !ok {
		logger.WarnTagf("scope", "Unknown scope key %q", key)
		return nil
	}
	var out []types.Region
	for _, span := range s.Spans(src) {
		if sel.Score(span.Scope) > 0 {
			out = append(out, span.Region)
		}
	}
	return out
}

// ScopesAt lists the scope names covering offset, outermost first.
func (s *Service) ScopesAt(src Source, offset int) []string {
	var out []string
	for _, span := range s.Spans(src) {
		if span.Region.Begin > offset {
			break
		}
		if offset < span.Region.End {
			out = append(out, span.Scope)
		}
	}
	return out
}

// PlainText is a Tagger that assigns no scopes.
type PlainText struct{}

// Tag returns no spans.
func (PlainText) Tag(string) []Span { return nil }
