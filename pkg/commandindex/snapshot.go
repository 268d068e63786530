package commandindex

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

// DefaultSuggestionLimit caps PrefixSearch results when the caller does not
// supply its own limit.
const DefaultSuggestionLimit = 50

// Snapshot is an immutable point-in-time set of recognized command names.
// Once built it is never mutated; a refresh publishes a whole new Snapshot,
// so readers holding one never observe a partially built set.
type Snapshot struct {
	names    map[string]struct{}
	sorted   []string
	degraded []string
	builtAt  time.Time
}

func newSnapshot(names []string, degraded []string) *Snapshot {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name != "" {
			set[name] = struct{}{}
		}
	}

	sorted := lo.Keys(set)
	sort.Strings(sorted)

	return &Snapshot{
		names:    set,
		sorted:   sorted,
		degraded: degraded,
		builtAt:  time.Now(),
	}
}

// Contains reports whether name is a recognized command. The test is exact
// and case-sensitive.
func (s *Snapshot) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of distinct names in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.sorted)
}

// PrefixSearch returns every member starting with prefix, sorted
// lexicographically and deduplicated, capped at limit entries. A limit of
// zero or less falls back to DefaultSuggestionLimit.
func (s *Snapshot) PrefixSearch(prefix string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	out := []string{}
	for i := sort.SearchStrings(s.sorted, prefix); i < len(s.sorted) && len(out) < limit; i++ {
		if !strings.HasPrefix(s.sorted[i], prefix) {
			break
		}
		out = append(out, s.sorted[i])
	}
	return out
}

// Degraded lists the sources that were skipped while building this
// snapshot, one human-readable reason per source. Empty means every source
// contributed.
func (s *Snapshot) Degraded() []string {
	return append([]string(nil), s.degraded...)
}

// BuiltAt reports when the snapshot was assembled.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}
