package content

import (
	"sort"
	"strings"
)

const searchLimit = 100

// Search returns the keys of every entity whose key contains the query,
// case-insensitive. Exact id matches sort ahead of substring hits and the
// result is capped so a short query cannot flood the UI. An optional type
// filter narrows the result; pass "" for all types. An empty query matches
// everything of the given type.
func (s *Store) Search(query, typ string) []string {
	q := strings.ToLower(query)

	type hit struct {
		key   string
		exact bool
	}

	s.mu.RLock()
	var hits []hit
	for _, key := range s.order {
		e := s.entities[key]
		if e == nil {
			continue
		}
		if typ != "" && e.Type != typ {
			continue
		}
		lower := strings.ToLower(key)
		if q != "" && !strings.Contains(lower, q) {
			continue
		}
		hits = append(hits, hit{key: key, exact: strings.ToLower(e.ID) == q})
	}
	s.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].exact != hits[j].exact {
			return hits[i].exact
		}
		return hits[i].key < hits[j].key
	})
	if len(hits) > searchLimit {
		hits = hits[:searchLimit]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.key
	}
	return out
}
