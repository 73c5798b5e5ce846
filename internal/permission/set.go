package permission

import (
	"encoding/json"
	"strings"
)

// Set is a normalized permission set: canonical lower-cased identifiers plus
// a wildcard flag. Role records arrive in more than one shape (native string
// arrays, JSON-encoded arrays, comma-separated text, inconsistent casing), so
// all of them funnel through Parse once, right after fetch, instead of being
// re-interpreted at every call site.
type Set struct {
	wildcard bool
	ids      map[string]struct{}
}

func NewSet(ids ...string) Set {
	s := Set{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

// Empty returns a set that grants nothing.
func Empty() Set {
	return Set{ids: map[string]struct{}{}}
}

func (s *Set) add(id string) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return
	}
	if id == Wildcard {
		s.wildcard = true
		return
	}
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[id] = struct{}{}
}

// Parse normalizes a stored permission value of any supported encoding.
// Unsupported shapes normalize to the empty set.
func Parse(raw interface{}) Set {
	s := Empty()
	switch v := raw.(type) {
	case nil:
	case []string:
		for _, id := range v {
			s.add(id)
		}
	case []interface{}:
		for _, item := range v {
			if id, ok := item.(string); ok {
				s.add(id)
			}
		}
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return s
		}
		if strings.HasPrefix(trimmed, "[") {
			var ids []string
			if err := json.Unmarshal([]byte(trimmed), &ids); err == nil {
				for _, id := range ids {
					s.add(id)
				}
				return s
			}
		}
		for _, id := range strings.Split(trimmed, ",") {
			s.add(id)
		}
	}
	return s
}

// Has reports whether the set grants the given permission. The wildcard
// grants every identifier, including catalog entries added after the role
// was stored.
func (s Set) Has(id string) bool {
	if s.wildcard {
		return true
	}
	_, ok := s.ids[strings.ToLower(strings.TrimSpace(id))]
	return ok
}

func (s Set) HasAny(ids ...string) bool {
	for _, id := range ids {
		if s.Has(id) {
			return true
		}
	}
	return false
}

func (s Set) IsWildcard() bool {
	return s.wildcard
}

func (s Set) IsEmpty() bool {
	return !s.wildcard && len(s.ids) == 0
}

// Strings returns the canonical identifiers for serialization and logging.
// A wildcard set serializes to just the wildcard marker.
func (s Set) Strings() []string {
	if s.wildcard {
		return []string{Wildcard}
	}
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}
