package warnings

import (
	"fmt"
	"sort"
)

// Suppressions is an immutable table of silenced (kind, identifier) pairs
type Suppressions struct {
	byKind map[Kind]map[string]struct{}
}

// NewSuppressions builds a table from already-typed entries.
// Identifiers are normalized on the way in.
func NewSuppressions(entries map[Kind][]string) Suppressions {
	s := Suppressions{byKind: make(map[Kind]map[string]struct{}, len(entries))}
	for kind, ids := range entries {
		set := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			set[NormalizeIdentifier(id)] = struct{}{}
		}
		s.byKind[kind] = set
	}
	return s
}

// ParseSuppressions converts a raw {kind_name: [identifier, ...]} mapping, as
// produced by a config file, into a table. Unknown kind names and malformed
// entries are skipped and returned as invalid-input warnings.
func ParseSuppressions(raw map[string]interface{}) (Suppressions, []Warning) {
	entries := make(map[Kind][]string)
	var problems []Warning

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		kind, err := ParseKind(name)
		if err != nil {
			problems = append(problems, Warning{
				Kind:       InvalidInput,
				Identifier: "suppression kind " + name,
				Detail:     "unknown warning kind",
			})
			continue
		}

		list, ok := toList(raw[name])
		if !ok {
			problems = append(problems, Warning{
				Kind:       InvalidInput,
				Identifier: "suppression entry " + name,
				Detail:     fmt.Sprintf("expected a list of identifiers, got %T", raw[name]),
			})
			continue
		}

		for i, item := range list {
			id, ok := item.(string)
			if !ok || id == "" {
				problems = append(problems, Warning{
					Kind:       InvalidInput,
					Identifier: fmt.Sprintf("suppression entry %s[%d]", name, i),
					Detail:     "identifier must be a non-empty string",
				})
				continue
			}
			entries[kind] = append(entries[kind], id)
		}
	}

	return NewSuppressions(entries), problems
}

func toList(v interface{}) ([]interface{}, bool) {
	switch list := v.(type) {
	case []interface{}:
		return list, true
	case []string:
		out := make([]interface{}, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// Suppressed reports whether the (kind, identifier) pair is silenced
func (s Suppressions) Suppressed(kind Kind, identifier string) bool {
	set, ok := s.byKind[kind]
	if !ok {
		return false
	}
	_, ok = set[NormalizeIdentifier(identifier)]
	return ok
}

// Len returns the number of suppressed identifiers across all kinds
func (s Suppressions) Len() int {
	n := 0
	for _, set := range s.byKind {
		n += len(set)
	}
	return n
}

// Merge returns a new table holding the union of s and other
func (s Suppressions) Merge(other Suppressions) Suppressions {
	entries := make(map[Kind][]string)
	for _, src := range []Suppressions{s, other} {
		for kind, set := range src.byKind {
			for id := range set {
				entries[kind] = append(entries[kind], id)
			}
		}
	}
	return NewSuppressions(entries)
}
