package source

import (
	"path"
	"strings"
)

// Filter wraps a source and narrows or renames its entries.
//
// Pattern conventions match the pack rule syntax:
//   - "dir/" matches every entry below dir
//   - a pattern containing *, ? or [ is a path.Match glob on the full path
//   - anything else matches one exact path
//
// Exclude is checked first. Entries named in Rename are always yielded under
// their new name. Otherwise an entry is yielded when Include is empty or one of
// its patterns matches.
type Filter struct {
	Source  Source
	Include []string
	Exclude []string
	Rename  map[string]string
}

// Name implements Source
func (f *Filter) Name() string { return f.Source.Name() }

// Walk implements Source
func (f *Filter) Walk(fn WalkFunc) error {
	return f.Source.Walk(func(relPath string, data []byte) error {
		if matchAny(f.Exclude, relPath) {
			return nil
		}
		if target, ok := f.Rename[relPath]; ok {
			return fn(cleanPath(target), data)
		}
		if len(f.Include) > 0 && !matchAny(f.Include, relPath) {
			return nil
		}
		return fn(relPath, data)
	})
}

func matchAny(patterns []string, relPath string) bool {
	for _, p := range patterns {
		if Match(p, relPath) {
			return true
		}
	}
	return false
}

// Match reports whether relPath matches a single filter pattern
func Match(pattern, relPath string) bool {
	pattern = strings.ReplaceAll(pattern, `\`, "/")
	if strings.HasSuffix(pattern, "/") {
		return strings.HasPrefix(relPath, pattern)
	}
	if strings.ContainsAny(pattern, "*?[") {
		matched, _ := path.Match(pattern, relPath)
		return matched
	}
	return pattern == relPath
}
