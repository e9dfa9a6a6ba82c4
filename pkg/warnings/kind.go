package warnings

import (
	"fmt"
	"strings"
)

// Kind is the closed set of warning categories
type Kind int

const (
	InvalidInput Kind = iota
	MissingSource
	DeleteFailure
	DuplicateLangKey
	DuplicateGlyph
	DuplicateSoundID
	DuplicateFile
)

// Kinds lists every kind in declaration order
var Kinds = []Kind{
	InvalidInput,
	MissingSource,
	DeleteFailure,
	DuplicateLangKey,
	DuplicateGlyph,
	DuplicateSoundID,
	DuplicateFile,
}

type kindInfo struct {
	name   string
	alias  string
	prefix string
}

var kindTable = map[Kind]kindInfo{
	InvalidInput:     {"invalid-input", "INVALID", "Invalid "},
	MissingSource:    {"missing-source", "MISSING", "Missing "},
	DeleteFailure:    {"delete-failure", "DELETE", "Failed to delete "},
	DuplicateLangKey: {"duplicate-lang-key", "LANG", "Duplicate lang key "},
	DuplicateGlyph:   {"duplicate-glyph", "CHAR", "Duplicate char "},
	DuplicateSoundID: {"duplicate-sound-id", "SOUND", "Duplicate sound "},
	DuplicateFile:    {"duplicate-file", "FILE", "Duplicate file "},
}

// String returns the configuration name of the kind
func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Prefix returns the human-readable message prefix for the kind
func (k Kind) Prefix() string {
	if info, ok := kindTable[k]; ok {
		return info.prefix
	}
	return "Unknown "
}

// Valid reports whether k is one of the declared kinds
func (k Kind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}

// ParseKind resolves a configuration name such as "duplicate-lang-key" or a
// legacy alias such as "LANG". Matching ignores case and treats '_' as '-'.
func ParseKind(s string) (Kind, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, k := range Kinds {
		info := kindTable[k]
		if norm == info.name || norm == strings.ToLower(info.alias) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown warning kind %q", s)
}
