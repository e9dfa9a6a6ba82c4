package merge

import (
	"encoding/json"
	"sort"
)

type fontDefinition struct {
	providers []json.RawMessage
	glyphs    map[string]struct{}
}

func newFontDefinition() *fontDefinition {
	return &fontDefinition{glyphs: make(map[string]struct{})}
}

// State holds the accumulators of a single build, keyed by destination path.
// It is created empty, mutated during ingestion and flushed once.
type State struct {
	lang   map[string]*table
	fonts  map[string]*fontDefinition
	sounds map[string]*table
}

// NewState creates an empty merge state
func NewState() *State {
	return &State{
		lang:   make(map[string]*table),
		fonts:  make(map[string]*fontDefinition),
		sounds: make(map[string]*table),
	}
}

// Tracked reports whether dest has an accumulator of any kind
func (s *State) Tracked(dest string) bool {
	if _, ok := s.lang[dest]; ok {
		return true
	}
	if _, ok := s.fonts[dest]; ok {
		return true
	}
	_, ok := s.sounds[dest]
	return ok
}

// Destinations returns every tracked destination in sorted order
func (s *State) Destinations() []string {
	dests := make([]string, 0, len(s.lang)+len(s.fonts)+len(s.sounds))
	for dest := range s.lang {
		dests = append(dests, dest)
	}
	for dest := range s.fonts {
		dests = append(dests, dest)
	}
	for dest := range s.sounds {
		dests = append(dests, dest)
	}
	sort.Strings(dests)
	return dests
}

// LangValue returns the raw JSON value stored for key in the lang table at dest
func (s *State) LangValue(dest, key string) (json.RawMessage, bool) {
	t, ok := s.lang[dest]
	if !ok {
		return nil, false
	}
	return t.get(key)
}

// LangKeys returns the keys of the lang table at dest in insertion order
func (s *State) LangKeys(dest string) []string {
	t, ok := s.lang[dest]
	if !ok {
		return nil
	}
	return append([]string(nil), t.keys...)
}

// SoundIDs returns the sound event ids at dest in insertion order
func (s *State) SoundIDs(dest string) []string {
	t, ok := s.sounds[dest]
	if !ok {
		return nil
	}
	return append([]string(nil), t.keys...)
}

// ProviderCount returns how many providers the font at dest has accumulated
func (s *State) ProviderCount(dest string) int {
	f, ok := s.fonts[dest]
	if !ok {
		return 0
	}
	return len(f.providers)
}
