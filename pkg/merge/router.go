package merge

import (
	"path"
	"strings"
)

// Strategy is the merge behaviour selected for a destination path
type Strategy int

const (
	Passthrough Strategy = iota
	Excluded
	Lang
	Font
	Sound
)

func (s Strategy) String() string {
	switch s {
	case Excluded:
		return "excluded"
	case Lang:
		return "lang"
	case Font:
		return "font"
	case Sound:
		return "sound"
	default:
		return "passthrough"
	}
}

// Layout names the paths the router treats specially
type Layout struct {
	// LangDir holds lang tables, relative to the pack root
	LangDir string
	// ExcludedExtensions are file extensions never written to the pack
	ExcludedExtensions []string
}

// DefaultLayout returns the layout of a standard resource pack
func DefaultLayout() Layout {
	return Layout{
		LangDir:            "assets/minecraft/lang",
		ExcludedExtensions: []string{".bbmodel"},
	}
}

func (l Layout) excluded(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range l.ExcludedExtensions {
		if ext != "" && ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func (l Layout) isLang(p string) bool {
	dir := strings.Trim(l.LangDir, "/")
	return dir != "" && strings.HasPrefix(p, dir+"/") && isJSON(p)
}

func isFontPath(p string) bool {
	segments := strings.Split(p, "/")
	return len(segments) >= 4 && segments[0] == "assets" && segments[2] == "font" && isJSON(p)
}

func isSoundPath(p string) bool {
	segments := strings.Split(p, "/")
	return len(segments) == 3 && segments[0] == "assets" && segments[2] == "sounds.json"
}

func isJSON(p string) bool {
	return strings.EqualFold(path.Ext(p), ".json")
}

// classify returns the strategy for p assuming a first copy is already staged
func (l Layout) classify(p string) Strategy {
	switch {
	case l.excluded(p):
		return Excluded
	case l.isLang(p):
		return Lang
	case isFontPath(p):
		return Font
	case isSoundPath(p):
		return Sound
	default:
		return Passthrough
	}
}

// Mergeable reports whether content at p is ever merged rather than overwritten
func (l Layout) Mergeable(p string) bool {
	switch l.classify(p) {
	case Lang, Font, Sound:
		return true
	default:
		return false
	}
}
