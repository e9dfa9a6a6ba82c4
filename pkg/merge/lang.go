package merge

import (
	"encoding/json"
	"fmt"
	"path"
	"regexp"

	"github.com/craftec/rpbuilder/pkg/warnings"
)

// LangsKey is the reserved key listing the locales a shared lang file fans out to
const LangsKey = "langs"

var localePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// ValidLocale reports whether id can name a lang file
func ValidLocale(id string) bool {
	return localePattern.MatchString(id)
}

func (m *Merger) mergeLang(src string, data []byte) error {
	members, err := decodeObject(data)
	if err != nil {
		m.report(warnings.InvalidInput, src, describeJSONError(err))
		return nil
	}

	var locales []string
	hasLangs := false
	entries := make([]member, 0, len(members))
	for _, mem := range members {
		if mem.Key == LangsKey {
			hasLangs = true
			if err := json.Unmarshal(mem.Value, &locales); err != nil {
				m.report(warnings.InvalidInput, src, "langs must be a list of locale identifiers")
				return nil
			}
			continue
		}
		if !isJSONString(mem.Value) {
			m.report(warnings.InvalidInput, src, fmt.Sprintf("value of %q is not a string", mem.Key))
			return nil
		}
		entries = append(entries, mem)
	}

	if !hasLangs {
		return m.mergeLangEntries(src, entries)
	}

	if len(locales) == 0 {
		m.report(warnings.InvalidInput, src, "langs lists no locales")
		return nil
	}
	seen := make(map[string]bool, len(locales))
	for _, locale := range locales {
		if !ValidLocale(locale) {
			m.report(warnings.InvalidInput, src, fmt.Sprintf("invalid locale %q", locale))
			continue
		}
		if seen[locale] {
			m.report(warnings.InvalidInput, src, fmt.Sprintf("locale %q is listed more than once", locale))
			continue
		}
		seen[locale] = true
		dest := cleanDest(path.Join(m.layout.LangDir, locale+".json"))
		if err := m.mergeLangEntries(dest, entries); err != nil {
			return err
		}
	}
	return nil
}

func (m *Merger) mergeLangEntries(dest string, entries []member) error {
	t, err := m.langTable(dest)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if t.set(e.Key, e.Value) {
			m.report(warnings.DuplicateLangKey, dest+":"+e.Key)
		}
	}
	return nil
}

// langTable returns the accumulator for dest, seeding it from staged content
// the first time dest is seen
func (m *Merger) langTable(dest string) (*table, error) {
	if t, ok := m.state.lang[dest]; ok {
		return t, nil
	}

	t := newTable()
	m.state.lang[dest] = t

	existing, err := m.readStaged(dest)
	if err != nil || existing == nil {
		return t, err
	}
	members, err := decodeObject(existing)
	if err != nil {
		m.report(warnings.InvalidInput, dest, "staged content: "+describeJSONError(err))
		return t, nil
	}
	for _, mem := range members {
		t.set(mem.Key, mem.Value)
	}
	return t, nil
}

func isJSONString(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b == '"'
	}
	return false
}
