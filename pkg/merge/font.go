package merge

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/craftec/rpbuilder/pkg/warnings"
)

type fontPayload struct {
	Providers []json.RawMessage `json:"providers"`
}

type providerChars struct {
	Chars []string `json:"chars"`
}

// parsedFont is a font payload read in escape-preserved form together with
// the glyph tokens of each provider
type parsedFont struct {
	providers []json.RawMessage
	tokens    [][]string
}

// preserveEscapes doubles every backslash so that \uXXXX sequences survive
// JSON decoding as six literal characters
func preserveEscapes(data []byte) []byte {
	return bytes.ReplaceAll(bytes.TrimPrefix(data, utf8BOM), []byte(`\`), []byte(`\\`))
}

// restoreEscapes undoes preserveEscapes on serialized output
func restoreEscapes(data []byte) []byte {
	return bytes.ReplaceAll(data, []byte(`\\`), []byte(`\`))
}

func parseFont(data []byte) (*parsedFont, error) {
	var payload struct {
		Providers *[]json.RawMessage `json:"providers"`
	}
	if err := json.Unmarshal(preserveEscapes(data), &payload); err != nil {
		return nil, fmt.Errorf("%s", describeJSONError(err))
	}
	if payload.Providers == nil {
		return nil, fmt.Errorf("missing providers list")
	}

	font := &parsedFont{providers: *payload.Providers}
	for i, raw := range font.providers {
		var p providerChars
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("provider %d: %s", i, describeJSONError(err))
		}
		var tokens []string
		for _, line := range p.Chars {
			lineTokens, err := Tokenize(line)
			if err != nil {
				return nil, fmt.Errorf("provider %d chars line %q: %v", i, line, err)
			}
			tokens = append(tokens, lineTokens...)
		}
		font.tokens = append(font.tokens, tokens)
	}
	return font, nil
}

// claim adds the glyph tokens of one provider to def, reporting tokens that
// were already claimed
func (m *Merger) claim(dest string, def *fontDefinition, tokens []string) {
	for _, token := range tokens {
		if token == NullGlyph {
			continue
		}
		if _, taken := def.glyphs[token]; taken {
			m.report(warnings.DuplicateGlyph, dest+":"+token)
			continue
		}
		def.glyphs[token] = struct{}{}
	}
}

func (m *Merger) mergeFont(dest string, data []byte) error {
	def, err := m.fontDefinition(dest)
	if err != nil || def == nil {
		return err
	}

	incoming, err := parseFont(data)
	if err != nil {
		m.report(warnings.InvalidInput, dest, err.Error())
		return nil
	}
	for i, provider := range incoming.providers {
		m.claim(dest, def, incoming.tokens[i])
		def.providers = append(def.providers, provider)
	}
	return nil
}

// fontDefinition returns the accumulator for dest, seeding it from the staged
// first copy. A nil definition means the staged copy is unusable and the
// incoming file must be skipped.
func (m *Merger) fontDefinition(dest string) (*fontDefinition, error) {
	if def, ok := m.state.fonts[dest]; ok {
		return def, nil
	}

	existing, err := m.readStaged(dest)
	if err != nil {
		return nil, err
	}

	def := newFontDefinition()
	if existing != nil {
		seed, err := parseFont(existing)
		if err != nil {
			m.report(warnings.InvalidInput, dest, "staged content: "+err.Error())
			return nil, nil
		}
		for i, provider := range seed.providers {
			m.claim(dest, def, seed.tokens[i])
			def.providers = append(def.providers, provider)
		}
	}
	m.state.fonts[dest] = def
	return def, nil
}

func (def *fontDefinition) render() ([]byte, error) {
	providers := def.providers
	if providers == nil {
		providers = []json.RawMessage{}
	}
	out, err := marshalPretty(fontPayload{Providers: providers})
	if err != nil {
		return nil, err
	}
	return restoreEscapes(out), nil
}
