package merge

import (
	"fmt"
	"strings"
)

// NullGlyph is the padding token. It may appear any number of times in any
// number of providers without counting as a claim.
const NullGlyph = `\u0000`

const escapeLen = 6

// Tokenize splits one line of a provider's "chars" list into glyph tokens.
// The line is in its escape-preserved form: a backslash starts a six
// character `\uXXXX` token, every other character is a token by itself.
func Tokenize(line string) ([]string, error) {
	runes := []rune(line)
	tokens := make([]string, 0, len(runes))

	for i := 0; i < len(runes); {
		if runes[i] != '\\' {
			tokens = append(tokens, string(runes[i]))
			i++
			continue
		}
		if i+escapeLen > len(runes) {
			return nil, fmt.Errorf("truncated escape %q at position %d", string(runes[i:]), i)
		}
		token := string(runes[i : i+escapeLen])
		if !isUnicodeEscape(token) {
			return nil, fmt.Errorf("malformed escape %q at position %d", token, i)
		}
		tokens = append(tokens, token)
		i += escapeLen
	}
	return tokens, nil
}

func isUnicodeEscape(token string) bool {
	if len(token) != escapeLen || !strings.HasPrefix(token, `\u`) {
		return false
	}
	for _, c := range token[2:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
