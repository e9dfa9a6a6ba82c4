package warnings

import "strings"

// Tag starts every emitted warning line
const Tag = "[WARNING] "

// Warning is a single non-fatal notification
type Warning struct {
	Kind       Kind
	Identifier string
	Detail     string
}

// Message renders the warning without the leading tag
func (w Warning) Message() string {
	var b strings.Builder
	b.WriteString(w.Kind.Prefix())
	b.WriteString(w.Identifier)
	if w.Detail != "" {
		b.WriteString(": ")
		b.WriteString(w.Detail)
	}
	return b.String()
}

// String renders the full warning line
func (w Warning) String() string {
	return Tag + w.Message()
}

// NormalizeIdentifier converts path separators to forward slashes in the path
// part of id. Anything after the first ':' is a key, token or id and is kept.
func NormalizeIdentifier(id string) string {
	p, rest, found := strings.Cut(id, ":")
	p = strings.ReplaceAll(p, `\`, "/")
	if !found {
		return p
	}
	return p + ":" + rest
}
