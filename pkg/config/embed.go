package config

import (
	_ "embed"

	"github.com/knadh/koanf/parsers/toml"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultsContent returns the embedded default configuration
func DefaultsContent() string {
	return string(defaultConfig)
}

// bytesProvider feeds an in-memory TOML document to koanf
type bytesProvider struct{ data []byte }

func (b *bytesProvider) ReadBytes() ([]byte, error) { return b.data, nil }

// Read parses the document itself so the provider also works without a parser
func (b *bytesProvider) Read() (map[string]interface{}, error) {
	return toml.Parser().Unmarshal(b.data)
}
