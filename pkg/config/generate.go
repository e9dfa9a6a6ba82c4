package config

import (
	"strings"
)

// GenerateConfigContent returns the defaults with every setting commented out,
// suitable as a starting rpbuilder.toml
func GenerateConfigContent() string {
	return commentOutConfigValues(DefaultsContent())
}

// commentOutConfigValues comments out every line that is not blank or already
// a comment. Table headers are commented too so that an untouched template
// does not replace the default bundle list with empty entries.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
