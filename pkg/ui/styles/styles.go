// Package styles defines the visual styling of rpbuilder's console output.
//
// Styles are declared in the embedded styles.yaml with semantic names and
// adaptive colors, then built into lipgloss styles.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Width      int    `yaml:"width,omitempty"`
	MarginTop  int    `yaml:"marginTop,omitempty"`
	MarginLeft int    `yaml:"marginLeft,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry maps semantic names to lipgloss styles
type Registry map[string]lipgloss.Style

//go:embed styles.yaml
var embeddedStyles []byte

// Names every console style the ui package renders with
var Names = []string{
	"Step", "WarningTag", "WarningText", "Detail", "Success", "Error",
	"SummaryLabel", "SummaryValue", "FilePath",
}

// Default returns the embedded styles, or unstyled placeholders if the
// embedded definition cannot be parsed
func Default() Registry {
	r, err := Load(embeddedStyles)
	if err != nil {
		return Plain()
	}
	return r
}

// Plain returns a registry where every style renders text unchanged
func Plain() Registry {
	r := make(Registry, len(Names))
	for _, name := range Names {
		r[name] = lipgloss.NewStyle()
	}
	return r
}

// Load builds a registry from YAML data
func Load(data []byte) (Registry, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse styles data: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	r := Plain()
	for name, def := range config.Styles {
		r[name] = buildStyle(def, colors)
	}
	return r, nil
}

// Get returns the named style, or an empty style for unknown names
func (r Registry) Get(name string) lipgloss.Style {
	if s, ok := r[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}

	if color, ok := colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := colors[def.Background]; ok {
		style = style.Background(color)
	}

	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	if def.MarginTop > 0 {
		style = style.MarginTop(def.MarginTop)
	}
	if def.MarginLeft > 0 {
		style = style.MarginLeft(def.MarginLeft)
	}
	return style
}
