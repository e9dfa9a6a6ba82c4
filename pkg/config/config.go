package config

import (
	gotoml "github.com/pelletier/go-toml/v2"
)

// Bundle roles
const (
	RoleBundle = "bundle"
	RoleFont   = "font"
)

// Config is the effective build configuration
type Config struct {
	Pack     PackConfig             `koanf:"pack" toml:"pack"`
	Staging  StagingConfig          `koanf:"staging" toml:"staging"`
	Install  InstallConfig          `koanf:"install" toml:"install"`
	Sources  SourcesConfig          `koanf:"sources" toml:"sources"`
	Merge    MergeConfig            `koanf:"merge" toml:"merge"`
	Warnings WarningsConfig         `koanf:"warnings" toml:"warnings"`
	Suppress map[string]interface{} `koanf:"suppress" toml:"suppress"`

	// LoadedFiles lists the configuration files that were merged, lowest
	// precedence first
	LoadedFiles []string `koanf:"-" toml:"-"`
}

type PackConfig struct {
	Name    string `koanf:"name" toml:"name"`
	Archive string `koanf:"archive" toml:"archive"`
}

type StagingConfig struct {
	Dir string `koanf:"dir" toml:"dir"`
}

type InstallConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
}

type SourcesConfig struct {
	MainFiles []string       `koanf:"main_files" toml:"main_files"`
	AssetsDir string         `koanf:"assets_dir" toml:"assets_dir"`
	Bundles   []BundleConfig `koanf:"bundles" toml:"bundles"`
}

// BundleConfig describes one third-party archive
type BundleConfig struct {
	Name    string `koanf:"name" toml:"name"`
	Archive string `koanf:"archive" toml:"archive"`
	// Include limits the entries taken. A trailing slash marks a prefix.
	Include []string `koanf:"include" toml:"include,omitempty"`
	// Rename maps entry names to destination paths; renamed entries are
	// always taken
	Rename map[string]string `koanf:"rename" toml:"rename,omitempty"`
	// SkipMainFiles drops entries named like one of sources.main_files
	SkipMainFiles bool   `koanf:"skip_main_files" toml:"skip_main_files"`
	Role          string `koanf:"role" toml:"role"`
}

// DisplayName returns the bundle name, or its archive when unnamed
func (b BundleConfig) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	return b.Archive
}

type MergeConfig struct {
	LangDir         string   `koanf:"lang_dir" toml:"lang_dir"`
	ModelExtensions []string `koanf:"model_extensions" toml:"model_extensions"`
}

type WarningsConfig struct {
	SuppressionsFile string `koanf:"suppressions_file" toml:"suppressions_file"`
}

// OrderedBundles returns the bundles in ingestion order: every RoleBundle
// archive in configuration order, then every RoleFont archive
func (c *Config) OrderedBundles() []BundleConfig {
	ordered := make([]BundleConfig, 0, len(c.Sources.Bundles))
	for _, b := range c.Sources.Bundles {
		if b.Role != RoleFont {
			ordered = append(ordered, b)
		}
	}
	for _, b := range c.Sources.Bundles {
		if b.Role == RoleFont {
			ordered = append(ordered, b)
		}
	}
	return ordered
}

// TOML renders the configuration as a TOML document
func (c *Config) TOML() ([]byte, error) {
	return gotoml.Marshal(c)
}
