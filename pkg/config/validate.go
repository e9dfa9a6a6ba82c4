package config

import (
	"path"
	"strings"

	"github.com/craftec/rpbuilder/pkg/errors"
)

func (c *Config) normalize() {
	for i := range c.Sources.Bundles {
		if c.Sources.Bundles[i].Role == "" {
			c.Sources.Bundles[i].Role = RoleBundle
		}
		c.Sources.Bundles[i].Role = strings.ToLower(c.Sources.Bundles[i].Role)
	}
	c.Merge.LangDir = strings.Trim(slash(c.Merge.LangDir), "/")
	c.Sources.AssetsDir = strings.TrimSuffix(slash(c.Sources.AssetsDir), "/")
	if c.Suppress == nil {
		c.Suppress = map[string]interface{}{}
	}
}

// Validate checks the settings a build cannot run without
func (c *Config) Validate() error {
	if c.Pack.Name == "" || strings.ContainsAny(c.Pack.Name, `/\`) || c.Pack.Name == "." || c.Pack.Name == ".." {
		return invalid("pack.name", "must be a plain folder name, got %q", c.Pack.Name)
	}
	if c.Pack.Archive == "" {
		return invalid("pack.archive", "must not be empty")
	}

	staging := path.Clean(slash(c.Staging.Dir))
	switch {
	case c.Staging.Dir == "":
		return invalid("staging.dir", "must not be empty")
	case staging == "." || staging == "/" || staging == ".." || strings.HasPrefix(staging, "../"):
		return invalid("staging.dir", "%q would remove files outside the staging area", c.Staging.Dir)
	case c.Sources.AssetsDir != "" && staging == path.Clean(c.Sources.AssetsDir):
		return invalid("staging.dir", "must differ from sources.assets_dir")
	}

	if c.Sources.AssetsDir == "" {
		return invalid("sources.assets_dir", "must not be empty")
	}
	if c.Merge.LangDir == "" {
		return invalid("merge.lang_dir", "must not be empty")
	}

	for i, b := range c.Sources.Bundles {
		if b.Archive == "" {
			return invalid("sources.bundles", "bundle %d has no archive", i)
		}
		if b.Role != RoleBundle && b.Role != RoleFont {
			return invalid("sources.bundles", "bundle %q has unknown role %q", b.DisplayName(), b.Role)
		}
	}
	return nil
}

func invalid(key, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrConfigValid, key+" "+format, args...).WithDetail("key", key)
}

func slash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
