package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/craftec/rpbuilder/pkg/paths"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config layer at empty temp directories
func isolate(t *testing.T) paths.Paths {
	t.Helper()
	home := t.TempDir()
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))

	p, err := paths.New(t.TempDir())
	require.NoError(t, err)
	return p
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadConfiguration_Defaults(t *testing.T) {
	p := isolate(t)

	cfg, err := LoadConfiguration(p, "")
	require.NoError(t, err)

	assert.Equal(t, "CrystalPledge", cfg.Pack.Name)
	assert.Equal(t, "CrystalPledge.zip", cfg.Pack.Archive)
	assert.Equal(t, "temp", cfg.Staging.Dir)
	assert.True(t, cfg.Install.Enabled)
	assert.Equal(t, []string{"LICENSE.txt", "pack.mcmeta", "pack.png"}, cfg.Sources.MainFiles)
	assert.Equal(t, "assets", cfg.Sources.AssetsDir)
	assert.Equal(t, "assets/minecraft/lang", cfg.Merge.LangDir)
	assert.Equal(t, []string{".bbmodel"}, cfg.Merge.ModelExtensions)
	assert.Empty(t, cfg.LoadedFiles)

	require.Len(t, cfg.Sources.Bundles, 2)
	vt, nsf := cfg.Sources.Bundles[0], cfg.Sources.Bundles[1]
	assert.Equal(t, "VanillaTweaks.zip", vt.Archive)
	assert.True(t, vt.SkipMainFiles)
	assert.Equal(t, RoleBundle, vt.Role)
	assert.Equal(t, "NegativeSpaceFont.zip", nsf.Archive)
	assert.Equal(t, RoleFont, nsf.Role)
	assert.Equal(t, []string{"assets/space/textures/", "assets/minecraft/font/default.json"}, nsf.Include)
	assert.Equal(t, map[string]string{"LICENSE.txt": "NegativeSpaceFont_LICENSE.txt"}, nsf.Rename)
}

func TestLoadConfiguration_Layers(t *testing.T) {
	t.Run("user_then_project_file", func(t *testing.T) {
		p := isolate(t)
		writeFile(t, p.UserConfigPath(), "[pack]\nname = \"UserPack\"\narchive = \"User.zip\"\n")
		writeFile(t, filepath.Join(p.ProjectRoot(), "rpbuilder.toml"), "[pack]\narchive = \"Project.zip\"\n\n[sources]\nmain_files = [\"pack.mcmeta\"]\n")

		cfg, err := LoadConfiguration(p, "")
		require.NoError(t, err)

		assert.Equal(t, "UserPack", cfg.Pack.Name)
		assert.Equal(t, "Project.zip", cfg.Pack.Archive)
		assert.Equal(t, []string{"pack.mcmeta"}, cfg.Sources.MainFiles)
		assert.Equal(t, "assets", cfg.Sources.AssetsDir)
		assert.Len(t, cfg.LoadedFiles, 2)
	})

	t.Run("project_bundles_replace_defaults", func(t *testing.T) {
		p := isolate(t)
		writeFile(t, filepath.Join(p.ProjectRoot(), ".rpbuilder.toml"), `
[[sources.bundles]]
archive = "Only.zip"
`)

		cfg, err := LoadConfiguration(p, "")
		require.NoError(t, err)
		require.Len(t, cfg.Sources.Bundles, 1)
		assert.Equal(t, "Only.zip", cfg.Sources.Bundles[0].DisplayName())
		assert.Equal(t, RoleBundle, cfg.Sources.Bundles[0].Role)
	})

	t.Run("explicit_file", func(t *testing.T) {
		p := isolate(t)
		writeFile(t, filepath.Join(p.ProjectRoot(), "rpbuilder.toml"), "[pack]\narchive = \"Project.zip\"\n")
		writeFile(t, filepath.Join(p.ProjectRoot(), "ci.toml"), "[pack]\narchive = \"CI.zip\"\n")

		cfg, err := LoadConfiguration(p, "ci.toml")
		require.NoError(t, err)
		assert.Equal(t, "CI.zip", cfg.Pack.Archive)
	})

	t.Run("environment_wins", func(t *testing.T) {
		p := isolate(t)
		writeFile(t, filepath.Join(p.ProjectRoot(), "rpbuilder.toml"), "[pack]\narchive = \"Project.zip\"\n")
		t.Setenv("RPBUILDER_PACK__ARCHIVE", "Env.zip")
		t.Setenv("RPBUILDER_INSTALL__ENABLED", "false")
		t.Setenv("RPBUILDER_SOURCES__MAIN_FILES", "pack.mcmeta,pack.png")
		t.Setenv("RPBUILDER_MERGE__LANG_DIR", "assets/custom/lang/")

		cfg, err := LoadConfiguration(p, "")
		require.NoError(t, err)
		assert.Equal(t, "Env.zip", cfg.Pack.Archive)
		assert.False(t, cfg.Install.Enabled)
		assert.Equal(t, []string{"pack.mcmeta", "pack.png"}, cfg.Sources.MainFiles)
		assert.Equal(t, "assets/custom/lang", cfg.Merge.LangDir)
	})
}

func TestLoadConfiguration_Errors(t *testing.T) {
	t.Run("missing_explicit_file", func(t *testing.T) {
		p := isolate(t)
		_, err := LoadConfiguration(p, "nope.toml")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed_project_file", func(t *testing.T) {
		p := isolate(t)
		writeFile(t, filepath.Join(p.ProjectRoot(), "rpbuilder.toml"), "[pack\nname = ")

		_, err := LoadConfiguration(p, "")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("invalid_values", func(t *testing.T) {
		p := isolate(t)
		writeFile(t, filepath.Join(p.ProjectRoot(), "rpbuilder.toml"), "[staging]\ndir = \".\"\n")

		_, err := LoadConfiguration(p, "")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		assert.Equal(t, "staging.dir", errors.GetErrorDetails(err)["key"])
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "pack.archive", envKey("RPBUILDER_PACK__ARCHIVE"))
	assert.Equal(t, "sources.assets_dir", envKey("RPBUILDER_SOURCES__ASSETS_DIR"))
	assert.Equal(t, "", envKey("RPBUILDER_ROOT"))
	assert.Equal(t, "", envKey("RPBUILDER_STATE_DIR"))
}

func TestOrderedBundles(t *testing.T) {
	cfg := &Config{Sources: SourcesConfig{Bundles: []BundleConfig{
		{Archive: "font.zip", Role: RoleFont},
		{Archive: "a.zip", Role: RoleBundle},
		{Archive: "b.zip", Role: RoleBundle},
	}}}

	var got []string
	for _, b := range cfg.OrderedBundles() {
		got = append(got, b.Archive)
	}
	assert.Equal(t, []string{"a.zip", "b.zip", "font.zip"}, got)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Pack:    PackConfig{Name: "Pack", Archive: "Pack.zip"},
			Staging: StagingConfig{Dir: "temp"},
			Sources: SourcesConfig{AssetsDir: "assets", Bundles: []BundleConfig{{Archive: "a.zip", Role: RoleBundle}}},
			Merge:   MergeConfig{LangDir: "assets/minecraft/lang"},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		key    string
	}{
		{name: "pack_name_with_separator", mutate: func(c *Config) { c.Pack.Name = "a/b" }, key: "pack.name"},
		{name: "empty_archive", mutate: func(c *Config) { c.Pack.Archive = "" }, key: "pack.archive"},
		{name: "staging_root", mutate: func(c *Config) { c.Staging.Dir = "/" }, key: "staging.dir"},
		{name: "staging_parent", mutate: func(c *Config) { c.Staging.Dir = "../x" }, key: "staging.dir"},
		{name: "staging_is_assets", mutate: func(c *Config) { c.Staging.Dir = "./assets" }, key: "staging.dir"},
		{name: "empty_lang_dir", mutate: func(c *Config) { c.Merge.LangDir = "" }, key: "merge.lang_dir"},
		{name: "bundle_without_archive", mutate: func(c *Config) { c.Sources.Bundles[0].Archive = "" }, key: "sources.bundles"},
		{name: "bundle_unknown_role", mutate: func(c *Config) { c.Sources.Bundles[0].Role = "shader" }, key: "sources.bundles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
			assert.Equal(t, tt.key, errors.GetErrorDetails(err)["key"])
		})
	}
}

func TestConfigTOML(t *testing.T) {
	p := isolate(t)
	cfg, err := LoadConfiguration(p, "")
	require.NoError(t, err)

	out, err := cfg.TOML()
	require.NoError(t, err)

	var back Config
	require.NoError(t, gotoml.Unmarshal(out, &back))
	assert.Equal(t, cfg.Pack, back.Pack)
	assert.Equal(t, cfg.Sources.MainFiles, back.Sources.MainFiles)
	require.Len(t, back.Sources.Bundles, 2)
	assert.Equal(t, cfg.Sources.Bundles[1].Rename, back.Sources.Bundles[1].Rename)
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()
	assert.Contains(t, content, `# name = "CrystalPledge"`)
	assert.Contains(t, content, "# [[sources.bundles]]")

	var parsed map[string]interface{}
	require.NoError(t, gotoml.Unmarshal([]byte(content), &parsed))
	assert.Empty(t, parsed)
}
