// Test Type: Unit Test
// Description: Tests for routing and the lang, font, sound and passthrough strategies

package merge_test

import (
	"encoding/json"
	"testing"

	"github.com/craftec/rpbuilder/pkg/merge"
	"github.com/craftec/rpbuilder/pkg/warnings"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	enUS   = "assets/minecraft/lang/en_us.json"
	enGB   = "assets/minecraft/lang/en_gb.json"
	font   = "assets/minecraft/font/default.json"
	sounds = "assets/minecraft/sounds.json"
)

type fixture struct {
	merger   *merge.Merger
	staging  afero.Fs
	reporter *warnings.Reporter
}

func newFixture(t *testing.T, suppressions warnings.Suppressions) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	reporter := warnings.NewReporter(suppressions, nil)
	return &fixture{
		merger:   merge.NewMerger(merge.DefaultLayout(), merge.NewState(), fs, reporter),
		staging:  fs,
		reporter: reporter,
	}
}

func (f *fixture) ingest(t *testing.T, dest, content string) {
	t.Helper()
	require.NoError(t, f.merger.Ingest(dest, []byte(content)))
}

func (f *fixture) flushed(t *testing.T, dest string) string {
	t.Helper()
	require.NoError(t, f.merger.Flush())
	data, err := afero.ReadFile(f.staging, dest)
	require.NoError(t, err)
	return string(data)
}

func TestRoute(t *testing.T) {
	f := newFixture(t, warnings.Suppressions{})

	tests := []struct {
		path string
		want merge.Strategy
	}{
		{path: "models/dragon.bbmodel", want: merge.Excluded},
		{path: enUS, want: merge.Lang},
		{path: `assets\minecraft\lang\de_de.json`, want: merge.Lang},
		{path: "assets/minecraft/lang/readme.txt", want: merge.Passthrough},
		{path: font, want: merge.Passthrough},
		{path: sounds, want: merge.Passthrough},
		{path: "assets/minecraft/textures/block/stone.png", want: merge.Passthrough},
		{path: "pack.mcmeta", want: merge.Passthrough},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, f.merger.Route(tt.path))
		})
	}

	t.Run("font_and_sounds_merge_once_staged", func(t *testing.T) {
		f.ingest(t, font, `{"providers": []}`)
		f.ingest(t, sounds, `{}`)

		assert.Equal(t, merge.Font, f.merger.Route(font))
		assert.Equal(t, merge.Sound, f.merger.Route(sounds))
		assert.Equal(t, merge.Passthrough, f.merger.Route("assets/other/font/default.json"))
	})
}

func TestLang(t *testing.T) {
	t.Run("disjoint_keys_union", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, enUS, `{"a": "1"}`)
		f.ingest(t, enUS, `{"b": "2"}`)

		assert.Equal(t, "{\n  \"a\": \"1\",\n  \"b\": \"2\"\n}\n", f.flushed(t, enUS))
		assert.Equal(t, 0, f.reporter.Total())
	})

	t.Run("shared_key_last_wins_with_one_warning", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, enUS, `{"k": "x"}`)
		f.ingest(t, enUS, `{"k": "y"}`)

		value, ok := f.merger.State().LangValue(enUS, "k")
		require.True(t, ok)
		assert.Equal(t, `"y"`, string(value))

		require.Len(t, f.reporter.Warnings(), 1)
		w := f.reporter.Warnings()[0]
		assert.Equal(t, warnings.DuplicateLangKey, w.Kind)
		assert.Equal(t, enUS+":k", w.Identifier)
	})

	t.Run("suppressed_duplicate_is_silent", func(t *testing.T) {
		f := newFixture(t, warnings.NewSuppressions(map[warnings.Kind][]string{
			warnings.DuplicateLangKey: {enUS + ":menu.title"},
		}))
		f.ingest(t, enUS, `{"menu.title": "A", "menu.quit": "Q"}`)
		f.ingest(t, enUS, `{"menu.title": "B", "menu.quit": "R"}`)

		require.Len(t, f.reporter.Warnings(), 1)
		assert.Equal(t, enUS+":menu.quit", f.reporter.Warnings()[0].Identifier)
		assert.Equal(t, 1, f.reporter.SuppressedCount())
	})

	t.Run("langs_fans_out_without_warnings", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, "assets/minecraft/lang/shared.json", `{"langs": ["en_us", "en_gb"], "x": "1"}`)

		require.NoError(t, f.merger.Flush())
		for _, dest := range []string{enUS, enGB} {
			data, err := afero.ReadFile(f.staging, dest)
			require.NoError(t, err, dest)
			assert.JSONEq(t, `{"x": "1"}`, string(data))
		}
		exists, err := afero.Exists(f.staging, "assets/minecraft/lang/shared.json")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Equal(t, 0, f.reporter.Total())
	})

	t.Run("fan_out_merges_into_existing_locale", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, enUS, `{"x": "0", "y": "1"}`)
		f.ingest(t, "assets/minecraft/lang/shared.json", `{"langs": ["en_us"], "x": "2"}`)

		assert.Equal(t, []string{"x", "y"}, f.merger.State().LangKeys(enUS))
		assert.Equal(t, 1, f.reporter.Count(warnings.DuplicateLangKey))
	})

	t.Run("invalid_locale_is_skipped", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, "assets/minecraft/lang/shared.json", `{"langs": ["../evil", "en_us"], "x": "1"}`)

		assert.Equal(t, 1, f.reporter.Count(warnings.InvalidInput))
		assert.Equal(t, []string{enUS}, f.merger.State().Destinations())
	})

	t.Run("repeated_locale_merges_once", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, "assets/minecraft/lang/shared.json", `{"langs": ["en_us", "en_us", "en_us"], "x": "1", "y": "2"}`)

		assert.Equal(t, 0, f.reporter.Count(warnings.DuplicateLangKey))
		require.Len(t, f.reporter.Warnings(), 2)
		for _, w := range f.reporter.Warnings() {
			assert.Equal(t, warnings.InvalidInput, w.Kind)
			assert.Equal(t, "assets/minecraft/lang/shared.json", w.Identifier)
			assert.Contains(t, w.Detail, `"en_us"`)
		}
		assert.Equal(t, []string{"x", "y"}, f.merger.State().LangKeys(enUS))
		assert.Equal(t, []string{enUS}, f.merger.State().Destinations())
	})

	t.Run("malformed_files_are_skipped", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, enUS, `{"a": "1"}`)
		f.ingest(t, enUS, `{"a": `)
		f.ingest(t, enUS, `["a"]`)
		f.ingest(t, enUS, `{"a": 3}`)
		f.ingest(t, enUS, `{"langs": "en_us", "a": "4"}`)

		assert.Equal(t, 4, f.reporter.Count(warnings.InvalidInput))
		for _, w := range f.reporter.Warnings() {
			assert.Equal(t, enUS, w.Identifier)
			assert.NotEmpty(t, w.Detail)
		}
		value, _ := f.merger.State().LangValue(enUS, "a")
		assert.Equal(t, `"1"`, string(value))
	})

	t.Run("escapes_survive", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, enUS, `{"greeting": "caf\u00e9 <b>"}`)

		assert.Equal(t, "{\n  \"greeting\": \"caf\\u00e9 <b>\"\n}\n", f.flushed(t, enUS))
	})
}

func TestFont(t *testing.T) {
	first := `{"providers": [{"type": "bitmap", "file": "a.png", "chars": ["ab\u0000"]}]}`
	second := `{"providers": [{"type": "bitmap", "file": "b.png", "chars": ["b\u0000c"]}]}`

	t.Run("first_copy_is_staged_verbatim", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, font, first)

		data, err := afero.ReadFile(f.staging, font)
		require.NoError(t, err)
		assert.Equal(t, first, string(data))
		assert.Equal(t, 0, f.merger.State().ProviderCount(font))
	})

	t.Run("providers_are_appended_and_duplicates_reported", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, font, first)
		f.ingest(t, font, second)

		assert.Equal(t, 2, f.merger.State().ProviderCount(font))
		require.Len(t, f.reporter.Warnings(), 1)
		assert.Equal(t, warnings.DuplicateGlyph, f.reporter.Warnings()[0].Kind)
		assert.Equal(t, font+":b", f.reporter.Warnings()[0].Identifier)

		out := f.flushed(t, font)
		assert.Contains(t, out, `"ab\u0000"`)
		assert.Contains(t, out, `"b\u0000c"`)
		assert.NotContains(t, out, `\\`)

		var decoded struct {
			Providers []struct {
				File string `json:"file"`
			} `json:"providers"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		require.Len(t, decoded.Providers, 2)
		assert.Equal(t, "a.png", decoded.Providers[0].File)
		assert.Equal(t, "b.png", decoded.Providers[1].File)
	})

	t.Run("null_sentinel_never_warns", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, font, `{"providers": [{"chars": ["\u0000\u0000"]}]}`)
		f.ingest(t, font, `{"providers": [{"chars": ["\u0000"]}, {"chars": ["\u0000"]}]}`)

		assert.Equal(t, 0, f.reporter.Count(warnings.DuplicateGlyph))
		assert.Equal(t, 3, f.merger.State().ProviderCount(font))
	})

	t.Run("escaped_glyphs_are_compared_as_tokens", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, font, `{"providers": [{"chars": ["\uE041"]}]}`)
		f.ingest(t, font, `{"providers": [{"chars": ["\uE041\uE042"]}]}`)

		require.Len(t, f.reporter.Warnings(), 1)
		assert.Equal(t, font+`:\uE041`, f.reporter.Warnings()[0].Identifier)
	})

	t.Run("invalid_font_is_skipped", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, font, first)
		f.ingest(t, font, `{"providers": [`)
		f.ingest(t, font, `{"textures": []}`)
		f.ingest(t, font, `{"providers": [{"chars": ["x\u00"]}, {"chars": ["y"]}]}`)

		assert.Equal(t, 3, f.reporter.Count(warnings.InvalidInput))
		assert.Equal(t, 1, f.merger.State().ProviderCount(font))
	})

	t.Run("unreadable_staged_copy_skips_incoming", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, font, `not json`)
		f.ingest(t, font, second)

		require.Len(t, f.reporter.Warnings(), 1)
		assert.Equal(t, warnings.InvalidInput, f.reporter.Warnings()[0].Kind)
		data, err := afero.ReadFile(f.staging, font)
		require.NoError(t, err)
		assert.Equal(t, "not json", string(data))
	})
}

func TestSound(t *testing.T) {
	f := newFixture(t, warnings.Suppressions{})
	f.ingest(t, sounds, `{"s": {"sounds": ["one"]}, "t": {"sounds": ["three"]}}`)
	f.ingest(t, sounds, `{"s": {"sounds": ["two"]}}`)

	require.Len(t, f.reporter.Warnings(), 1)
	w := f.reporter.Warnings()[0]
	assert.Equal(t, warnings.DuplicateSoundID, w.Kind)
	assert.Equal(t, sounds, w.Identifier)
	assert.Equal(t, "s", w.Detail)

	assert.Equal(t, []string{"s", "t"}, f.merger.State().SoundIDs(sounds))
	assert.JSONEq(t, `{"s": {"sounds": ["two"]}, "t": {"sounds": ["three"]}}`, f.flushed(t, sounds))
}

func TestPassthrough(t *testing.T) {
	const texture = "assets/minecraft/textures/block/stone.png"

	t.Run("identical_content_is_idempotent", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, texture, "PNG")
		f.ingest(t, texture, "PNG")

		data, err := afero.ReadFile(f.staging, texture)
		require.NoError(t, err)
		assert.Equal(t, "PNG", string(data))

		require.Len(t, f.reporter.Warnings(), 1)
		w := f.reporter.Warnings()[0]
		assert.Equal(t, warnings.DuplicateFile, w.Kind)
		assert.Equal(t, texture, w.Identifier)
		assert.Equal(t, "overwriting with identical content", w.Detail)
	})

	t.Run("last_writer_wins", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, texture, "old")
		f.ingest(t, texture, "new")

		data, err := afero.ReadFile(f.staging, texture)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
		assert.Equal(t, "overwriting", f.reporter.Warnings()[0].Detail)
	})

	t.Run("excluded_files_are_dropped", func(t *testing.T) {
		f := newFixture(t, warnings.Suppressions{})
		f.ingest(t, "assets/minecraft/models/dragon.bbmodel", "{}")

		exists, err := afero.Exists(f.staging, "assets/minecraft/models/dragon.bbmodel")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, merge.Fingerprint([]byte("a")), merge.Fingerprint([]byte("a")))
	assert.NotEqual(t, merge.Fingerprint([]byte("a")), merge.Fingerprint([]byte("b")))
}

func TestFlush_Order(t *testing.T) {
	f := newFixture(t, warnings.Suppressions{})
	f.ingest(t, enUS, `{"a": "1"}`)
	f.ingest(t, enGB, `{"a": "1"}`)

	assert.Equal(t, []string{enGB, enUS}, f.merger.State().Destinations())
	require.NoError(t, f.merger.Flush())
}
