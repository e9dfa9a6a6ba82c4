// Test Type: Unit Test
// Description: Tests for staging enumeration, mirroring and archive writing

package packager_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/craftec/rpbuilder/pkg/packager"
	"github.com/craftec/rpbuilder/pkg/testutil"
	"github.com/craftec/rpbuilder/pkg/warnings"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stagingTree(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, testutil.FileTree{
		"pack.mcmeta":                               `{"pack": {}}`,
		"assets/minecraft/lang/en_us.json":          `{"a": "1"}`,
		"assets/minecraft/textures/block/stone.png": "PNG",
	})
	return fs
}

func TestListFiles(t *testing.T) {
	files, err := packager.ListFiles(stagingTree(t))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"assets/minecraft/lang/en_us.json",
		"assets/minecraft/textures/block/stone.png",
		"pack.mcmeta",
	}, files)
}

func TestWriteArchive(t *testing.T) {
	staging := stagingTree(t)
	files, err := packager.ListFiles(staging)
	require.NoError(t, err)

	out := afero.NewMemMapFs()
	reporter := warnings.NewReporter(warnings.Suppressions{}, nil)
	n, err := packager.WriteArchive(staging, files, out, "CrystalPledge.zip", reporter)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 0, reporter.Total())

	entries := testutil.ReadZip(t, out, "CrystalPledge.zip")
	assert.Equal(t, testutil.FileTree{
		"pack.mcmeta":                               `{"pack": {}}`,
		"assets/minecraft/lang/en_us.json":          `{"a": "1"}`,
		"assets/minecraft/textures/block/stone.png": "PNG",
	}, entries)
}

// failingOpenFs refuses to open one file while still reporting it through Stat
type failingOpenFs struct {
	afero.Fs
	name string
}

func (f *failingOpenFs) Open(name string) (afero.File, error) {
	if filepath.ToSlash(name) == f.name {
		return nil, os.ErrPermission
	}
	return f.Fs.Open(name)
}

func (f *failingOpenFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if filepath.ToSlash(name) == f.name {
		return nil, os.ErrPermission
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func TestWriteArchive_Errors(t *testing.T) {
	staging := stagingTree(t)

	t.Run("unwritable_destination", func(t *testing.T) {
		out := afero.NewReadOnlyFs(afero.NewMemMapFs())
		_, err := packager.WriteArchive(staging, []string{"pack.mcmeta"}, out, "out.zip", nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveWrite))
	})

	t.Run("vanished_staged_file", func(t *testing.T) {
		out := afero.NewMemMapFs()
		_, err := packager.WriteArchive(staging, []string{"pack.mcmeta", "missing.png"}, out, "out.zip", nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrStagingRead))

		exists, err := afero.Exists(out, "out.zip")
		require.NoError(t, err)
		assert.False(t, exists, "partial archive should be removed")
	})

	t.Run("unreadable_staged_file", func(t *testing.T) {
		out := afero.NewMemMapFs()
		broken := &failingOpenFs{Fs: staging, name: "assets/minecraft/lang/en_us.json"}
		files := []string{"assets/minecraft/lang/en_us.json", "pack.mcmeta"}
		_, err := packager.WriteArchive(broken, files, out, "out.zip", nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrStagingRead))

		exists, err := afero.Exists(out, "out.zip")
		require.NoError(t, err)
		assert.False(t, exists, "partial archive should be removed")
	})
}

func TestRemoveArchive(t *testing.T) {
	t.Run("absent_is_fine", func(t *testing.T) {
		assert.NoError(t, packager.RemoveArchive(afero.NewMemMapFs(), "CrystalPledge.zip"))
	})

	t.Run("existing_is_removed", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "CrystalPledge.zip", []byte("old"), 0644))

		require.NoError(t, packager.RemoveArchive(fs, "CrystalPledge.zip"))
		exists, _ := afero.Exists(fs, "CrystalPledge.zip")
		assert.False(t, exists)
	})

	t.Run("undeletable_is_fatal", func(t *testing.T) {
		base := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(base, "CrystalPledge.zip", []byte("old"), 0644))

		err := packager.RemoveArchive(afero.NewReadOnlyFs(base), "CrystalPledge.zip")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveRemove))
	})
}

func TestMirror(t *testing.T) {
	staging := stagingTree(t)
	files, err := packager.ListFiles(staging)
	require.NoError(t, err)

	target := afero.NewMemMapFs()
	dir := filepath.Join("/mc", "resourcepacks", "CrystalPledge")
	stale := filepath.Join(dir, "stale.txt")
	require.NoError(t, afero.WriteFile(target, stale, []byte("x"), 0644))

	require.NoError(t, packager.Mirror(staging, files, target, dir))

	exists, _ := afero.Exists(target, stale)
	assert.False(t, exists)
	data, err := afero.ReadFile(target, filepath.Join(dir, "assets", "minecraft", "lang", "en_us.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"a": "1"}`, string(data))

	t.Run("read_only_target", func(t *testing.T) {
		err := packager.Mirror(staging, files, afero.NewReadOnlyFs(afero.NewMemMapFs()), dir)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMirror))
	})
}
