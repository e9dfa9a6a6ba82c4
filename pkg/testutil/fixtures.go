package testutil

import (
	"bytes"
	"io"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// FileTree maps slash paths to file contents
type FileTree map[string]string

// Entry is one archive member, in the order it is written
type Entry struct {
	Name    string
	Content string
}

// Entries returns the tree as entries sorted by name
func (ft FileTree) Entries() []Entry {
	out := make([]Entry, 0, len(ft))
	for name, content := range ft {
		out = append(out, Entry{Name: name, Content: content})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// WriteTree writes every file of tree to fs, creating parent directories
func WriteTree(t *testing.T, fs afero.Fs, tree FileTree) {
	t.Helper()
	for name, content := range tree {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
}

// ZipBytes builds an archive. Directory entries are written first.
func ZipBytes(t *testing.T, entries []Entry, dirs ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, dir := range dirs {
		_, err := zw.Create(dir)
		require.NoError(t, err)
	}
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.Content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// WriteZip writes tree as an archive named name, entries sorted by name
func WriteZip(t *testing.T, fs afero.Fs, name string, tree FileTree) {
	t.Helper()
	WriteZipEntries(t, fs, name, tree.Entries())
}

// WriteZipEntries writes an archive with entries in the given order
func WriteZipEntries(t *testing.T, fs afero.Fs, name string, entries []Entry, dirs ...string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, name, ZipBytes(t, entries, dirs...), 0644))
}

// ReadZip returns every member of the archive by name. Directory entries
// fail the test.
func ReadZip(t *testing.T, fs afero.Fs, name string) FileTree {
	t.Helper()
	out := FileTree{}
	for _, f := range openZip(t, fs, name).File {
		require.False(t, f.FileInfo().IsDir(), "unexpected directory entry %s", f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = string(content)
	}
	return out
}

// ZipNames returns member names in archive order
func ZipNames(t *testing.T, fs afero.Fs, name string) []string {
	t.Helper()
	var names []string
	for _, f := range openZip(t, fs, name).File {
		names = append(names, f.Name)
	}
	return names
}

func openZip(t *testing.T, fs afero.Fs, name string) *zip.Reader {
	t.Helper()
	data, err := afero.ReadFile(fs, name)
	require.NoError(t, err)
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return r
}
