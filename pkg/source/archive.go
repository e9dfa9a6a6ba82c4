package source

import (
	"io"
	"os"
	"strings"

	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/craftec/rpbuilder/pkg/logging"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
)

// ArchiveSource yields the file entries of a zip archive in archive order.
// Directory entries are skipped.
type ArchiveSource struct {
	fs   afero.Fs
	path string
}

// NewArchiveSource creates a source over the zip archive at path inside fs
func NewArchiveSource(fs afero.Fs, path string) *ArchiveSource {
	return &ArchiveSource{fs: fs, path: path}
}

// Name implements Source
func (a *ArchiveSource) Name() string { return cleanPath(a.path) }

// Walk implements Source
func (a *ArchiveSource) Walk(fn WalkFunc) error {
	logger := logging.GetLogger("source.archive")

	file, err := a.fs.Open(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return missing(a.Name(), a.Name())
		}
		return errors.Wrapf(err, errors.ErrSourceRead, "failed to open %s", a.path)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceRead, "failed to stat %s", a.path)
	}

	reader, err := zip.NewReader(file, info.Size())
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceRead, "failed to read archive %s", a.path)
	}

	count := 0
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() || strings.HasSuffix(entry.Name, "/") {
			continue
		}
		data, err := readEntry(entry)
		if err != nil {
			return errors.Wrapf(err, errors.ErrSourceRead, "failed to read %s from %s", entry.Name, a.path)
		}
		count++
		if err := fn(cleanPath(entry.Name), data); err != nil {
			return err
		}
	}

	logger.Debug().Str("archive", a.Name()).Int("files", count).Msg("Archive source walked")
	return nil
}

func readEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}
