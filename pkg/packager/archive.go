package packager

import (
	"os"

	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/craftec/rpbuilder/pkg/logging"
	"github.com/craftec/rpbuilder/pkg/warnings"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
)

// Reporter receives entries that could not be added to the archive
type Reporter interface {
	Report(kind warnings.Kind, identifier string, detail ...string)
}

// RemoveArchive deletes a previous output archive. A leftover archive that
// cannot be removed aborts the build.
func RemoveArchive(fs afero.Fs, archivePath string) error {
	info, err := fs.Stat(archivePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrArchiveRemove, "failed to inspect old %s", archivePath)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrArchiveRemove, "failed to delete old %s: is a directory", archivePath)
	}
	if err := fs.Remove(archivePath); err != nil {
		return errors.Wrapf(err, errors.ErrArchiveRemove, "failed to delete old %s", archivePath)
	}
	return nil
}

// WriteArchive zips the given staged files into archivePath on out and returns
// how many entries were written. Entries that cannot be added are reported and
// skipped. Failing to read staging or to create or finish the archive is
// fatal and removes the partial archive.
func WriteArchive(staging afero.Fs, files []string, out afero.Fs, archivePath string, reporter Reporter) (int, error) {
	logger := logging.GetLogger("packager")

	f, err := out.OpenFile(archivePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrArchiveWrite, "failed to create %s", archivePath)
	}

	zw := zip.NewWriter(f)
	// A failed build leaves no archive behind.
	discard := func() {
		_ = zw.Close()
		_ = f.Close()
		_ = out.Remove(archivePath)
	}
	written := 0
	for _, rel := range files {
		info, err := staging.Stat(rel)
		if err != nil {
			discard()
			return written, errors.Wrapf(err, errors.ErrStagingRead, "failed to stat staged file %s", rel)
		}
		data, err := afero.ReadFile(staging, rel)
		if err != nil {
			discard()
			return written, errors.Wrapf(err, errors.ErrStagingRead, "failed to read staged file %s", rel)
		}

		header := &zip.FileHeader{
			Name:     rel,
			Method:   zip.Deflate,
			Modified: info.ModTime(),
		}
		w, err := zw.CreateHeader(header)
		if err == nil {
			_, err = w.Write(data)
		}
		if err != nil {
			if reporter != nil {
				reporter.Report(warnings.InvalidInput, rel, "could not be added to the archive: "+err.Error())
			}
			continue
		}
		written++
		logger.Trace().Str("entry", rel).Int("bytes", len(data)).Msg("Added archive entry")
	}

	if err := zw.Close(); err != nil {
		_ = f.Close()
		_ = out.Remove(archivePath)
		return written, errors.Wrapf(err, errors.ErrArchiveWrite, "failed to finish %s", archivePath)
	}
	if err := f.Close(); err != nil {
		_ = out.Remove(archivePath)
		return written, errors.Wrapf(err, errors.ErrArchiveWrite, "failed to close %s", archivePath)
	}
	return written, nil
}
