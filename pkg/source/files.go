package source

import (
	"os"

	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/spf13/afero"
)

// FileSource yields an explicit list of files, in list order. Missing files
// are skipped; once the rest have been yielded Walk returns an
// ErrSourceMissing error naming every missing file.
type FileSource struct {
	fs    afero.Fs
	name  string
	files []string
}

// NewFileSource creates a source over the given paths inside fs
func NewFileSource(fs afero.Fs, name string, files []string) *FileSource {
	return &FileSource{fs: fs, name: name, files: files}
}

// Name implements Source
func (f *FileSource) Name() string { return f.name }

// Walk implements Source
func (f *FileSource) Walk(fn WalkFunc) error {
	var absent []string
	for _, p := range f.files {
		data, err := afero.ReadFile(f.fs, p)
		if err != nil {
			if os.IsNotExist(err) {
				absent = append(absent, cleanPath(p))
				continue
			}
			return errors.Wrapf(err, errors.ErrSourceRead, "failed to read %s", p)
		}
		if err := fn(cleanPath(p), data); err != nil {
			return err
		}
	}
	if len(absent) > 0 {
		return missing(f.name, absent...)
	}
	return nil
}
