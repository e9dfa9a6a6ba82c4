package packager

import (
	"path/filepath"

	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/spf13/afero"
)

// Mirror replaces dir on target with a copy of the given staged files
func Mirror(staging afero.Fs, files []string, target afero.Fs, dir string) error {
	if err := target.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, errors.ErrMirror, "failed to clear %s", dir)
	}
	if err := target.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrMirror, "failed to create %s", dir)
	}

	for _, rel := range files {
		data, err := afero.ReadFile(staging, rel)
		if err != nil {
			return errors.Wrapf(err, errors.ErrStagingRead, "failed to read staged file %s", rel)
		}
		dest := filepath.Join(dir, filepath.FromSlash(rel))
		if err := target.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrMirror, "failed to create %s", filepath.Dir(dest))
		}
		if err := afero.WriteFile(target, dest, data, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrMirror, "failed to write %s", dest)
		}
	}
	return nil
}
