package packager

import (
	"os"
	"path/filepath"

	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/spf13/afero"
)

// ListFiles returns every regular file below the root of staging, in lexical
// order, as slash-separated relative paths
func ListFiles(staging afero.Fs) ([]string, error) {
	var files []string
	err := afero.Walk(staging, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		files = append(files, filepath.ToSlash(p))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStagingRead, "failed to enumerate staging tree")
	}
	return files, nil
}
