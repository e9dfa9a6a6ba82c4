package source

import (
	"os"
	"path"
	"path/filepath"

	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/craftec/rpbuilder/pkg/logging"
	"github.com/spf13/afero"
)

// DirSource walks a directory tree. Entry paths start with the last segment of
// the root, so walking "src/assets" yields "assets/minecraft/...".
type DirSource struct {
	fs   afero.Fs
	root string
}

// NewDirSource creates a source over root inside fs
func NewDirSource(fs afero.Fs, root string) *DirSource {
	return &DirSource{fs: fs, root: root}
}

// Name implements Source
func (d *DirSource) Name() string { return filepath.ToSlash(d.root) }

// Walk implements Source. Files are visited in lexical order.
func (d *DirSource) Walk(fn WalkFunc) error {
	logger := logging.GetLogger("source.dir")

	info, err := d.fs.Stat(d.root)
	if err != nil {
		if os.IsNotExist(err) {
			return missing(d.Name(), d.Name())
		}
		return errors.Wrapf(err, errors.ErrSourceRead, "failed to stat %s", d.root)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrSourceRead, "%s is not a directory", d.root)
	}

	base := path.Base(cleanPath(d.root))
	count := 0
	var fnErr error
	err = afero.Walk(d.fs, d.root, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return nil
		}
		data, err := afero.ReadFile(d.fs, p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		count++
		fnErr = fn(cleanPath(path.Join(base, filepath.ToSlash(rel))), data)
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceRead, "failed to walk %s", d.root)
	}

	logger.Debug().Str("root", d.Name()).Int("files", count).Msg("Directory source walked")
	return nil
}
