package filesystem

import (
	"os"

	"github.com/spf13/afero"
)

// Project returns a filesystem rooted at the project directory on disk.
// Paths given to it are project-relative.
func Project(root string) afero.Fs {
	return afero.NewBasePathFs(afero.NewOsFs(), root)
}

// Host returns the real filesystem, addressed with host paths
func Host() afero.Fs {
	return afero.NewOsFs()
}

// Sub returns a view of dir inside fs in which dir is the root
func Sub(fs afero.Fs, dir string) afero.Fs {
	return afero.NewBasePathFs(fs, dir)
}

// IsDir reports whether p exists on fs and is a directory
func IsDir(fs afero.Fs, p string) bool {
	ok, err := afero.DirExists(fs, p)
	return err == nil && ok
}

// Recreate removes dir if present and creates it empty
func Recreate(fs afero.Fs, dir string) error {
	if _, err := fs.Stat(dir); err == nil {
		if err := fs.RemoveAll(dir); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}
	return fs.MkdirAll(dir, 0755)
}
