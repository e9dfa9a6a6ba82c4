package source

import (
	"path"
	"strings"

	"github.com/craftec/rpbuilder/pkg/errors"
)

// WalkFunc receives one entry. Returning an error stops the walk.
type WalkFunc func(relPath string, data []byte) error

// Source is one origin of input files
type Source interface {
	// Name is a human-readable label used in logs and warnings
	Name() string
	// Walk calls fn once per file in enumeration order
	Walk(fn WalkFunc) error
}

// MissingPaths extracts the missing paths recorded on an ErrSourceMissing error
func MissingPaths(err error) []string {
	if !errors.IsErrorCode(err, errors.ErrSourceMissing) {
		return nil
	}
	paths, _ := errors.GetErrorDetails(err)["paths"].([]string)
	return paths
}

func missing(name string, paths ...string) error {
	return errors.Newf(errors.ErrSourceMissing, "could not find %s", strings.Join(paths, ", ")).
		WithDetail("source", name).
		WithDetail("paths", paths)
}

// cleanPath normalizes an entry name to a forward-slash relative path
func cleanPath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "./")
	return strings.TrimPrefix(p, "/")
}
