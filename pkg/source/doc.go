// Package source enumerates the raw files contributed by one origin of a build.
//
// A Source yields (relative path, bytes) pairs through Walk. Paths always use
// forward slashes. Three origins exist: a loose directory tree (DirSource), an
// explicit list of files (FileSource) and a zip archive (ArchiveSource). Filter
// narrows or renames the entries of any of them.
//
// A source whose backing file or directory does not exist fails with an error
// carrying errors.ErrSourceMissing; the caller decides whether that is fatal.
package source
