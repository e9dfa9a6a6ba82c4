// Package packager turns a staging tree into its outputs: an optional mirror
// inside the game installation and the distributable zip archive.
//
// Entry names are always relative to the staging root and use forward
// slashes, whatever the host separator is.
package packager
