// Package filesystem provides the afero filesystems a build works on: the
// project tree, sub-trees such as the staging directory, and the host
// filesystem used for the game installation. Tests swap in afero.MemMapFs.
package filesystem
