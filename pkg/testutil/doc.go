// Package testutil provides fixtures for testing rpbuilder components.
//
// Project trees, bundle archives and staging directories are built in
// memory on afero filesystems:
//   - FileTree and WriteTree lay out loose files
//   - WriteZip and WriteZipEntries build bundle archives, the latter with a
//     fixed entry order for tests where archive order matters
//   - ReadZip and ZipNames inspect a written pack archive
//   - StepRecorder and SinkRecorder capture build progress and warnings
//
// All test data should be defined inline, not in external files.
package testutil
