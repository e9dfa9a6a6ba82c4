// Package paths provides centralized path handling for rpbuilder.
//
// It resolves the project root (the directory holding the asset tree and the
// bundle archives), the XDG directories used for user configuration and logs,
// and the game installation directory the staged pack is mirrored into.
//
// # Environment Variables
//
//   - RPBUILDER_ROOT: project root (default: current directory)
//   - RPBUILDER_CONFIG_DIR: override $XDG_CONFIG_HOME/rpbuilder
//   - RPBUILDER_STATE_DIR: override $XDG_STATE_HOME/rpbuilder
//
// # Installation directory
//
// When not configured, the installation directory is detected per platform:
//
//   - windows: %APPDATA%/.minecraft
//   - darwin: ~/Library/Application Support/minecraft
//   - others: ~/.minecraft
package paths
