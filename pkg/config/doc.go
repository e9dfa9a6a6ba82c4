// Package config loads the rpbuilder configuration.
//
// Layers, lowest precedence first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file $XDG_CONFIG_HOME/rpbuilder/config.toml
//  3. the project file rpbuilder.toml or .rpbuilder.toml, or an explicit path
//  4. RPBUILDER_* environment variables, with "__" separating sections
//     (RPBUILDER_PACK__ARCHIVE=out.zip sets pack.archive)
//
// Lists and tables are replaced by higher layers, never appended.
package config
