// Package warnings is the central sink for non-fatal build notifications.
//
// Every loss of information during a merge (a duplicate key, a duplicate glyph,
// an overwritten file) and every recoverable problem (an unparsable payload, a
// missing source, a failed cleanup) is reported here as a Warning of one of a
// closed set of kinds. A Suppressions table, loaded once at startup, silences
// individual (kind, identifier) pairs. Suppression only hides the message; it
// never changes how the conflict is resolved.
//
// Identifiers are normalized to forward slashes before lookup and display, so
// suppression rules written on one platform match on every other.
package warnings
