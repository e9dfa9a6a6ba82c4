// Package merge combines files that describe the same logical resource.
//
// A Merger owns one build's State and routes every ingested (path, bytes) pair
// to a strategy:
//
//   - lang tables under the lang directory are merged key by key
//   - font definitions (assets/<ns>/font/*.json) have their providers
//     concatenated while glyph claims are checked for duplicates
//   - sound registries (assets/<ns>/sounds.json) are merged id by id
//   - everything else is copied into the staging tree, last source wins
//
// Fonts and sound registries only merge once a first copy has been staged; that
// first copy is written verbatim and seeds the accumulator when a second one
// arrives. Lang tables always accumulate. Model source files are dropped.
//
// Conflicts are resolved deterministically (the later source wins, providers
// are appended) and every loss of information is reported through a Reporter.
// Accumulated content reaches the staging tree only when Flush is called.
package merge
