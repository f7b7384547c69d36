// Package compress provides the payload codecs used by the archive format.
//
// Four algorithms are supported:
//
//   - Zstd: best ratio, used by default for name tables and draw payloads.
//     Builds use the pure-Go klauspost implementation unless the cgo variant
//     is selected at build time.
//   - S2: fastest round-trip, good for short-lived archives.
//   - LZ4: fast block compression with wide tooling support.
//   - NoOp: passthrough, useful for debugging archive layout issues.
//
// All codecs are safe for concurrent use.
package compress
