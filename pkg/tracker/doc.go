// Package tracker persists what punkt last mirrored.
//
// Every entry is keyed by the clean absolute active path and records either
// a file (modification time in milliseconds and BLAKE3 content hash) or a
// directory marker. Sync consults the tracker to skip files that have not
// changed since the previous run.
//
// Entries live in a Store. Three backends are available:
//
//   - badger: an embedded key-value store in a directory (default)
//   - sqlite: a single database file next to the configured path
//   - memory: a map, for tests and dry runs
//
// Values use a small binary codec; see Encode.
package tracker
