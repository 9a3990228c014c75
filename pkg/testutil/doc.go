// Package testutil provides a ready-made punkt environment for tests.
//
// NewEnv builds a core.Context over an in-memory filesystem and an in-memory
// tracker, with the active tree at /home/u and the local tree at
// /home/u/.local/share/punkt. Helpers write and read files by path relative to
// either root.
package testutil
