// Package core holds the Context every punkt operation runs against.
//
// A Context bundles the filesystem, the path mapper, the loaded
// configuration, the open tracker and a logger. Operations take it as an
// explicit argument; nothing in punkt reads these from globals.
package core
