// Package ignore decides which paths punkt operates on.
//
// Four sources feed the decision:
//
//  1. the platform default ignore set (config, per runtime.GOOS)
//  2. the user ignore file, .punktignore at the local tree root
//  3. an include regular expression (default: match everything)
//  4. an exclude regular expression (default: match nothing)
//
// A path is eligible when it is matched by neither ignore source for its
// own tree, the include expression matches it and the exclude expression
// does not. Glob patterns are written against the active tree; they are
// translated through the path mapper before being anchored at the local
// root. Regular expressions always test the active form of a path.
//
// The local tree's own bookkeeping (.git, .punktignore) is never eligible.
package ignore
