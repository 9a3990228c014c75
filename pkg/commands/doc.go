// Package commands groups punkt's driving operations, one package each:
//
//   - initialize: create the local tree
//   - sync: mirror active files into the local tree
//   - activate: copy local files back into the active tree
//   - unsync: stop mirroring paths and forget them
//   - diff: report where the trees disagree
//   - list: show the local tree
//
// Every operation takes a *core.Context and an Options value and returns a
// Result or an error. Operations never print; rendering belongs to the CLI.
package commands
