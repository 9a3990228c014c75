// Package cobrax holds extensions to cobra shared by punkt's command line
// tools.
package cobrax
