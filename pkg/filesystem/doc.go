// Package filesystem holds the afero helpers punkt's operations share:
// existence checks, mode-preserving copies and content comparison.
//
// Everything takes an afero.Fs so that the same code runs against the OS
// filesystem and against afero.NewMemMapFs in tests.
package filesystem
