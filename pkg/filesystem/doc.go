// Package filesystem provides filesystem implementations for dirsort.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and an afero-backed filesystem
// used for in-memory and read-only tests.
package filesystem
