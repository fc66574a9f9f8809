// Package testutil provides utilities for testing dirsort components.
//
// Key components:
//   - TestEnvironment: a directory to organize, backed by memory or a temp dir
//   - ErrorFS: a types.FS wrapper that injects errors for chosen operations
//   - CaptureLogs: routes the global zerolog logger into a buffer
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated when the test needs real OS
//     behavior such as symlinks or permissions
//   - All test data should be defined inline, not in external files
package testutil
