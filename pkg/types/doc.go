// Package types defines the interfaces shared across dirsort packages.
// The FS interface lets the organizer run against the OS filesystem in
// production and against in-memory or fault-injecting filesystems in tests.
package types
