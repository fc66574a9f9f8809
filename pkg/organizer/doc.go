// Package organizer sorts the direct children of a directory into
// per-rule subdirectories split by last-modified date.
//
// For each regular file the organizer resolves a target subdirectory from
// a rules.Table and moves the file to
//
//	<directory>/<target>/<YYYY-MM-DD>/<filename>
//
// Each file is processed independently: a failure to create a directory or
// move one file is logged and recorded in the Report, and the remaining
// files are still processed. Nested directories are never visited.
package organizer
