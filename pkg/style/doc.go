// Package style holds the terminal styles used by the dirsort CLI and
// renders the end-of-run summary.
package style
