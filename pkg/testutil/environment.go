// pkg/testutil/environment.go
// DEPENDENCIES: pkg/filesystem
// PURPOSE: Orchestrate test directories with files at fixed modification times

package testutil

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/dirsort/pkg/filesystem"
	"github.com/arthur-debert/dirsort/pkg/types"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment holds a directory to organize and the FS it lives on
type TestEnvironment struct {
	Dir  string
	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment with an empty Dir
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewAferoFS(afero.NewMemMapFs())
		env.Dir = "/inbox"
	case EnvIsolated:
		env.FS = filesystem.NewOS()
		env.Dir = filepath.Join(t.TempDir(), "inbox")
	default:
		t.Fatalf("unknown environment type: %d", envType)
	}

	if err := env.FS.MkdirAll(env.Dir, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", env.Dir, err)
	}
	return env
}

// Path returns the absolute path of a path relative to Dir
func (e *TestEnvironment) Path(rel ...string) string {
	return filepath.Join(append([]string{e.Dir}, rel...)...)
}

// AddFile writes a file relative to Dir and sets its modification time
func (e *TestEnvironment) AddFile(rel, content string, mtime time.Time) string {
	e.t.Helper()

	path := e.Path(rel)
	if err := e.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := e.FS.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write %s: %v", path, err)
	}
	if err := e.FS.Chtimes(path, mtime, mtime); err != nil {
		e.t.Fatalf("failed to set times on %s: %v", path, err)
	}
	return path
}

// AddDir creates a directory relative to Dir
func (e *TestEnvironment) AddDir(rel string) string {
	e.t.Helper()

	path := e.Path(rel)
	if err := e.FS.MkdirAll(path, 0755); err != nil {
		e.t.Fatalf("failed to create %s: %v", path, err)
	}
	return path
}

// Exists reports whether a path relative to Dir exists
func (e *TestEnvironment) Exists(rel ...string) bool {
	e.t.Helper()

	_, err := e.FS.Lstat(e.Path(rel...))
	if err == nil {
		return true
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		e.t.Fatalf("failed to stat %s: %v", e.Path(rel...), err)
	}
	return false
}

// ReadFile returns the content of a file relative to Dir
func (e *TestEnvironment) ReadFile(rel ...string) string {
	e.t.Helper()

	data, err := e.FS.ReadFile(e.Path(rel...))
	if err != nil {
		e.t.Fatalf("failed to read %s: %v", e.Path(rel...), err)
	}
	return string(data)
}

// ModTime returns the modification time of a path relative to Dir
func (e *TestEnvironment) ModTime(rel ...string) time.Time {
	e.t.Helper()

	info, err := e.FS.Stat(e.Path(rel...))
	if err != nil {
		e.t.Fatalf("failed to stat %s: %v", e.Path(rel...), err)
	}
	return info.ModTime()
}

// Date builds a local-time timestamp at noon, which keeps the calendar
// date stable regardless of the machine's zone.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
}
