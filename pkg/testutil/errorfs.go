package testutil

import (
	"io"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/dirsort/pkg/types"
)

// Op names an FS operation that ErrorFS can fail
type Op string

const (
	OpStat     Op = "stat"
	OpMkdirAll Op = "mkdirall"
	OpReadDir  Op = "readdir"
	OpRename   Op = "rename"
	OpRemove   Op = "remove"
	OpCreate   Op = "create"
)

// ErrorFS wraps a types.FS and returns injected errors for chosen
// operation/path pairs. Paths are matched after filepath.Clean; for
// Rename the source path is matched.
type ErrorFS struct {
	types.FS

	mu     sync.Mutex
	errors map[Op]map[string]error
	calls  map[Op]int
}

// NewErrorFS wraps base
func NewErrorFS(base types.FS) *ErrorFS {
	return &ErrorFS{
		FS:     base,
		errors: make(map[Op]map[string]error),
		calls:  make(map[Op]int),
	}
}

// WithError makes op fail with err for path
func (e *ErrorFS) WithError(op Op, path string, err error) *ErrorFS {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.errors[op] == nil {
		e.errors[op] = make(map[string]error)
	}
	e.errors[op][filepath.Clean(path)] = err
	return e
}

// Calls returns how many times op was invoked
func (e *ErrorFS) Calls(op Op) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[op]
}

func (e *ErrorFS) check(op Op, path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls[op]++
	return e.errors[op][filepath.Clean(path)]
}

func (e *ErrorFS) Stat(name string) (fs.FileInfo, error) {
	if err := e.check(OpStat, name); err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	return e.FS.Stat(name)
}

func (e *ErrorFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := e.check(OpMkdirAll, path); err != nil {
		return &fs.PathError{Op: "mkdir", Path: path, Err: err}
	}
	return e.FS.MkdirAll(path, perm)
}

func (e *ErrorFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := e.check(OpReadDir, name); err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}
	return e.FS.ReadDir(name)
}

func (e *ErrorFS) Rename(oldpath, newpath string) error {
	if err := e.check(OpRename, oldpath); err != nil {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: err}
	}
	return e.FS.Rename(oldpath, newpath)
}

func (e *ErrorFS) Remove(name string) error {
	if err := e.check(OpRemove, name); err != nil {
		return &fs.PathError{Op: "remove", Path: name, Err: err}
	}
	return e.FS.Remove(name)
}

func (e *ErrorFS) Create(name string, perm fs.FileMode) (io.WriteCloser, error) {
	if err := e.check(OpCreate, name); err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return e.FS.Create(name, perm)
}
