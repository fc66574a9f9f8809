package organizer

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dirsort/pkg/errors"
	"github.com/arthur-debert/dirsort/pkg/rules"
	"github.com/arthur-debert/dirsort/pkg/types"
)

// ConflictPolicy decides what happens when the destination file exists
type ConflictPolicy string

const (
	// ConflictSkip leaves the source in place and records a failure
	ConflictSkip ConflictPolicy = "skip"
	// ConflictRename moves the source to the first free stem_N.ext name
	ConflictRename ConflictPolicy = "rename"
)

// maxRenameAttempts bounds the stem_N.ext search
const maxRenameAttempts = 999

// ParseConflictPolicy validates a policy name
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch p := ConflictPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case ConflictSkip, ConflictRename:
		return p, nil
	case "":
		return ConflictSkip, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput,
			"unknown conflict policy %q (want %q or %q)", s, ConflictSkip, ConflictRename)
	}
}

// resolveDestination applies the conflict policy to dir/name
func resolveDestination(fsys types.FS, policy ConflictPolicy, dir, name string) (string, error) {
	dest := filepath.Join(dir, name)
	exists, err := pathExists(fsys, dest)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileStat, "cannot check destination %s", dest)
	}
	if !exists {
		return dest, nil
	}

	if policy != ConflictRename {
		return "", errors.Newf(errors.ErrDestinationExists,
			"destination %s already exists", dest).
			WithDetail("destination", dest)
	}

	stem, ext := splitName(name)
	for i := 1; i <= maxRenameAttempts; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		exists, err := pathExists(fsys, candidate)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFileStat, "cannot check destination %s", candidate)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", errors.Newf(errors.ErrDestinationExists,
		"no free name for %s after %d attempts", dest, maxRenameAttempts).
		WithDetail("destination", dest)
}

func pathExists(fsys types.FS, path string) (bool, error) {
	_, err := fsys.Lstat(path)
	if err == nil {
		return true, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// splitName splits a file name into stem and extension, keeping the
// original case of both.
func splitName(name string) (string, string) {
	ext := rules.Extension(name)
	if ext == "" {
		return name, ""
	}
	return name[:len(name)-len(ext)], name[len(name)-len(ext):]
}
