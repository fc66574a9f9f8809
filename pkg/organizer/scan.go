package organizer

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dirsort/pkg/errors"
)

// Entry is a regular file found directly inside the organized directory
type Entry struct {
	Name    string
	Path    string
	ModTime time.Time
}

// DateFormat is the layout of date subdirectory names
const DateFormat = "2006-01-02"

// DateFolder returns the date subdirectory name for a modification time,
// using local time.
func DateFolder(t time.Time) string {
	return t.Local().Format(DateFormat)
}

// scan lists the direct children of dir and keeps the regular files.
// Stat follows symlinks, so a link to a regular file counts as a file.
// Entries that vanish or cannot be resolved are skipped; other stat
// failures become failed results.
func (o *Organizer) scan(dir string) ([]Entry, []Result, error) {
	dirEntries, err := o.fs.ReadDir(dir)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrDirRead, "cannot list directory '%s'", dir)
	}

	var entries []Entry
	var failed []Result
	for _, de := range dirEntries {
		name := de.Name()
		path := filepath.Join(dir, name)

		info, err := o.fs.Stat(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				o.logger.Debug().Str("file", name).Msg("Skipping unresolvable entry")
				continue
			}
			wrapped := errors.Wrapf(err, errors.ErrFileStat, "cannot stat '%s'", name)
			o.logger.Error().Err(wrapped).Str("file", name).
				Msgf("Error processing '%s': %v", name, err)
			failed = append(failed, Result{
				Name:   name,
				Source: path,
				Status: StatusFailed,
				Err:    wrapped,
			})
			continue
		}

		if !info.Mode().IsRegular() {
			o.logger.Trace().Str("entry", name).Msg("Skipping non-file entry")
			continue
		}

		entries = append(entries, Entry{
			Name:    name,
			Path:    path,
			ModTime: info.ModTime(),
		})
	}

	return entries, failed, nil
}
