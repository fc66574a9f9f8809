package organizer

import (
	stderrors "errors"
	"io"
	"syscall"

	"github.com/arthur-debert/dirsort/pkg/errors"
	"github.com/arthur-debert/dirsort/pkg/types"
)

// moveFile renames src to dst. When the two paths are on different
// devices it falls back to copying the file (content, permissions and
// modification time) and removing the source.
func moveFile(fsys types.FS, src, dst string) error {
	err := fsys.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, syscall.EXDEV) {
		return errors.Wrapf(err, errors.ErrFileMove, "cannot move %s to %s", src, dst)
	}

	if err := copyFile(fsys, src, dst); err != nil {
		return errors.Wrapf(err, errors.ErrFileMove, "cannot copy %s to %s", src, dst)
	}
	if err := fsys.Remove(src); err != nil {
		return errors.Wrapf(err, errors.ErrFileMove, "copied to %s but cannot remove %s", dst, src)
	}
	return nil
}

// copyFile streams src to dst, keeping the mode and modification time.
// A partial dst is removed on failure.
func copyFile(fsys types.FS, src, dst string) (err error) {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}

	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fsys.Create(dst, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = fsys.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}

	return fsys.Chtimes(dst, info.ModTime(), info.ModTime())
}
