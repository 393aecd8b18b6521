package osfs

import (
	"errors"
	"syscall"

	"lesiw.io/pathname"
)

// errNotDir is the underlying syscall error for "not a directory".
// translate maps it to pathname.ErrNotDir.
var errNotDir error = syscall.ENOTDIR

// translate rewrites OS errors that pathname reports with its own
// sentinels. Other errors are returned unchanged.
func translate(err error) error {
	if err == nil || !errors.Is(err, errNotDir) {
		return err
	}
	var pe *pathname.PathError
	if errors.As(err, &pe) {
		return &pathname.PathError{
			Op: pe.Op, Path: pe.Path, Err: pathname.ErrNotDir,
		}
	}
	return pathname.ErrNotDir
}
