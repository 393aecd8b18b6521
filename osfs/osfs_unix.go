//go:build unix

package osfs

import (
	"context"

	"golang.org/x/sys/unix"

	"lesiw.io/pathname"
)

// UnlinkOpen implements pathname.UnlinkOpenFS on Unix systems, where an
// open file outlives its last name.
func (f *FS) UnlinkOpen(ctx context.Context, name string) error {
	path := f.resolvePath(name)
	if err := unix.Unlink(path); err != nil {
		return &pathname.PathError{Op: "unlink", Path: path, Err: err}
	}
	return nil
}

// Mkfifo creates a named pipe. The permission bits are obtained from
// pathname.FileMode(ctx).
func (f *FS) Mkfifo(ctx context.Context, name string) error {
	path := f.resolvePath(name)
	perm := uint32(pathname.FileMode(ctx).Perm())
	if err := unix.Mkfifo(path, perm); err != nil {
		return &pathname.PathError{Op: "mkfifo", Path: path, Err: err}
	}
	return nil
}

// Compile-time interface checks for Unix-specific capabilities
var _ pathname.UnlinkOpenFS = (*FS)(nil)
