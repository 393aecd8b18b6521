// Package osfs implements lesiw.io/pathname.FS using the os package.
//
// Names are rendered in the native format. Relative names are resolved
// against the root the filesystem was created with; absolute names are
// used as given.
//
// # Context Handling
//
// The operations in lesiw.io/pathname take a context.Context so that
// remote filesystems can honor cancelation. osfs uses the local os
// package, so contexts are only consulted for the directory and file
// modes they carry.
package osfs

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	"lesiw.io/pathname"
)

// FS implements lesiw.io/pathname.FS using the OS filesystem.
//
// FS also implements io.Closer. If the filesystem was created with an
// empty root (which creates a temporary directory), Close() will remove
// the temporary directory.
type FS struct {
	root      string
	cleanupFn func() error
}

// New creates a new OS filesystem rooted at the specified directory.
//
// If root is empty (""), a temporary directory is created and the
// filesystem is rooted there. Call Close() to remove the temporary
// directory when done.
//
// If root is ".", it uses the current working directory.
func New(root string) (*FS, error) {
	var cleanupFn func() error

	if root == "" {
		var err error
		root, err = os.MkdirTemp("", "osfs-*")
		if err != nil {
			return nil, fmt.Errorf("creating temp directory: %w", err)
		}
		cleanupFn = func() error {
			return os.RemoveAll(root)
		}
	} else if root == "." {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	return &FS{root: root, cleanupFn: cleanupFn}, nil
}

// Root returns the directory relative names are resolved against.
func (f *FS) Root() string { return f.root }

// resolvePath converts a name to an OS path.
func (f *FS) resolvePath(name string) string {
	name = filepath.Clean(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(f.root, name)
}

// Format implements pathname.FormatFS.
func (f *FS) Format() pathname.Format { return pathname.Native }

// Stat implements pathname.FS.
func (f *FS) Stat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	info, err := os.Stat(f.resolvePath(name))
	return info, translate(err)
}

// Lstat implements pathname.LstatFS.
func (f *FS) Lstat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	info, err := os.Lstat(f.resolvePath(name))
	return info, translate(err)
}

// ReadDir implements pathname.ReadDirFS.
func (f *FS) ReadDir(
	ctx context.Context, name string,
) iter.Seq2[pathname.DirEntry, error] {
	return func(yield func(pathname.DirEntry, error) bool) {
		entries, err := os.ReadDir(f.resolvePath(name))
		if err != nil {
			yield(nil, translate(err))
			return
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}

// Remove implements pathname.RemoveFS.
func (f *FS) Remove(ctx context.Context, name string) error {
	return translate(os.Remove(f.resolvePath(name)))
}

// Mkdir implements pathname.MkdirFS.
func (f *FS) Mkdir(ctx context.Context, name string) error {
	perm := pathname.DirMode(ctx)
	return translate(os.Mkdir(f.resolvePath(name), perm))
}

// CreateExcl implements pathname.CreateFS.
func (f *FS) CreateExcl(
	ctx context.Context, name string,
) (pathname.File, error) {
	perm := pathname.FileMode(ctx)
	flag := os.O_RDWR | os.O_CREATE | os.O_EXCL
	file, err := os.OpenFile(f.resolvePath(name), flag, perm)
	if err != nil {
		return nil, translate(err)
	}
	return &osFile{File: file, name: name}, nil
}

// CreateTemp implements pathname.TempFS. The returned file is named
// relative to the root when dir is.
func (f *FS) CreateTemp(
	ctx context.Context, dir, prefix string,
) (pathname.File, error) {
	file, err := os.CreateTemp(f.resolvePath(dir), prefix+"*")
	if err != nil {
		return nil, translate(err)
	}
	if err := file.Chmod(pathname.FileMode(ctx)); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return nil, err
	}
	name := file.Name()
	if !filepath.IsAbs(filepath.Clean(dir)) {
		name = filepath.Join(dir, filepath.Base(name))
	}
	return &osFile{File: file, name: name}, nil
}

// Symlink implements pathname.SymlinkFS.
func (f *FS) Symlink(ctx context.Context, oldname, newname string) error {
	// oldname is the link target, not a path in this filesystem,
	// so we don't resolve it
	return translate(os.Symlink(oldname, f.resolvePath(newname)))
}

// ReadLink implements pathname.ReadLinkFS.
func (f *FS) ReadLink(ctx context.Context, name string) (string, error) {
	dest, err := os.Readlink(f.resolvePath(name))
	return dest, translate(err)
}

// Close removes the temporary directory if this filesystem was created
// with New(""). Otherwise Close does nothing and returns nil.
//
// Close implements io.Closer.
func (f *FS) Close() error {
	if f.cleanupFn != nil {
		return f.cleanupFn()
	}
	return nil
}

// osFile reports the name it was created under rather than the OS path.
type osFile struct {
	*os.File
	name string
}

func (o *osFile) Name() string { return o.name }

// Compile-time interface checks
var (
	_ pathname.FS         = (*FS)(nil)
	_ pathname.FormatFS   = (*FS)(nil)
	_ pathname.LstatFS    = (*FS)(nil)
	_ pathname.CreateFS   = (*FS)(nil)
	_ pathname.TempFS     = (*FS)(nil)
	_ pathname.RemoveFS   = (*FS)(nil)
	_ pathname.MkdirFS    = (*FS)(nil)
	_ pathname.ReadDirFS  = (*FS)(nil)
	_ pathname.SymlinkFS  = (*FS)(nil)
	_ pathname.ReadLinkFS = (*FS)(nil)
	_ io.Closer           = (*FS)(nil)
)
