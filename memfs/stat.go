package memfs

import (
	"context"
	"time"

	"lesiw.io/pathname"
)

var _ pathname.LstatFS = (*FS)(nil)

// Stat implements pathname.FS. Symbolic links are followed.
func (f *FS) Stat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	return f.stat("stat", name, true)
}

// Lstat implements pathname.LstatFS.
func (f *FS) Lstat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	return f.stat("lstat", name, false)
}

func (f *FS) stat(
	op, name string, follow bool,
) (pathname.FileInfo, error) {
	f.RLock()
	defer f.RUnlock()

	n, err := f.lookup(split(name), follow)
	if err != nil {
		return nil, &pathname.PathError{Op: op, Path: name, Err: err}
	}
	return &fileInfo{node: n}, nil
}

var _ pathname.FileInfo = (*fileInfo)(nil)

type fileInfo struct{ *node }

func (fi *fileInfo) Name() string {
	if fi.node.name == "" {
		return "/"
	}
	return fi.node.name
}

func (fi *fileInfo) Size() int64 {
	if fi.isLink() {
		return int64(len(fi.link))
	}
	return int64(len(fi.data))
}

func (fi *fileInfo) Mode() pathname.Mode { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time  { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool         { return fi.isDir() }
func (fi *fileInfo) Sys() any            { return nil }
