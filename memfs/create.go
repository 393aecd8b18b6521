package memfs

import (
	"context"
	"time"

	"lesiw.io/pathname"
)

var _ pathname.CreateFS = (*FS)(nil)

// CreateExcl implements pathname.CreateFS. Writes become visible when the
// file is closed.
func (f *FS) CreateExcl(
	ctx context.Context, name string,
) (pathname.File, error) {
	f.Lock()
	defer f.Unlock()

	dir, leaf, err := f.parent(name)
	if err != nil {
		return nil, &pathname.PathError{Op: "create", Path: name, Err: err}
	}
	if _, ok := dir.nodes[leaf]; ok {
		return nil, &pathname.PathError{
			Op: "create", Path: name, Err: pathname.ErrExist,
		}
	}
	n := &node{
		name:    leaf,
		mode:    pathname.FileMode(ctx),
		modTime: time.Now(),
	}
	dir.nodes[leaf] = n
	return &writer{fs: f, node: n, name: name}, nil
}

// Mknod creates a special file of the given type, such as
// pathname.ModeNamedPipe or pathname.ModeSocket. The permission bits are
// obtained from pathname.FileMode(ctx).
func (f *FS) Mknod(
	ctx context.Context, name string, typ pathname.Mode,
) error {
	f.Lock()
	defer f.Unlock()

	dir, leaf, err := f.parent(name)
	if err != nil {
		return &pathname.PathError{Op: "mknod", Path: name, Err: err}
	}
	if _, ok := dir.nodes[leaf]; ok {
		return &pathname.PathError{
			Op: "mknod", Path: name, Err: pathname.ErrExist,
		}
	}
	dir.nodes[leaf] = &node{
		name:    leaf,
		mode:    typ&pathname.ModeType | pathname.FileMode(ctx),
		modTime: time.Now(),
	}
	return nil
}
