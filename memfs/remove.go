package memfs

import (
	"context"

	"lesiw.io/pathname"
)

var _ pathname.RemoveFS = (*FS)(nil)

// Remove implements pathname.RemoveFS.
func (f *FS) Remove(ctx context.Context, name string) error {
	f.Lock()
	defer f.Unlock()

	dir, leaf, err := f.parent(name)
	if err != nil {
		return &pathname.PathError{Op: "remove", Path: name, Err: err}
	}

	n, ok := dir.nodes[leaf]
	if !ok {
		return &pathname.PathError{
			Op: "remove", Path: name, Err: pathname.ErrNotExist,
		}
	}
	if n.isDir() && len(n.nodes) > 0 {
		return &pathname.PathError{
			Op: "remove", Path: name, Err: errDirNotEmpty,
		}
	}

	delete(dir.nodes, leaf)
	return nil
}
