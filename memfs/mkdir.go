package memfs

import (
	"context"
	"time"

	"lesiw.io/pathname"
)

var _ pathname.MkdirFS = (*FS)(nil)

// Mkdir implements pathname.MkdirFS.
func (f *FS) Mkdir(ctx context.Context, name string) error {
	f.Lock()
	defer f.Unlock()

	dir, leaf, err := f.parent(name)
	if err != nil {
		return &pathname.PathError{Op: "mkdir", Path: name, Err: err}
	}
	if _, exists := dir.nodes[leaf]; exists {
		return &pathname.PathError{
			Op: "mkdir", Path: name, Err: pathname.ErrExist,
		}
	}

	dir.nodes[leaf] = &node{
		name:    leaf,
		mode:    pathname.DirMode(ctx) | pathname.ModeDir,
		modTime: time.Now(),
		nodes:   make(map[string]*node),
	}
	return nil
}
