package memfs

import (
	"context"
	"time"

	"lesiw.io/pathname"
)

var (
	_ pathname.SymlinkFS  = (*FS)(nil)
	_ pathname.ReadLinkFS = (*FS)(nil)
)

// Symlink implements pathname.SymlinkFS. The target is stored as given
// and need not exist.
func (f *FS) Symlink(ctx context.Context, oldname, newname string) error {
	f.Lock()
	defer f.Unlock()

	dir, leaf, err := f.parent(newname)
	if err != nil {
		return &pathname.PathError{Op: "symlink", Path: newname, Err: err}
	}
	if _, ok := dir.nodes[leaf]; ok {
		return &pathname.PathError{
			Op: "symlink", Path: newname, Err: pathname.ErrExist,
		}
	}
	dir.nodes[leaf] = &node{
		name:    leaf,
		mode:    pathname.ModeSymlink | 0777,
		modTime: time.Now(),
		link:    oldname,
	}
	return nil
}

// ReadLink implements pathname.ReadLinkFS.
func (f *FS) ReadLink(ctx context.Context, name string) (string, error) {
	f.RLock()
	defer f.RUnlock()

	n, err := f.lookup(split(name), false)
	if err != nil {
		return "", &pathname.PathError{Op: "readlink", Path: name, Err: err}
	}
	if !n.isLink() {
		return "", &pathname.PathError{
			Op: "readlink", Path: name, Err: pathname.ErrInvalid,
		}
	}
	return n.link, nil
}
