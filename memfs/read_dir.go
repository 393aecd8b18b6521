package memfs

import (
	"context"
	"iter"
	"slices"
	"strings"

	"lesiw.io/pathname"
)

var _ pathname.ReadDirFS = (*FS)(nil)

// ReadDir implements pathname.ReadDirFS. Entries are yielded in name
// order.
func (f *FS) ReadDir(
	ctx context.Context, name string,
) iter.Seq2[pathname.DirEntry, error] {
	return func(yield func(pathname.DirEntry, error) bool) {
		// Snapshot entries while holding lock
		f.RLock()

		n, err := f.lookup(split(name), true)
		if err == nil && !n.isDir() {
			err = pathname.ErrNotDir
		}
		if err != nil {
			f.RUnlock()
			yield(nil, &pathname.PathError{
				Op: "readdir", Path: name, Err: err,
			})
			return
		}

		entries := make([]*dirEntry, 0, len(n.nodes))
		for _, child := range n.nodes {
			entries = append(entries, &dirEntry{
				name: child.name,
				typ:  child.mode.Type(),
				info: &fileInfo{node: child},
			})
		}
		f.RUnlock()

		slices.SortFunc(entries, func(a, b *dirEntry) int {
			return strings.Compare(a.name, b.name)
		})

		// Yield entries without holding lock
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

// dirEntry implements pathname.DirEntry.
type dirEntry struct {
	name string
	typ  pathname.Mode
	info pathname.FileInfo
}

func (de *dirEntry) Name() string        { return de.name }
func (de *dirEntry) IsDir() bool         { return de.typ.IsDir() }
func (de *dirEntry) Type() pathname.Mode { return de.typ }

func (de *dirEntry) Info() (pathname.FileInfo, error) {
	return de.info, nil
}
