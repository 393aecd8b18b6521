// Package billyfs adapts a go-billy filesystem to lesiw.io/pathname.FS.
//
// Names use the Posix format, which billy accepts for both its in-memory
// and OS-backed implementations. Billy takes no contexts; they are only
// consulted for the directory and file modes they carry.
package billyfs

import (
	"context"
	"iter"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"lesiw.io/pathname"
)

// FS wraps a billy.Filesystem.
type FS struct {
	bfs billy.Filesystem
}

// New returns an FS backed by bfs.
func New(bfs billy.Filesystem) *FS { return &FS{bfs: bfs} }

// NewMemory returns an FS backed by a new, empty billy memfs.
func NewMemory() *FS { return New(memfs.New()) }

// NewOS returns an FS backed by the OS filesystem below dir.
func NewOS(dir string) *FS { return New(osfs.New(dir)) }

// Unwrap returns the underlying billy.Filesystem.
func (f *FS) Unwrap() billy.Filesystem { return f.bfs }

// normalize roots a name rendered by pathname at the top of the billy
// filesystem. Excess ".." components stop at the top.
func normalize(name string) string {
	return path.Join("/", name)
}

// Format implements pathname.FormatFS.
func (f *FS) Format() pathname.Format { return pathname.Posix }

// Stat implements pathname.FS.
func (f *FS) Stat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	info, err := f.bfs.Stat(normalize(name))
	return info, wrap("stat", name, err)
}

// Lstat implements pathname.LstatFS.
func (f *FS) Lstat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	info, err := f.bfs.Lstat(normalize(name))
	return info, wrap("lstat", name, err)
}

// ReadLink implements pathname.ReadLinkFS.
func (f *FS) ReadLink(ctx context.Context, name string) (string, error) {
	dest, err := f.bfs.Readlink(normalize(name))
	return dest, wrap("readlink", name, err)
}

// Symlink implements pathname.SymlinkFS.
func (f *FS) Symlink(ctx context.Context, oldname, newname string) error {
	return wrap("symlink", newname, f.bfs.Symlink(oldname, normalize(newname)))
}

// Mkdir implements pathname.MkdirFS. Billy only offers MkdirAll, so the
// name must be free and its parent must be an existing directory.
func (f *FS) Mkdir(ctx context.Context, name string) error {
	name = normalize(name)
	if _, err := f.bfs.Lstat(name); err == nil {
		return wrap("mkdir", name, pathname.ErrExist)
	}
	if parent := path.Dir(name); parent != "/" {
		info, err := f.bfs.Stat(parent)
		if err != nil {
			return wrap("mkdir", name, err)
		}
		if !info.IsDir() {
			return wrap("mkdir", name, pathname.ErrNotDir)
		}
	}
	return wrap("mkdir", name, f.bfs.MkdirAll(name, pathname.DirMode(ctx)))
}

// Remove implements pathname.RemoveFS.
func (f *FS) Remove(ctx context.Context, name string) error {
	return wrap("remove", name, f.bfs.Remove(normalize(name)))
}

// ReadDir implements pathname.ReadDirFS.
func (f *FS) ReadDir(
	ctx context.Context, name string,
) iter.Seq2[pathname.DirEntry, error] {
	return func(yield func(pathname.DirEntry, error) bool) {
		// Billy's ReadDir returns []fs.FileInfo; convert to DirEntry
		infos, err := f.bfs.ReadDir(normalize(name))
		if err != nil {
			yield(nil, wrap("readdir", name, err))
			return
		}
		for _, info := range infos {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(&dirEntry{info: info}, nil) {
				return
			}
		}
	}
}

// CreateExcl implements pathname.CreateFS.
func (f *FS) CreateExcl(
	ctx context.Context, name string,
) (pathname.File, error) {
	flag := os.O_RDWR | os.O_CREATE | os.O_EXCL
	file, err := f.bfs.OpenFile(normalize(name), flag, pathname.FileMode(ctx))
	if err != nil {
		return nil, wrap("create", name, err)
	}
	return &billyFile{File: file, name: name}, nil
}

// CreateTemp implements pathname.TempFS using billy's TempFile.
func (f *FS) CreateTemp(
	ctx context.Context, dir, prefix string,
) (pathname.File, error) {
	file, err := f.bfs.TempFile(normalize(dir), prefix)
	if err != nil {
		return nil, wrap("createtemp", dir, err)
	}
	name := path.Join(dir, path.Base(file.Name()))
	return &billyFile{File: file, name: name}, nil
}

// billyFile reports the name it was created under.
type billyFile struct {
	billy.File
	name string
}

func (b *billyFile) Name() string { return b.name }

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info pathname.FileInfo
}

func (d *dirEntry) Name() string        { return d.info.Name() }
func (d *dirEntry) IsDir() bool         { return d.info.IsDir() }
func (d *dirEntry) Type() pathname.Mode { return d.info.Mode().Type() }

func (d *dirEntry) Info() (pathname.FileInfo, error) { return d.info, nil }

func wrap(op, name string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*pathname.PathError); ok {
		return err
	}
	return &pathname.PathError{Op: op, Path: name, Err: err}
}

// Compile-time interface checks.
var (
	_ pathname.FormatFS   = (*FS)(nil)
	_ pathname.LstatFS    = (*FS)(nil)
	_ pathname.ReadLinkFS = (*FS)(nil)
	_ pathname.SymlinkFS  = (*FS)(nil)
	_ pathname.MkdirFS    = (*FS)(nil)
	_ pathname.RemoveFS   = (*FS)(nil)
	_ pathname.ReadDirFS  = (*FS)(nil)
	_ pathname.CreateFS   = (*FS)(nil)
	_ pathname.TempFS     = (*FS)(nil)
)
