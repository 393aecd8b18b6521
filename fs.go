// Package pathname provides structured file paths in several syntaxes
// and the directory operations built on top of them.
//
// A [Path] holds a volume, a list of directories and a leaf split into
// name and extension. [Parse] builds one from a string in a given
// [Format] (Posix, DOS, classic Mac or VMS) and [Render] writes it back
// out, in the same format or a different one:
//
//	p := pathname.Parse(`C:\Users\me\notes.txt`, pathname.DOS)
//	p.AppendDir("archive")
//	fmt.Println(p) // C:\Users\me\archive\notes.txt
//
// Path operations are lexical. [Normalize] expands environment variables
// and ~, makes paths absolute and removes dot components; [RelativeTo]
// expresses one path relative to another. Neither touches a filesystem.
//
// # Filesystem Operations
//
// [Exists], [Mkdir], [MkdirAll], [Rmdir], [RemoveAll], [CreateTemp],
// [Stat], [Symlink] and [ResolveLink] work against an [FS]. The core
// interface requires only Stat. All other capabilities are optional and
// discovered through type assertions; an operation whose capability is
// missing fails with an error matching [ErrUnsupported], or falls back to
// a slower strategy where one exists. Each function documents what it
// requires.
//
// Every operation accepts a context.Context as the first parameter. The
// context carries the modes of created directories and files
// ([WithDirMode], [WithFileMode]) and the logger operations report to
// ([WithLogger]).
//
// Paths are rendered in the format the FS reports through [FormatFS], or
// Posix when it does not implement it.
//
// # Implementations
//
// Subpackages implement FS over several backends:
//
//   - memfs keeps an in-memory tree.
//   - osfs uses the local disk.
//   - billyfs adapts a go-billy filesystem.
//   - sftpfs, webdavfs and smbfs reach remote servers.
//   - s3fs stores directories and files as objects in a bucket.
//   - httpfs answers existence checks from a static file server.
//
// The fstest subpackage checks an implementation against the operations
// of this package.
package pathname

import (
	"context"
	"io"
	"io/fs"
	"iter"
)

// An FS is the filesystem collaborator consumed by the operations in this
// package. Only Stat is required; every other capability is optional and
// discovered through type assertions.
//
// Names passed to an FS are rendered in the format reported by
// [FormatFS], or Posix when the FS does not implement it.
type FS interface {
	// Stat returns metadata for the named file, following symbolic
	// links.
	Stat(ctx context.Context, name string) (FileInfo, error)
}

// A FormatFS is a file system that names files in a particular Format.
type FormatFS interface {
	FS
	Format() Format
}

// An LstatFS is a file system that can stat symbolic links themselves.
type LstatFS interface {
	FS

	// Lstat returns metadata for the named file. If the file is a
	// symbolic link, the metadata describes the link.
	Lstat(ctx context.Context, name string) (FileInfo, error)
}

// A ReadLinkFS is a file system with the ReadLink method.
type ReadLinkFS interface {
	FS

	// ReadLink returns the destination of the named symbolic link
	// without resolving it.
	ReadLink(ctx context.Context, name string) (string, error)
}

// A SymlinkFS is a file system with the Symlink method.
type SymlinkFS interface {
	FS

	// Symlink creates newname as a symbolic link to oldname.
	Symlink(ctx context.Context, oldname, newname string) error
}

// A MkdirFS is a file system with the Mkdir method.
type MkdirFS interface {
	FS

	// Mkdir creates a single directory whose parent exists.
	//
	// The directory mode is obtained from DirMode(ctx).
	Mkdir(ctx context.Context, name string) error
}

// A RemoveFS is a file system with the Remove method.
type RemoveFS interface {
	FS

	// Remove removes the named file, symbolic link or empty directory.
	// A symbolic link is removed itself, never its target.
	Remove(ctx context.Context, name string) error
}

// A ReadDirFS is a file system with the ReadDir method.
type ReadDirFS interface {
	FS

	// ReadDir returns an iterator over the entries of the named
	// directory. Entry types describe the entries themselves: a symbolic
	// link is reported as a link, not as its target.
	ReadDir(ctx context.Context, name string) iter.Seq2[DirEntry, error]
}

// A CreateFS is a file system that can create files exclusively.
type CreateFS interface {
	FS

	// CreateExcl creates and opens the named file for writing. It fails
	// with an error matching ErrExist if the name is taken.
	//
	// The file mode is obtained from FileMode(ctx).
	CreateExcl(ctx context.Context, name string) (File, error)
}

// A TempFS is a file system that creates uniquely named files atomically.
type TempFS interface {
	FS

	// CreateTemp creates and opens a new file in dir whose name starts
	// with prefix. Choosing the name and creating the file happen in one
	// step, so no other caller can obtain the same name.
	//
	// An implementation that cannot do this should return
	// ErrUnsupported to trigger the fallback behavior.
	CreateTemp(ctx context.Context, dir, prefix string) (File, error)
}

// An UnlinkOpenFS is a file system on which a file may be unlinked while
// it is still open, the open handle staying usable until closed.
type UnlinkOpenFS interface {
	FS

	// UnlinkOpen removes the name of a file the caller holds open.
	UnlinkOpen(ctx context.Context, name string) error
}

// A File is an open, writable file created by a collaborator.
type File interface {
	io.WriteCloser

	// Name returns the name the file was created under.
	Name() string
}

// DirEntry describes a directory entry.
type DirEntry = fs.DirEntry

// A FileInfo describes a file and is returned by Stat.
type FileInfo = fs.FileInfo

// A Mode represents a file's mode and permission bits.
type Mode = fs.FileMode

// Valid values for [Mode].
const (
	ModeDir        = fs.ModeDir
	ModeSymlink    = fs.ModeSymlink
	ModeDevice     = fs.ModeDevice
	ModeCharDevice = fs.ModeCharDevice
	ModeNamedPipe  = fs.ModeNamedPipe
	ModeSocket     = fs.ModeSocket
	ModeIrregular  = fs.ModeIrregular
	ModeType       = fs.ModeType
	ModePerm       = fs.ModePerm
)

// formatOf returns the format fsys names files in.
func formatOf(fsys FS) Format {
	if ffs, ok := fsys.(FormatFS); ok {
		return ffs.Format().Resolve()
	}
	return Posix
}

// nameOf renders p for fsys.
func nameOf(fsys FS, p Path) string {
	name := Render(p, formatOf(fsys), RenderVolume|RenderName)
	if name == "" {
		return "."
	}
	return name
}

func lstat(ctx context.Context, fsys FS, name string) (FileInfo, error) {
	if lfs, ok := fsys.(LstatFS); ok {
		return lfs.Lstat(ctx, name)
	}
	return fsys.Stat(ctx, name)
}
