package pathname

import "context"

// ExistFlag selects the kinds of file Exists accepts.
type ExistFlag uint8

const (
	ExistsFile    ExistFlag = 1 << iota // regular file
	ExistsDir                           // directory
	ExistsSymlink                       // symbolic link, never followed
	ExistsDevice                        // block or character device
	ExistsFIFO                          // named pipe
	ExistsSocket                        // Unix domain socket

	// ExistsAny accepts anything that can be stat'ed.
	ExistsAny ExistFlag = 0xff
)

// Exists reports whether p names a file of one of the given kinds.
//
// Exists stats p once. Symbolic links are followed unless p.NoFollow is
// set or kinds asks for ExistsSymlink specifically, in which case a link
// is seen as itself. Any failure, including a missing file, reports false.
func Exists(ctx context.Context, fsys FS, p Path, kinds ExistFlag) bool {
	name := nameOf(fsys, p)
	var info FileInfo
	var err error
	if p.NoFollow || kinds != ExistsAny && kinds&ExistsSymlink != 0 {
		info, err = lstat(ctx, fsys, name)
	} else {
		info, err = fsys.Stat(ctx, name)
	}
	if err != nil {
		return false
	}
	if kinds == ExistsAny {
		return true
	}
	return kinds&kindOf(info.Mode()) != 0
}

// FileExists reports whether p names a regular file.
func FileExists(ctx context.Context, fsys FS, p Path) bool {
	return Exists(ctx, fsys, p, ExistsFile)
}

// DirExists reports whether p, read as a directory, names one.
func DirExists(ctx context.Context, fsys FS, p Path) bool {
	return Exists(ctx, fsys, asDir(p), ExistsDir)
}

func kindOf(mode Mode) ExistFlag {
	switch {
	case mode.IsRegular():
		return ExistsFile
	case mode.IsDir():
		return ExistsDir
	case mode&ModeSymlink != 0:
		return ExistsSymlink
	case mode&ModeDevice != 0, mode&ModeCharDevice != 0:
		return ExistsDevice
	case mode&ModeNamedPipe != 0:
		return ExistsFIFO
	case mode&ModeSocket != 0:
		return ExistsSocket
	}
	return 0
}

// asDir moves the leaf of p, if any, into its directories.
func asDir(p Path) Path {
	if p.IsDir() {
		return p
	}
	q := p.Clone()
	q.Dirs = append(q.Dirs, q.FullName())
	q.Name, q.Ext, q.HasExt = "", "", false
	return q
}

// ResolveLink reads the symbolic link p names and returns its target as a
// path, made absolute against the link's directory when the target is
// relative. Only one link is followed; the target may itself be a link.
//
// Requires: [ReadLinkFS]
func ResolveLink(ctx context.Context, fsys FS, p Path) (Path, error) {
	name := nameOf(fsys, p)
	rfs, ok := fsys.(ReadLinkFS)
	if !ok {
		return Path{}, &PathError{
			Op: "readlink", Path: name, Err: ErrUnsupported,
		}
	}
	dest, err := rfs.ReadLink(ctx, name)
	if err != nil {
		return Path{}, newPathError("readlink", name, err)
	}
	f := formatOf(fsys)
	target := Parse(dest, f)
	target.NoFollow = p.NoFollow
	if !target.Relative {
		return target, nil
	}
	joined := p.Clone()
	joined.Format = f
	joined.Dirs = append(joined.Dirs, target.Dirs...)
	joined.Name, joined.Ext, joined.HasExt =
		target.Name, target.Ext, target.HasExt
	return dotsPass(joined), nil
}
