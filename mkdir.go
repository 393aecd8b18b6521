package pathname

import (
	"context"
	"errors"
)

// Mkdir creates the directory named by the directories of p. Its parent
// must already exist. The leaf of p, if any, is ignored; use ParseDir to
// read a whole string as a directory.
//
// The directory mode is obtained from [DirMode](ctx).
//
// Requires: [MkdirFS]
func Mkdir(ctx context.Context, fsys FS, p Path) error {
	dir := dirOf(p)
	name := nameOf(fsys, dir)
	mfs, ok := fsys.(MkdirFS)
	if !ok {
		return &PathError{Op: "mkdir", Path: name, Err: ErrUnsupported}
	}
	Logger(ctx).Debug("mkdir", "path", name)
	return newPathError("mkdir", name, mfs.Mkdir(ctx, name))
}

// MkdirAll creates the directory named by the directories of p along with
// any missing parents. Analogous to: [os.MkdirAll], mkdir -p.
//
// The directories are visited from the outermost in, and each one that
// does not exist yet is created. MkdirAll stops at the first directory it
// fails to create. Directories created before that are left in place.
//
// The directory mode is obtained from [DirMode](ctx).
//
// Requires: [MkdirFS]
func MkdirAll(ctx context.Context, fsys FS, p Path) error {
	mfs, ok := fsys.(MkdirFS)
	if !ok {
		return &PathError{
			Op:   "mkdir",
			Path: nameOf(fsys, dirOf(p)),
			Err:  ErrUnsupported,
		}
	}
	log := Logger(ctx)
	prefix := dirOf(p)
	// Links to directories count as existing directories.
	prefix.NoFollow = false
	for i := range p.Dirs {
		prefix.Dirs = p.Dirs[:i+1]
		if DirExists(ctx, fsys, prefix) {
			continue
		}
		name := nameOf(fsys, prefix)
		log.Debug("mkdir", "path", name)
		err := mfs.Mkdir(ctx, name)
		if errors.Is(err, ErrExist) && DirExists(ctx, fsys, prefix) {
			// Created concurrently.
			continue
		}
		if err != nil {
			return newPathError("mkdir", name, err)
		}
	}
	return nil
}

// dirOf returns p without its leaf.
func dirOf(p Path) Path {
	p.Name, p.Ext, p.HasExt = "", "", false
	return p
}
