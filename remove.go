package pathname

import (
	"context"
)

// RmdirFlag controls how much Rmdir removes.
type RmdirFlag uint8

const (
	// RmdirFull removes subdirectories too, as long as they only contain
	// directories.
	RmdirFull RmdirFlag = 1 << iota

	// RmdirRecursive removes files and symbolic links as well. It implies
	// RmdirFull.
	RmdirRecursive
)

// Rmdir removes the directory named by the directories of p. The leaf of
// p, if any, is ignored.
//
// Without flags the directory must be empty. With RmdirFull, Rmdir first
// descends into subdirectories; with RmdirRecursive it also deletes the
// files and links it meets. Symbolic links are never followed: a link to
// a directory is deleted as a link, and if p itself names a link, only
// the link is removed.
//
// Rmdir keeps going after a failure to remove an entry and returns the
// first error met; whatever it removed before stays removed.
//
// Requires: [RemoveFS] && ([ReadDirFS] when descending)
func Rmdir(ctx context.Context, fsys FS, p Path, flags RmdirFlag) error {
	dir := dirOf(p)
	name := nameOf(fsys, dir)
	rfs, ok := fsys.(RemoveFS)
	if !ok {
		return &PathError{Op: "rmdir", Path: name, Err: ErrUnsupported}
	}
	info, err := lstat(ctx, fsys, name)
	if err != nil {
		return newPathError("rmdir", name, err)
	}
	if info.Mode()&ModeSymlink != 0 {
		Logger(ctx).Debug("rmdir: removing link", "path", name)
		return newPathError("rmdir", name, rfs.Remove(ctx, name))
	}
	if !info.IsDir() {
		return &PathError{Op: "rmdir", Path: name, Err: ErrNotDir}
	}
	if flags&RmdirRecursive != 0 {
		flags |= RmdirFull
	}
	if flags&RmdirFull != 0 {
		if err := removeChildren(ctx, fsys, rfs, dir, flags); err != nil {
			return err
		}
	}
	Logger(ctx).Debug("rmdir", "path", name)
	return newPathError("rmdir", name, rfs.Remove(ctx, name))
}

// RemoveAll removes the directory named by the directories of p with
// everything below it. Files are removed only if deleteFiles is set;
// otherwise a directory holding files cannot be removed and RemoveAll
// fails. Analogous to: [os.RemoveAll], rm -r.
//
// Requires: [RemoveFS] && [ReadDirFS]
func RemoveAll(
	ctx context.Context, fsys FS, p Path, deleteFiles bool,
) error {
	flags := RmdirFull
	if deleteFiles {
		flags |= RmdirRecursive
	}
	return Rmdir(ctx, fsys, p, flags)
}

func removeChildren(
	ctx context.Context, fsys FS, rfs RemoveFS, dir Path, flags RmdirFlag,
) error {
	name := nameOf(fsys, dir)
	rdfs, ok := fsys.(ReadDirFS)
	if !ok {
		return &PathError{Op: "rmdir", Path: name, Err: ErrUnsupported}
	}

	// Collect first so that removals do not race the listing.
	var entries []DirEntry
	for entry, err := range rdfs.ReadDir(ctx, name) {
		if err != nil {
			return newPathError("readdir", name, err)
		}
		entries = append(entries, entry)
	}

	log := Logger(ctx)
	var first error
	for _, entry := range entries {
		child := dir.Clone()
		child.Dirs = append(child.Dirs, entry.Name())
		childName := nameOf(fsys, child)

		var err error
		switch {
		case entry.Type()&ModeSymlink == 0 && entry.IsDir():
			err = Rmdir(ctx, fsys, child, flags)
		case flags&RmdirRecursive != 0:
			log.Debug("rmdir: removing entry", "path", childName)
			err = newPathError("remove", childName,
				rfs.Remove(ctx, childName))
		default:
			continue
		}
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}
