package pathname

import "context"

// Symlink creates link as a symbolic link to target.
// Analogous to: [os.Symlink], ln -s.
//
// The target is stored as rendered in the file system's format: a
// relative target stays relative and is resolved from the directory of
// link when followed. The target need not exist.
//
// Requires: [SymlinkFS]
func Symlink(ctx context.Context, fsys FS, target, link Path) error {
	name := nameOf(fsys, link)
	sfs, ok := fsys.(SymlinkFS)
	if !ok {
		return &PathError{Op: "symlink", Path: name, Err: ErrUnsupported}
	}
	dest := Render(target, formatOf(fsys), RenderFull)
	if dest == "" {
		dest = "."
	}
	Logger(ctx).Debug("symlink", "path", name, "target", dest)
	return newPathError("symlink", name, sfs.Symlink(ctx, dest, name))
}
