package pathname

import "context"

// Stat returns metadata for the file p names.
// Analogous to: [os.Stat], [os.Lstat], stat.
//
// Symbolic links are followed unless p.NoFollow is set, in which case
// the metadata describes the link itself.
//
// Requires: [FS]; [LstatFS] to see links when p.NoFollow is set
func Stat(ctx context.Context, fsys FS, p Path) (FileInfo, error) {
	name := nameOf(fsys, p)
	var info FileInfo
	var err error
	if p.NoFollow {
		info, err = lstat(ctx, fsys, name)
	} else {
		info, err = fsys.Stat(ctx, name)
	}
	if err != nil {
		return nil, newPathError("stat", name, err)
	}
	return info, nil
}
