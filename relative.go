package pathname

// RelativeTo returns p expressed relative to the directory base, both
// interpreted in format f. Relative inputs are first made absolute against
// the working directory. See MakeRelative.
func RelativeTo(p, base Path, f Format) (Path, error) {
	return MakeRelative(p, base, f, NormalizeOptions{})
}

// MakeRelative returns p expressed relative to the directory base.
//
// Both paths are normalized with NormAbsolute and NormDots using opts.
// Only the directories of base are used; its leaf is ignored. Paths on
// different volumes have no relative form, and MakeRelative returns a
// *RelativizeError wrapping ErrNoCommonVolume for them.
//
// A directory relative to itself is "." for Posix and DOS, and has no
// directory components at all for Mac and VMS.
func MakeRelative(
	p, base Path, f Format, opts NormalizeOptions,
) (Path, error) {
	f = f.Resolve()
	p.Format, base.Format = f, f
	opts.Flags = NormAbsolute | NormDots

	np, err := Normalize(p, nil, opts)
	if err != nil {
		return Path{}, err
	}
	nb, err := Normalize(base, nil, opts)
	if err != nil {
		return Path{}, err
	}

	cs := f.CaseSensitive()
	if !componentsEqual(np.Volume, nb.Volume, cs) {
		return Path{}, &RelativizeError{
			Path: p.String(),
			Base: base.String(),
			Err:  ErrNoCommonVolume,
		}
	}

	pd, bd := np.Dirs, nb.Dirs
	for len(pd) > 0 && len(bd) > 0 && componentsEqual(pd[0], bd[0], cs) {
		pd, bd = pd[1:], bd[1:]
	}

	dirs := make([]string, 0, len(bd)+len(pd))
	for range bd {
		dirs = append(dirs, "..")
	}
	dirs = append(dirs, pd...)
	if len(dirs) == 0 && np.IsDir() && (f == Posix || f == DOS) {
		dirs = append(dirs, ".")
	}

	np.Dirs = dirs
	np.Relative = true
	np.Volume = ""
	return np, nil
}
