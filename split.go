package pathname

import (
	"strings"
)

const (
	uniqueVolumePrefix = `\\?\`
	uniqueVolumeName   = `Volume{`
)

// Parse splits raw into a structured path using the rules of format f.
//
// Parse never fails. Input it cannot make sense of ends up as directory
// components with no volume. Use ParseStrict to reject malformed UNC and
// unique-volume prefixes instead.
//
// For any raw without a UNC or unique-volume prefix,
// Render(Parse(raw, f), f, RenderFull) == raw.
func Parse(raw string, f Format) Path {
	f = f.Resolve()
	vol, rest := SplitVolume(raw, f)
	p := splitPath(rest, f)
	p.Format = f
	p.Volume = vol
	if vol != "" && (f == DOS || f == VMS) {
		p.Relative = false
	}
	return p
}

// ParseDir is like Parse but treats all of raw as a directory, so that
// "a/b" yields the directories a and b and no leaf.
func ParseDir(raw string, f Format) Path {
	p := Parse(raw, f)
	if full := p.FullName(); full != "" {
		p.Dirs = append(p.Dirs, full)
	}
	p.Name, p.Ext, p.HasExt = "", "", false
	return p
}

// ParseStrict is like Parse but returns a *ParseError wrapping
// ErrMalformedVolume when raw starts with a DOS network prefix that does
// not name a server or a unique volume.
func ParseStrict(raw string, f Format) (Path, error) {
	f = f.Resolve()
	if f == DOS {
		if err := checkNetworkPrefix(raw); err != nil {
			return Path{}, &ParseError{Raw: raw, Format: f, Err: err}
		}
	}
	return Parse(raw, f), nil
}

func checkNetworkPrefix(raw string) error {
	if strings.HasPrefix(raw, uniqueVolumePrefix) {
		if _, _, ok := cutUniqueVolume(raw); !ok {
			return ErrMalformedVolume
		}
		return nil
	}
	if len(raw) >= 2 && DOS.IsSeparator(raw[0]) && DOS.IsSeparator(raw[1]) {
		if len(raw) < 3 || DOS.IsSeparator(raw[2]) {
			return ErrMalformedVolume
		}
	}
	return nil
}

// SplitVolume separates the volume from the rest of raw.
//
// For DOS, unique volume names (\\?\Volume{guid}\...) become the volume
// "Volume{guid}" and UNC paths (\\server\share\...) become the volume
// "server" with the share as the first directory. Otherwise the volume is
// whatever precedes the first volume separator, unless that separator is
// the first character or the candidate contains a path separator.
func SplitVolume(raw string, f Format) (volume, rest string) {
	f = f.Resolve()
	if f == DOS {
		if vol, tail, ok := cutUniqueVolume(raw); ok {
			return vol, tail
		}
		if isUNC(raw) {
			return cutUNC(raw)
		}
	}
	sep := f.VolumeSeparator()
	if sep == "" {
		return "", raw
	}
	i := strings.Index(raw, sep)
	if i <= 0 {
		return "", raw
	}
	if strings.ContainsAny(raw[:i], f.Separators()) && f != VMS {
		return "", raw
	}
	if f == VMS && strings.ContainsAny(raw[:i], "[]") {
		return "", raw
	}
	return raw[:i], raw[i+len(sep):]
}

// cutUniqueVolume matches \\?\Volume{...} followed by a separator or the
// end of raw. The returned tail keeps that separator.
func cutUniqueVolume(raw string) (vol, tail string, ok bool) {
	s, found := strings.CutPrefix(raw, uniqueVolumePrefix)
	if !found || !strings.HasPrefix(s, uniqueVolumeName) {
		return "", "", false
	}
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return "", "", false
	}
	vol, tail = s[:end+1], s[end+1:]
	if tail != "" && !DOS.IsSeparator(tail[0]) {
		return "", "", false
	}
	if strings.ContainsAny(vol, DOS.Separators()) {
		return "", "", false
	}
	return vol, tail, true
}

func isUNC(raw string) bool {
	return len(raw) >= 4 &&
		DOS.IsSeparator(raw[0]) && DOS.IsSeparator(raw[1]) &&
		!DOS.IsSeparator(raw[2])
}

// cutUNC turns \\server\share\x into ("server", `\share\x`).
// A bare \\server is rooted at the server.
func cutUNC(raw string) (vol, tail string) {
	s := raw[2:]
	i := strings.IndexAny(s, DOS.Separators())
	if i < 0 {
		return s, `\`
	}
	return s[:i], s[i:]
}

// splitPath decomposes the part of a path that follows the volume.
func splitPath(rest string, f Format) Path {
	var p Path
	dirPart, leaf := rest, ""
	if i := lastTerminator(rest, f); i >= 0 {
		dirPart, leaf = rest[:i+1], rest[i+1:]
	} else {
		dirPart, leaf = "", rest
	}
	p.Relative = isRelative(dirPart, f)
	p.Dirs = splitDirs(dirPart, p.Relative, f)
	p.Name, p.Ext, p.HasExt = splitExt(leaf)
	if f == Posix && p.Relative &&
		(rest == "~" || strings.HasPrefix(rest, "~/")) {
		// ~ names the home directory, which is absolute. ~user stays
		// relative until expanded, so "/~user" keeps its slash.
		p.Relative = false
	}
	return p
}

func lastTerminator(s string, f Format) int {
	for i := len(s) - 1; i >= 0; i-- {
		if f.isTerminator(s[i]) {
			return i
		}
	}
	return -1
}

func isRelative(dirPart string, f Format) bool {
	switch f {
	case VMS:
		return false
	case Mac:
		// Mac inverts the rule: a leading colon marks a relative path.
		return dirPart == "" || dirPart[0] == ':'
	}
	return dirPart == "" || !f.IsSeparator(dirPart[0])
}

func splitDirs(dirPart string, relative bool, f Format) []string {
	var dirs []string
	switch f {
	case VMS:
		s := strings.TrimPrefix(dirPart, "[")
		s = strings.TrimSuffix(s, "]")
		for tok := range strings.SplitSeq(s, ".") {
			if tok != "" {
				dirs = append(dirs, tok)
			}
		}
	case Mac:
		if dirPart == "" {
			return nil
		}
		s := dirPart
		if relative {
			s = s[1:]
		}
		// Every directory is followed by a colon, so the element after
		// the last one is always empty and is not a directory.
		toks := strings.Split(s, ":")
		for _, tok := range toks[:len(toks)-1] {
			if tok == "" {
				tok = ".."
			}
			dirs = append(dirs, tok)
		}
	default:
		toks := strings.FieldsFunc(dirPart, func(r rune) bool {
			return r < 0x80 && f.IsSeparator(byte(r))
		})
		dirs = append(dirs, toks...)
	}
	return dirs
}

// splitExt splits a leaf at its last dot. A leading dot belongs to the
// name, and the leaves "." and ".." have no extension.
func splitExt(leaf string) (name, ext string, hasExt bool) {
	if leaf == "." || leaf == ".." {
		return leaf, "", false
	}
	i := strings.LastIndexByte(leaf, '.')
	if i <= 0 {
		return leaf, "", false
	}
	return leaf[:i], leaf[i+1:], true
}
