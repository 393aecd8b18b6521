package pathname

import "strings"

// RenderFlag selects the parts of a path included by Render.
type RenderFlag uint8

const (
	// RenderVolume includes the volume, expanded back to its UNC or
	// unique-volume spelling where needed.
	RenderVolume RenderFlag = 1 << iota

	// RenderSeparator ends the directory part with a separator even when
	// no leaf follows.
	RenderSeparator

	// RenderName includes the leaf. A separator always precedes it.
	RenderName

	RenderFull = RenderVolume | RenderSeparator | RenderName
)

// Render composes p into a string in format f. It is the inverse of Parse.
func Render(p Path, f Format, flags RenderFlag) string {
	f = f.Resolve()
	var b strings.Builder
	if flags&RenderVolume != 0 {
		b.WriteString(renderVolume(p.Volume, f))
	}
	leaf := ""
	if flags&RenderName != 0 {
		leaf = p.FullName()
	}
	sep := string(f.Separator())

	switch f {
	case VMS:
		if len(p.Dirs) > 0 {
			b.WriteByte('[')
			b.WriteString(strings.Join(p.Dirs, "."))
			b.WriteByte(']')
		}
		b.WriteString(leaf)
		return b.String()
	case Mac:
		if p.Relative {
			b.WriteString(sep)
		}
	default:
		if !p.Relative && !homeRooted(p, f) {
			b.WriteString(sep)
		}
	}

	for i, dir := range p.Dirs {
		if f == Mac && dir == ".." {
			dir = ""
		}
		b.WriteString(dir)
		last := i == len(p.Dirs)-1
		if !last || leaf != "" || flags&RenderSeparator != 0 {
			b.WriteString(sep)
		}
	}
	b.WriteString(leaf)
	return b.String()
}

// homeRooted reports whether an absolute Posix path starts with ~, which
// is written without a leading slash.
func homeRooted(p Path, f Format) bool {
	if f != Posix {
		return false
	}
	if len(p.Dirs) > 0 {
		return p.Dirs[0] == "~"
	}
	return p.Name == "~" && !p.HasExt
}

func renderVolume(vol string, f Format) string {
	if vol == "" {
		return ""
	}
	if f == DOS && len(vol) > 1 {
		if strings.HasPrefix(vol, uniqueVolumeName) {
			return uniqueVolumePrefix + vol
		}
		return `\\` + vol
	}
	return vol + f.VolumeSeparator()
}
