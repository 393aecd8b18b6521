package pathname

import (
	"runtime"
	"strconv"
	"strings"
)

// A Format selects one of the path syntaxes understood by this package.
//
// Native is an alias that is resolved to a concrete format once, via
// [Format.Resolve]. All trait methods resolve before answering, so Native
// may be used anywhere a Format is accepted.
type Format int

const (
	Native Format = iota // the running platform's format
	Posix                // /usr/local/bin
	DOS                  // C:\Windows, \\server\share, \\?\Volume{guid}\
	Mac                  // HD:Folder:file, :relative:file
	VMS                  // DISK:[dir.sub]file.ext;1
)

// Resolve returns the concrete format f stands for.
// Only Native is rewritten; it becomes DOS on Windows and Posix elsewhere.
func (f Format) Resolve() Format {
	if f != Native {
		return f
	}
	if runtime.GOOS == "windows" {
		return DOS
	}
	return Posix
}

func (f Format) String() string {
	switch f {
	case Native:
		return "native"
	case Posix:
		return "posix"
	case DOS:
		return "dos"
	case Mac:
		return "mac"
	case VMS:
		return "vms"
	}
	return "format(" + strconv.Itoa(int(f)) + ")"
}

// Separators returns every character that separates path components.
// The first one is the primary separator used when rendering.
func (f Format) Separators() string {
	switch f.Resolve() {
	case DOS:
		return `\/`
	case Mac:
		return ":"
	case VMS:
		return "."
	}
	return "/"
}

// Separator returns the primary path separator.
func (f Format) Separator() byte {
	return f.Separators()[0]
}

// VolumeSeparator returns the string ending a volume name, or "" for
// formats without volumes.
func (f Format) VolumeSeparator() string {
	switch f.Resolve() {
	case DOS, VMS:
		return ":"
	}
	return ""
}

// Terminators returns the characters that may end the directory part of a
// path. For VMS that is the closing bracket, not the component separator.
func (f Format) Terminators() string {
	if f.Resolve() == VMS {
		return "]"
	}
	return f.Separators()
}

// Forbidden returns the characters that may not appear in a path
// component.
func (f Format) Forbidden() string {
	switch f.Resolve() {
	case DOS:
		return `*?\/:"<>|`
	case Mac:
		return "*?:"
	}
	return "*?"
}

// CaseSensitive reports whether component comparison honors case.
func (f Format) CaseSensitive() bool {
	return f.Resolve() == Posix
}

// IsSeparator reports whether c is one of the format's separators.
func (f Format) IsSeparator(c byte) bool {
	return strings.IndexByte(f.Separators(), c) >= 0
}

func (f Format) isTerminator(c byte) bool {
	return strings.IndexByte(f.Terminators(), c) >= 0
}
