// Package path implements string routines for manipulating file paths in
// any of the formats known to lesiw.io/pathname.
//
// Unlike the standard library's path package (Unix-only) and filepath
// package (OS-specific), every function takes the format the string is
// written in:
//
//	path.Join(pathname.Posix, "foo", "bar")       // "foo/bar"
//	path.Join(pathname.DOS, `C:\`, "foo", "bar")  // `C:\foo\bar`
//	path.Join(pathname.Mac, "Disk:", "foo")       // "Disk:foo"
//
// All path operations are purely lexical. In particular, they do not
// access the filesystem or account for the effect of symbolic links,
// mount points, or other filesystem-specific behavior.
//
// Trailing separators indicate directories:
//
//	path.IsDir("foo/bar/", pathname.Posix)   // true
//	path.IsDir("foo/bar", pathname.Posix)    // false
package path

import "lesiw.io/pathname"

// Clean returns the shortest path equivalent to s by purely lexical
// processing: repeated separators and "." components are dropped, and
// ".." removes the component before it. A ".." that would climb above the
// root of an absolute path is dropped; in a relative path it is kept.
//
// A path that names a directory, either by a trailing separator or by
// ending in "." or "..", is returned with a trailing separator. The empty
// result is returned as ".".
func Clean(s string, f pathname.Format) string {
	return render(pathname.Parse(s, f), f)
}

// Join joins path elements into a single path and cleans the result.
// Empty elements are ignored, except if the last element is empty, which
// makes the result a directory. Later elements are always appended, even
// if they are absolute.
//
// Examples:
//
//	Join(pathname.Posix, "foo", "bar")       // "foo/bar"
//	Join(pathname.Posix, "foo", "bar", "")   // "foo/bar/"
//	Join(pathname.DOS, `C:\`, "foo")         // `C:\foo`
func Join(f pathname.Format, elem ...string) string {
	var p pathname.Path
	started := false
	for _, e := range elem {
		if e == "" {
			continue
		}
		q := pathname.Parse(e, f)
		if !started {
			p, started = q, true
			continue
		}
		p = asDir(p)
		p.Dirs = append(p.Dirs, q.Dirs...)
		p.Name, p.Ext, p.HasExt = q.Name, q.Ext, q.HasExt
	}
	if !started {
		return ""
	}
	if elem[len(elem)-1] == "" {
		p = asDir(p)
	}
	return render(p, f)
}

// Split splits s into directory and file components. The directory keeps
// the volume and root but has no trailing separator unless it is a root.
// Returns ("", file) if s has no directory component.
// Returns (dir, "") if s names a directory.
func Split(s string, f pathname.Format) (dir, file string) {
	p := pathname.Parse(s, f)
	return pathname.Render(p, f, pathname.RenderVolume), p.FullName()
}

// Base returns the last element of s, or "" if s names a directory.
func Base(s string, f pathname.Format) string {
	_, file := Split(s, f)
	return file
}

// Dir returns the directory containing s.
func Dir(s string, f pathname.Format) string {
	dir, _ := Split(s, f)
	return dir
}

// Ext returns the extension of the last element of s, including its dot.
// A leading dot does not start an extension, so Ext(".profile") is "".
func Ext(s string, f pathname.Format) string {
	p := pathname.Parse(s, f)
	if !p.HasExt {
		return ""
	}
	return "." + p.Ext
}

// IsAbs reports whether s is absolute. DOS paths also need a volume.
func IsAbs(s string, f pathname.Format) bool {
	return pathname.Parse(s, f).IsAbs()
}

// IsDir reports whether s is lexically a directory.
func IsDir(s string, f pathname.Format) bool {
	return s != "" && pathname.Parse(s, f).IsDir()
}

// Rel returns a relative path that is lexically equivalent to target when
// joined to the directory base. Relative arguments are first made
// absolute against the working directory.
//
// Rel fails if base and target are on different volumes.
func Rel(base, target string, f pathname.Format) (string, error) {
	p, err := pathname.RelativeTo(
		pathname.Parse(target, f), pathname.ParseDir(base, f), f,
	)
	if err != nil {
		return "", err
	}
	rel := pathname.Render(p, f, pathname.RenderName)
	if rel == "" {
		return ".", nil
	}
	return rel, nil
}

// Convert rewrites s from one format to another. Components are carried
// over unchanged; only the separators, the volume and the relative or
// absolute marker change.
func Convert(s string, from, to pathname.Format) string {
	return pathname.Render(pathname.Parse(s, from), to, pathname.RenderFull)
}

func render(p pathname.Path, f pathname.Format) string {
	p, _ = pathname.Normalize(p, nil,
		pathname.NormalizeOptions{Flags: pathname.NormDots})
	s := pathname.Render(p, f, pathname.RenderFull)
	if s == "" {
		return "."
	}
	return s
}

// asDir moves the leaf of p, if any, into its directories.
func asDir(p pathname.Path) pathname.Path {
	if p.IsDir() {
		return p
	}
	p = p.Clone()
	p.Dirs = append(p.Dirs, p.FullName())
	p.Name, p.Ext, p.HasExt = "", "", false
	return p
}
