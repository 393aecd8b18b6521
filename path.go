package pathname

import (
	"slices"
	"strings"
)

// Path is a structured file path: an optional volume, the directories
// leading to the leaf, and the leaf split into name and extension.
//
// The zero value is an empty relative path in the Native format.
// Paths are plain values; methods with a pointer receiver modify the path
// in place and everything else returns a new value.
type Path struct {
	// Format is the syntax the path was parsed from. It selects the
	// validation rules for component editing and the default rendering.
	Format Format

	// Volume is a drive letter ("C"), a UNC server ("server") or a unique
	// volume name ("Volume{guid}"). Empty means no volume.
	Volume string

	// Dirs lists the directory components in traversal order.
	// Components are never empty; ".." and "." may appear literally.
	Dirs []string

	// Name is the leaf without its extension.
	Name string

	// Ext is the extension without its leading dot. It is only meaningful
	// when HasExt is set, which lets "foo." differ from "foo".
	Ext    string
	HasExt bool

	// Relative is false when the path starts at a root or a volume.
	Relative bool

	// NoFollow makes Exists and the filesystem operations look at
	// symbolic links themselves instead of their targets.
	NoFollow bool
}

// Clone returns a deep copy of p.
func (p Path) Clone() Path {
	p.Dirs = slices.Clone(p.Dirs)
	return p
}

// FullName returns the leaf: name plus extension.
func (p Path) FullName() string {
	if !p.HasExt {
		return p.Name
	}
	return p.Name + "." + p.Ext
}

// SetFullName replaces the leaf, splitting off an extension the same way
// Parse does.
func (p *Path) SetFullName(fullname string) {
	p.Name, p.Ext, p.HasExt = splitExt(fullname)
}

// SetExt sets a non-empty extension, or clears it when ext is "".
func (p *Path) SetExt(ext string) {
	p.Ext = ext
	p.HasExt = ext != ""
}

// SetEmptyExt gives the path a trailing dot with no extension.
func (p *Path) SetEmptyExt() {
	p.Ext = ""
	p.HasExt = true
}

// ClearExt removes the extension and its dot.
func (p *Path) ClearExt() {
	p.Ext = ""
	p.HasExt = false
}

// IsDir reports whether p names a directory, that is, has no leaf.
func (p Path) IsDir() bool {
	return p.Name == "" && !p.HasExt
}

// IsAbs reports whether p is absolute. DOS paths also need a volume.
func (p Path) IsAbs() bool {
	if p.Relative {
		return false
	}
	if p.Format.Resolve() == DOS && p.Volume == "" {
		return false
	}
	return true
}

// DirCount returns the number of directory components.
func (p Path) DirCount() int { return len(p.Dirs) }

// AppendDir adds dir as the last directory component.
func (p *Path) AppendDir(dir string) error {
	return p.InsertDir(len(p.Dirs), dir)
}

// PrependDir adds dir as the first directory component.
func (p *Path) PrependDir(dir string) error {
	return p.InsertDir(0, dir)
}

// InsertDir inserts dir before position i.
// It reports a *ComponentError if dir is not a valid component for the
// path's format. i must be in [0, DirCount()].
func (p *Path) InsertDir(i int, dir string) error {
	if err := validComponent(dir, p.Format); err != nil {
		return err
	}
	p.Dirs = slices.Insert(p.Dirs, i, dir)
	return nil
}

// RemoveDir removes the directory component at position i.
func (p *Path) RemoveDir(i int) {
	p.Dirs = slices.Delete(p.Dirs, i, i+1)
}

// RemoveLastDir removes the last directory component, if any.
func (p *Path) RemoveLastDir() {
	if len(p.Dirs) > 0 {
		p.RemoveDir(len(p.Dirs) - 1)
	}
}

// Equal reports whether p and q are identical field by field, ignoring
// NoFollow. Use SameAs to compare paths that may be spelled differently.
func (p Path) Equal(q Path) bool {
	return p.Format.Resolve() == q.Format.Resolve() &&
		p.Volume == q.Volume &&
		slices.Equal(p.Dirs, q.Dirs) &&
		p.Name == q.Name &&
		p.Ext == q.Ext &&
		p.HasExt == q.HasExt &&
		p.Relative == q.Relative
}

// String renders p in its own format with every part included.
func (p Path) String() string {
	return Render(p, p.Format, RenderFull)
}

// DirPath renders the volume and directories of p without the leaf.
// RenderName in flags is ignored.
func (p Path) DirPath(flags RenderFlag) string {
	return Render(p, p.Format, flags&^RenderName)
}

func validComponent(dir string, f Format) error {
	if dir == "" {
		return &ComponentError{dir, f, ErrInvalidComponent}
	}
	bad := f.Forbidden() + f.Separators() + f.VolumeSeparator()
	if strings.ContainsAny(dir, bad) {
		return &ComponentError{dir, f, ErrInvalidComponent}
	}
	return nil
}
