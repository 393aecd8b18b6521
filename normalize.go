package pathname

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormFlag selects the passes run by Normalize.
type NormFlag uint8

const (
	// NormEnvVars expands environment variable references.
	NormEnvVars NormFlag = 1 << iota

	// NormTilde replaces a leading ~ or ~user directory with the home
	// directory it names. Posix only.
	NormTilde

	// NormAbsolute makes relative paths absolute against the base
	// directory or the working directory.
	NormAbsolute

	// NormDots removes "." components and resolves "..".
	NormDots

	// NormCase lower-cases every part of paths whose format is not case
	// sensitive.
	NormCase

	NormAll = NormEnvVars | NormTilde | NormAbsolute | NormDots | NormCase
)

// NormalizeOptions configures Normalize.
type NormalizeOptions struct {
	Flags NormFlag

	// Env supplies variables and home directories. Nil means OSEnv.
	Env Environment

	// Getwd returns the working directory used by NormAbsolute when no
	// base is given. Nil means os.Getwd.
	Getwd func() (string, error)
}

func (o NormalizeOptions) env() Environment {
	if o.Env == nil {
		return OSEnv{}
	}
	return o.Env
}

func (o NormalizeOptions) getwd() (string, error) {
	if o.Getwd == nil {
		return os.Getwd()
	}
	return o.Getwd()
}

// Normalize runs the passes selected by opts.Flags over p, in this order:
// environment expansion, tilde expansion, absolutization, dot removal and
// case folding.
//
// A relative p is made absolute against the directories of base, or the
// working directory when base is nil; it inherits the volume of whichever
// is used. Excess ".." components are dropped from absolute paths, since
// the root is its own parent, but kept in relative ones.
//
// Normalize fails only when tilde expansion cannot resolve a home
// directory or the working directory is unavailable.
func Normalize(
	p Path, base *Path, opts NormalizeOptions,
) (Path, error) {
	p = p.Clone()
	p.Format = p.Format.Resolve()
	var err error
	if opts.Flags&NormEnvVars != 0 {
		p = expandEnvPass(p, opts.env())
	}
	if opts.Flags&NormTilde != 0 {
		if p, err = tildePass(p, opts.env()); err != nil {
			return Path{}, err
		}
	}
	if opts.Flags&NormAbsolute != 0 {
		if p, err = absolutePass(p, base, opts); err != nil {
			return Path{}, err
		}
	}
	if opts.Flags&NormDots != 0 {
		p = dotsPass(p)
	}
	if opts.Flags&NormCase != 0 && !p.Format.CaseSensitive() {
		p = casePass(p)
	}
	return p, nil
}

// MakeAbsolute expands ~, makes p absolute and removes dot components.
func MakeAbsolute(p Path, base *Path, opts NormalizeOptions) (Path, error) {
	opts.Flags = NormTilde | NormAbsolute | NormDots
	return Normalize(p, base, opts)
}

func expandEnvPass(p Path, env Environment) Path {
	raw := p.String()
	expanded := ExpandEnv(raw, p.Format, env)
	if expanded == raw {
		return p
	}
	q := Parse(expanded, p.Format)
	q.NoFollow = p.NoFollow
	return q
}

func tildePass(p Path, env Environment) (Path, error) {
	if p.Format != Posix {
		return p, nil
	}
	var comp string
	switch {
	case len(p.Dirs) > 0:
		comp = p.Dirs[0]
	case !p.HasExt:
		comp = p.Name
	}
	if comp != "~" && (!p.Relative || !strings.HasPrefix(comp, "~")) {
		return p, nil
	}
	home, err := env.HomeDir(comp[1:])
	if err == nil && home == "" {
		err = ErrNotExist
	}
	if err != nil {
		return Path{}, &NormalizeError{
			Pass: "tilde",
			Path: p.String(),
			Err:  fmt.Errorf("%w: %w", ErrNoHome, err),
		}
	}
	h := ParseDir(home, Posix)
	if len(p.Dirs) > 0 {
		p.Dirs = append(h.Dirs, p.Dirs[1:]...)
	} else {
		p.Dirs = h.Dirs
		p.Name = ""
	}
	p.Relative = h.Relative
	return p, nil
}

func absolutePass(
	p Path, base *Path, opts NormalizeOptions,
) (Path, error) {
	if !p.Relative && (p.Volume != "" || p.Format != DOS) {
		return p, nil
	}
	var dir Path
	if base != nil {
		dir = *base
		if dir.Relative {
			var err error
			dir, err = absolutePass(dir.Clone(), nil, opts)
			if err != nil {
				return Path{}, err
			}
		}
	} else {
		cwd, err := opts.getwd()
		if err != nil {
			return Path{}, &NormalizeError{
				Pass: "absolute", Path: p.String(), Err: err,
			}
		}
		dir = ParseDir(cwd, p.Format)
	}
	if p.Volume == "" {
		p.Volume = dir.Volume
	}
	if p.Relative {
		p.Dirs = append(slices.Clone(dir.Dirs), p.Dirs...)
		p.Relative = false
	}
	return p, nil
}

func dotsPass(p Path) Path {
	if !p.HasExt && (p.Name == "." || p.Name == "..") {
		p.Dirs = append(p.Dirs, p.Name)
		p.Name = ""
	}
	dirs := make([]string, 0, len(p.Dirs))
	for _, d := range p.Dirs {
		switch {
		case d == ".":
		case d != "..":
			dirs = append(dirs, d)
		case len(dirs) > 0 && dirs[len(dirs)-1] != "..":
			dirs = dirs[:len(dirs)-1]
		case p.Relative:
			dirs = append(dirs, d)
		}
	}
	p.Dirs = dirs
	return p
}

func casePass(p Path) Path {
	lower := cases.Lower(language.Und)
	p.Volume = lower.String(p.Volume)
	for i, d := range p.Dirs {
		p.Dirs[i] = lower.String(d)
	}
	p.Name = lower.String(p.Name)
	p.Ext = lower.String(p.Ext)
	return p
}

// ReplaceHomeDir rewrites an absolute Posix path under the current user's
// home directory to start with ~. It reports whether p was rewritten.
func ReplaceHomeDir(p Path, env Environment) (Path, bool) {
	if p.Format.Resolve() != Posix || p.Relative {
		return p, false
	}
	if env == nil {
		env = OSEnv{}
	}
	home, err := env.HomeDir("")
	if err != nil {
		return p, false
	}
	h := ParseDir(home, Posix)
	if h.Relative || len(h.Dirs) == 0 || len(p.Dirs) < len(h.Dirs) {
		return p, false
	}
	if !slices.Equal(p.Dirs[:len(h.Dirs)], h.Dirs) {
		return p, false
	}
	q := p.Clone()
	q.Dirs = append([]string{"~"}, p.Dirs[len(h.Dirs):]...)
	return q, true
}

// SameAs reports whether a and b denote the same path once both are
// expanded, made absolute and stripped of dot components. Components are
// compared case-insensitively for formats that are not case sensitive.
func SameAs(a, b Path, opts NormalizeOptions) (bool, error) {
	opts.Flags = NormTilde | NormAbsolute | NormDots
	na, err := Normalize(a, nil, opts)
	if err != nil {
		return false, err
	}
	nb, err := Normalize(b, nil, opts)
	if err != nil {
		return false, err
	}
	cs := na.Format.CaseSensitive()
	return componentsEqual(na.Volume, nb.Volume, cs) &&
		slices.EqualFunc(na.Dirs, nb.Dirs, func(x, y string) bool {
			return componentsEqual(x, y, cs)
		}) &&
		componentsEqual(na.FullName(), nb.FullName(), cs) &&
		na.Relative == nb.Relative, nil
}

func componentsEqual(a, b string, caseSensitive bool) bool {
	if caseSensitive || a == b {
		return a == b
	}
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}
