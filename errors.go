package pathname

import (
	"errors"
	"io/fs"
)

// PathError records an error and the operation and file path that caused it.
type PathError = fs.PathError

// newPathError creates a PathError if err is not nil, otherwise returns nil.
// Errors that already are a *PathError are returned unchanged.
func newPathError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*PathError); ok {
		return err
	}
	return &PathError{Op: op, Path: path, Err: err}
}

// Generic file system errors.
var (
	ErrInvalid     = fs.ErrInvalid
	ErrPermission  = fs.ErrPermission
	ErrExist       = fs.ErrExist
	ErrNotExist    = fs.ErrNotExist
	ErrClosed      = fs.ErrClosed
	ErrUnsupported = errors.ErrUnsupported
	ErrNotDir      = errors.New("not a directory")
)

// Path engine errors.
var (
	// ErrMalformedVolume is reported by ParseStrict for UNC or
	// unique-volume prefixes that cannot be split into a volume.
	ErrMalformedVolume = errors.New("malformed volume")

	// ErrInvalidComponent is reported when a directory component contains
	// a separator or a forbidden character.
	ErrInvalidComponent = errors.New("invalid path component")

	// ErrNoHome is reported when tilde expansion cannot find a home
	// directory.
	ErrNoHome = errors.New("home directory not found")

	// ErrNoCommonVolume is reported when two paths on different volumes
	// are made relative to each other.
	ErrNoCommonVolume = errors.New("no common volume")

	// ErrTempExhausted is reported when no unused temporary name was
	// found within MaxTempAttempts tries.
	ErrTempExhausted = errors.New("temporary names exhausted")
)

// A ParseError reports a path string whose volume prefix is malformed.
type ParseError struct {
	Raw    string
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return "parse " + e.Format.String() + " path " + quote(e.Raw) +
		": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// A ComponentError reports a directory component rejected by AppendDir,
// PrependDir or InsertDir.
type ComponentError struct {
	Component string
	Format    Format
	Err       error
}

func (e *ComponentError) Error() string {
	return "component " + quote(e.Component) + " (" + e.Format.String() +
		"): " + e.Err.Error()
}

func (e *ComponentError) Unwrap() error { return e.Err }

// A NormalizeError reports a normalization pass that could not complete.
type NormalizeError struct {
	Pass string
	Path string
	Err  error
}

func (e *NormalizeError) Error() string {
	return "normalize " + e.Pass + " " + quote(e.Path) + ": " + e.Err.Error()
}

func (e *NormalizeError) Unwrap() error { return e.Err }

// A RelativizeError reports a path that cannot be expressed relative to a
// base.
type RelativizeError struct {
	Path string
	Base string
	Err  error
}

func (e *RelativizeError) Error() string {
	return "relative " + quote(e.Path) + " to " + quote(e.Base) + ": " +
		e.Err.Error()
}

func (e *RelativizeError) Unwrap() error { return e.Err }

func quote(s string) string { return `"` + s + `"` }
