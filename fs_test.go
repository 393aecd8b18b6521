package pathname_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"lesiw.io/pathname"
	"lesiw.io/pathname/memfs"
)

// statOnlyFS implements nothing beyond the required Stat.
type statOnlyFS struct{}

func (statOnlyFS) Stat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	return nil, &pathname.PathError{
		Op: "stat", Path: name, Err: pathname.ErrNotExist,
	}
}

// collideFS reports every name as free but refuses to create any of
// them, as if another process always won the race.
type collideFS struct {
	statOnlyFS
	creates int
}

func (c *collideFS) CreateExcl(
	ctx context.Context, name string,
) (pathname.File, error) {
	c.creates++
	return nil, &pathname.PathError{
		Op: "create", Path: name, Err: pathname.ErrExist,
	}
}

// takenFS reports every name as taken.
type takenFS struct {
	collideFS
}

func (*takenFS) Stat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	return takenInfo{}, nil
}

type takenInfo struct{}

func (takenInfo) Name() string        { return "taken" }
func (takenInfo) Size() int64         { return 0 }
func (takenInfo) Mode() pathname.Mode { return 0644 }
func (takenInfo) ModTime() time.Time  { return time.Time{} }
func (takenInfo) IsDir() bool         { return false }
func (takenInfo) Sys() any            { return nil }

func posix(raw string) pathname.Path {
	return pathname.Parse(raw, pathname.Posix)
}

func posixDir(raw string) pathname.Path {
	return pathname.ParseDir(raw, pathname.Posix)
}

func writeFile(
	ctx context.Context, t *testing.T, fsys *memfs.FS,
	name, content string,
) {
	t.Helper()
	f, err := fsys.CreateExcl(ctx, name)
	if err != nil {
		t.Fatalf("CreateExcl(%q): %v", name, err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		t.Fatalf("Write(%q): %v", name, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(%q): %v", name, err)
	}
}

func TestFormatOfDefaultsToPosix(t *testing.T) {
	ctx := t.Context()
	p := pathname.Parse(`a\b\c`, pathname.DOS)
	err := pathname.Mkdir(ctx, statOnlyFS{}, p)
	var perr *pathname.PathError
	if !errors.As(err, &perr) {
		t.Fatalf("Mkdir(%q) error = %v, want *PathError", p, err)
	}
	if got, want := perr.Path, "a/b"; got != want {
		t.Errorf("Mkdir(%q) path = %q, want %q", p, got, want)
	}
}
