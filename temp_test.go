package pathname_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"testing"

	"lesiw.io/pathname"
	"lesiw.io/pathname/memfs"
	"lesiw.io/pathname/osfs"
)

func ExampleCreateTemp() {
	ctx := context.Background()
	fsys, err := osfs.New("")
	if err != nil {
		log.Fatal(err)
	}
	defer fsys.Close()

	p, f, err := pathname.CreateTemp(ctx, fsys, "report-", false)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := f.Write([]byte("data")); err != nil {
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	fmt.Println(strings.HasPrefix(p.FullName(), "report-"))
	fmt.Println(pathname.FileExists(ctx, fsys, p))
	// Output:
	// true
	// true
}

func TestCreateTemp(t *testing.T) {
	ctx, fsys := t.Context(), memfs.New()
	if err := pathname.Mkdir(ctx, fsys, posixDir("tmp")); err != nil {
		t.Fatal(err)
	}

	p, f, err := pathname.CreateTemp(ctx, fsys, "tmp/x", false)
	if err != nil {
		t.Fatalf("CreateTemp(%q): %v", "tmp/x", err)
	}
	if _, err := f.Write([]byte("hello")); err != nil {
		t.Fatalf("Write(): %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}

	if got, want := p.Dirs, []string{"tmp"}; !slices.Equal(got, want) {
		t.Errorf("CreateTemp(%q).Dirs = %q, want %q", "tmp/x", got, want)
	}
	if !strings.HasPrefix(p.FullName(), "x") || p.FullName() == "x" {
		t.Errorf("CreateTemp(%q) leaf = %q, want %q plus a suffix",
			"tmp/x", p.FullName(), "x")
	}
	if !p.NoFollow {
		t.Errorf("CreateTemp(%q).NoFollow = false", "tmp/x")
	}
	if !f.Path().Equal(p) {
		t.Errorf("TempFile.Path() = %q, want %q", f.Path(), p)
	}
	data, err := fsys.ReadFile(ctx, p.String())
	if err != nil {
		t.Fatalf("ReadFile(%q): %v", p, err)
	}
	if got, want := string(data), "hello"; got != want {
		t.Errorf("ReadFile(%q) = %q, want %q", p, got, want)
	}
}

func TestCreateTempDirPrefix(t *testing.T) {
	ctx, fsys := t.Context(), memfs.New()
	if err := pathname.Mkdir(ctx, fsys, posixDir("d")); err != nil {
		t.Fatal(err)
	}
	p, f, err := pathname.CreateTemp(ctx, fsys, "d/", false)
	if err != nil {
		t.Fatalf("CreateTemp(%q): %v", "d/", err)
	}
	defer f.Close()
	if p.FullName() == "" || p.DirCount() != 1 || p.Dirs[0] != "d" {
		t.Errorf("CreateTemp(%q) = %q, want a file in d", "d/", p)
	}
}

func TestCreateTempDeleteOnClose(t *testing.T) {
	ctx, fsys := t.Context(), memfs.New()

	p, f, err := pathname.CreateTemp(ctx, fsys, "scratch", true)
	if err != nil {
		t.Fatalf("CreateTemp(%q, true): %v", "scratch", err)
	}
	if !pathname.FileExists(ctx, fsys, p) {
		t.Errorf("FileExists(%q) = false before Close", p)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}
	if pathname.Exists(ctx, fsys, p, pathname.ExistsAny) {
		t.Errorf("Exists(%q) = true after Close", p)
	}
}

// createOnlyFS can create files but never delete them.
type createOnlyFS struct{ m *memfs.FS }

func (c createOnlyFS) Stat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	return c.m.Stat(ctx, name)
}

func (c createOnlyFS) CreateExcl(
	ctx context.Context, name string,
) (pathname.File, error) {
	return c.m.CreateExcl(ctx, name)
}

// unlinkFailFS refuses to unlink open files.
type unlinkFailFS struct{ *memfs.FS }

func (unlinkFailFS) UnlinkOpen(ctx context.Context, name string) error {
	return pathname.ErrPermission
}

func rootNames(ctx context.Context, t *testing.T, fsys *memfs.FS) []string {
	t.Helper()
	var names []string
	for entry, err := range fsys.ReadDir(ctx, "/") {
		if err != nil {
			t.Fatalf("ReadDir(%q): %v", "/", err)
		}
		names = append(names, entry.Name())
	}
	return names
}

func TestCreateTempDeleteOnCloseUnsupported(t *testing.T) {
	ctx, m := t.Context(), memfs.New()

	_, f, err := pathname.CreateTemp(ctx, createOnlyFS{m}, "leak", true)
	if !errors.Is(err, pathname.ErrUnsupported) {
		t.Errorf("CreateTemp(%q, true) = %v, want %v",
			"leak", err, pathname.ErrUnsupported)
	}
	if f != nil {
		t.Errorf("CreateTemp(%q, true) returned an open file", "leak")
	}
	if names := rootNames(ctx, t, m); len(names) > 0 {
		t.Errorf("CreateTemp(%q, true) left %q behind", "leak", names)
	}
}

func TestCreateTempUnlinkFails(t *testing.T) {
	ctx, m := t.Context(), memfs.New()

	_, _, err := pathname.CreateTemp(ctx, unlinkFailFS{m}, "leak", true)
	if !errors.Is(err, pathname.ErrPermission) {
		t.Errorf("CreateTemp(%q, true) = %v, want %v",
			"leak", err, pathname.ErrPermission)
	}
	if names := rootNames(ctx, t, m); len(names) > 0 {
		t.Errorf("CreateTemp(%q, true) left %q behind", "leak", names)
	}
}

func TestCreateTempFileMode(t *testing.T) {
	ctx, fsys := t.Context(), memfs.New()
	ctx = pathname.WithFileMode(ctx, 0640)

	p, f, err := pathname.CreateTemp(ctx, fsys, "m", false)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	info, err := pathname.Stat(ctx, fsys, p)
	if err != nil {
		t.Fatalf("Stat(%q): %v", p, err)
	}
	if got := info.Mode().Perm(); got != 0640 {
		t.Errorf("Stat(%q).Mode() = %04o, want 0640", p, got)
	}
}

func TestCreateTempUnique(t *testing.T) {
	ctx, fsys := t.Context(), memfs.New()
	seen := make(map[string]bool)
	for range pathname.MaxTempAttempts {
		p, f, err := pathname.CreateTemp(ctx, fsys, "u", false)
		if err != nil {
			t.Fatalf("CreateTemp(%q): %v", "u", err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}
		if seen[p.String()] {
			t.Fatalf("CreateTemp(%q) returned %q twice", "u", p)
		}
		seen[p.String()] = true
	}
}

func TestCreateTempExhausted(t *testing.T) {
	ctx := t.Context()
	fsys := &collideFS{}

	_, _, err := pathname.CreateTemp(ctx, fsys, "t", false)
	if !errors.Is(err, pathname.ErrTempExhausted) {
		t.Fatalf("CreateTemp() = %v, want %v",
			err, pathname.ErrTempExhausted)
	}
	if got, want := fsys.creates, pathname.MaxTempAttempts; got != want {
		t.Errorf("CreateExcl called %d times, want %d", got, want)
	}
}

func TestCreateTempSkipsTakenNames(t *testing.T) {
	ctx := t.Context()
	fsys := &takenFS{}

	_, _, err := pathname.CreateTemp(ctx, fsys, "t", false)
	if !errors.Is(err, pathname.ErrTempExhausted) {
		t.Fatalf("CreateTemp() = %v, want %v",
			err, pathname.ErrTempExhausted)
	}
	if fsys.creates != 0 {
		t.Errorf("CreateExcl called %d times for taken names",
			fsys.creates)
	}
}

func TestCreateTempUnsupported(t *testing.T) {
	_, _, err := pathname.CreateTemp(t.Context(), statOnlyFS{}, "t", false)
	if !errors.Is(err, pathname.ErrUnsupported) {
		t.Errorf("CreateTemp() = %v, want %v", err, pathname.ErrUnsupported)
	}
}
