package pathname_test

import (
	"errors"
	"testing"

	"lesiw.io/pathname"
	"lesiw.io/pathname/memfs"
)

func TestStat(t *testing.T) {
	ctx, fsys := t.Context(), memfs.New()
	writeFile(ctx, t, fsys, "target.txt", "hello")
	link := posix("link")
	err := pathname.Symlink(ctx, fsys, posix("target.txt"), link)
	if err != nil {
		t.Fatalf("Symlink(%q): %v", link, err)
	}

	info, err := pathname.Stat(ctx, fsys, link)
	if err != nil {
		t.Fatalf("Stat(%q): %v", link, err)
	}
	if !info.Mode().IsRegular() || info.Size() != 5 {
		t.Errorf("Stat(%q) = %v, %d bytes, want the target",
			link, info.Mode(), info.Size())
	}

	link.NoFollow = true
	info, err = pathname.Stat(ctx, fsys, link)
	if err != nil {
		t.Fatalf("Stat(%q, NoFollow): %v", link, err)
	}
	if info.Mode()&pathname.ModeSymlink == 0 {
		t.Errorf("Stat(%q, NoFollow).Mode() = %v, want a link",
			link, info.Mode())
	}
}

func TestStatNotExist(t *testing.T) {
	ctx, fsys := t.Context(), memfs.New()
	_, err := pathname.Stat(ctx, fsys, posix("nope"))
	if !errors.Is(err, pathname.ErrNotExist) {
		t.Errorf("Stat(%q) = %v, want %v", "nope", err, pathname.ErrNotExist)
	}
	var perr *pathname.PathError
	if !errors.As(err, &perr) {
		t.Errorf("Stat(%q) error = %#v, want *PathError", "nope", err)
	}
}

func TestStatNoFollowFallback(t *testing.T) {
	// Without Lstat, NoFollow falls back to Stat.
	p := posix("x")
	p.NoFollow = true
	_, err := pathname.Stat(t.Context(), statOnlyFS{}, p)
	if !errors.Is(err, pathname.ErrNotExist) {
		t.Errorf("Stat(%q) = %v, want %v", p, err, pathname.ErrNotExist)
	}
}

func TestSymlink(t *testing.T) {
	ctx, fsys := t.Context(), memfs.New()
	if err := pathname.MkdirAll(ctx, fsys, posixDir("a/b")); err != nil {
		t.Fatal(err)
	}
	writeFile(ctx, t, fsys, "a/f.txt", "x")

	link := posix("a/b/up")
	if err := pathname.Symlink(ctx, fsys, posix("../f.txt"), link); err != nil {
		t.Fatalf("Symlink(%q): %v", link, err)
	}
	dest, err := fsys.ReadLink(ctx, "a/b/up")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := dest, "../f.txt"; got != want {
		t.Errorf("ReadLink(%q) = %q, want %q", link, got, want)
	}
	if !pathname.FileExists(ctx, fsys, link) {
		t.Errorf("FileExists(%q) = false through relative link", link)
	}

	err = pathname.Symlink(ctx, fsys, posix("other"), link)
	if !errors.Is(err, pathname.ErrExist) {
		t.Errorf("Symlink(%q) again = %v, want %v",
			link, err, pathname.ErrExist)
	}
	err = pathname.Symlink(ctx, statOnlyFS{}, posix("t"), posix("l"))
	if !errors.Is(err, pathname.ErrUnsupported) {
		t.Errorf("Symlink() = %v, want %v", err, pathname.ErrUnsupported)
	}
}
