//go:build unix

package osfs

import (
	"errors"
	"testing"

	"lesiw.io/pathname"
)

func TestExistsFIFO(t *testing.T) {
	fsys, err := New("")
	if err != nil {
		t.Fatalf("New(\"\"): %v", err)
	}
	defer fsys.Close()
	ctx := t.Context()

	if err := fsys.Mkfifo(ctx, "pipe"); err != nil {
		t.Fatalf("Mkfifo(%q): %v", "pipe", err)
	}
	p := pathname.Parse("pipe", pathname.Native)
	if !pathname.Exists(ctx, fsys, p, pathname.ExistsFIFO) {
		t.Errorf("Exists(%v, ExistsFIFO) = false, want true", p)
	}
	if pathname.FileExists(ctx, fsys, p) {
		t.Errorf("FileExists(%v) = true, want false", p)
	}
}

func TestRmdirNotDir(t *testing.T) {
	fsys, err := New("")
	if err != nil {
		t.Fatalf("New(\"\"): %v", err)
	}
	defer fsys.Close()
	ctx := t.Context()

	f, err := fsys.CreateExcl(ctx, "file")
	if err != nil {
		t.Fatalf("CreateExcl(%q): %v", "file", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}
	p := pathname.ParseDir("file", pathname.Native)
	err = pathname.Rmdir(ctx, fsys, p, 0)
	if !errors.Is(err, pathname.ErrNotDir) {
		t.Errorf("Rmdir(%v) = %v, want ErrNotDir", p, err)
	}

	child := pathname.ParseDir("file/child", pathname.Native)
	err = pathname.Mkdir(ctx, fsys, child)
	if !errors.Is(err, pathname.ErrNotDir) {
		t.Errorf("Mkdir(%v) = %v, want ErrNotDir", child, err)
	}
}
