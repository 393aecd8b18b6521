package fstest

import (
	"context"
	"errors"
	"testing"

	"lesiw.io/pathname"
)

func testMkdir(ctx context.Context, t *testing.T, fsys pathname.FS) {
	dir := dirPath(fsys, "test_mkdir")

	err := pathname.Mkdir(ctx, fsys, dir)
	if errors.Is(err, pathname.ErrUnsupported) {
		t.Skip("MkdirFS not supported")
	}
	if err != nil {
		t.Fatalf("Mkdir(%v): %v", dir, err)
	}
	cleanup(ctx, t, fsys, dir)

	if !pathname.DirExists(ctx, fsys, dir) {
		t.Errorf("DirExists(%v) = false after Mkdir", dir)
	}
	if err := pathname.Mkdir(ctx, fsys, dir); err == nil {
		t.Errorf("Mkdir(%v) on existing directory: got nil error", dir)
	}

	orphan := dirPath(fsys, "test_mkdir_missing", "child")
	if err := pathname.Mkdir(ctx, fsys, orphan); err == nil {
		t.Errorf("Mkdir(%v) without parent: got nil error", orphan)
	}
}

func testMkdirAll(ctx context.Context, t *testing.T, fsys pathname.FS) {
	top := dirPath(fsys, "test_mkdirall")
	leaf := filePath(fsys, "f.txt", "test_mkdirall", "a", "b", "c")
	cleanup(ctx, t, fsys, top)

	mkdirAll(ctx, t, fsys, leaf)
	for i := 1; i <= len(leaf.Dirs); i++ {
		dir := dirPath(fsys, leaf.Dirs[:i]...)
		if !pathname.DirExists(ctx, fsys, dir) {
			t.Errorf("DirExists(%v) = false after MkdirAll", dir)
		}
	}
	if pathname.Exists(ctx, fsys, leaf, pathname.ExistsAny) {
		t.Errorf("MkdirAll(%v) created the leaf", leaf)
	}
	if err := pathname.MkdirAll(ctx, fsys, leaf); err != nil {
		t.Errorf("MkdirAll(%v) on existing tree: %v", leaf, err)
	}
}

func testMkdirAllBlocked(
	ctx context.Context, t *testing.T, fsys pathname.FS,
) {
	top := dirPath(fsys, "test_mkdirall_blocked")
	mkdirAll(ctx, t, fsys, top)
	cleanup(ctx, t, fsys, top)
	writeFile(ctx, t, fsys,
		filePath(fsys, "file", "test_mkdirall_blocked"), "x")

	blocked := dirPath(fsys, "test_mkdirall_blocked", "file", "sub")
	if err := pathname.MkdirAll(ctx, fsys, blocked); err == nil {
		t.Fatalf("MkdirAll(%v) through a file: got nil error", blocked)
	}
	if !pathname.DirExists(ctx, fsys, top) {
		t.Errorf("DirExists(%v) = false after failed MkdirAll", top)
	}
	if pathname.DirExists(ctx, fsys, blocked) {
		t.Errorf("DirExists(%v) = true after failed MkdirAll", blocked)
	}
}
