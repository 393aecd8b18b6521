package fstest

import (
	"context"
	"testing"

	"lesiw.io/pathname"
)

// requireRemove skips the test if fsys cannot remove or list entries.
func requireRemove(t *testing.T, fsys pathname.FS) {
	t.Helper()
	if _, ok := fsys.(pathname.RemoveFS); !ok {
		t.Skip("RemoveFS not supported")
	}
	if _, ok := fsys.(pathname.ReadDirFS); !ok {
		t.Skip("ReadDirFS not supported")
	}
}

func testRmdirEmpty(ctx context.Context, t *testing.T, fsys pathname.FS) {
	requireRemove(t, fsys)
	dir := dirPath(fsys, "test_rmdir_empty")
	mkdirAll(ctx, t, fsys, dir)
	cleanup(ctx, t, fsys, dir)

	if err := pathname.Rmdir(ctx, fsys, dir, 0); err != nil {
		t.Fatalf("Rmdir(%v): %v", dir, err)
	}
	if pathname.Exists(ctx, fsys, dir, pathname.ExistsAny) {
		t.Errorf("Exists(%v) = true after Rmdir", dir)
	}
}

func testRmdirNotEmpty(
	ctx context.Context, t *testing.T, fsys pathname.FS,
) {
	requireRemove(t, fsys)
	dir := dirPath(fsys, "test_rmdir_notempty")
	sub := dirPath(fsys, "test_rmdir_notempty", "sub")
	mkdirAll(ctx, t, fsys, sub)
	cleanup(ctx, t, fsys, dir)

	if err := pathname.Rmdir(ctx, fsys, dir, 0); err == nil {
		t.Fatalf("Rmdir(%v) on non-empty directory: got nil error", dir)
	}
	if !pathname.DirExists(ctx, fsys, sub) {
		t.Errorf("DirExists(%v) = false after failed Rmdir", sub)
	}
}

func testRmdirFull(ctx context.Context, t *testing.T, fsys pathname.FS) {
	requireRemove(t, fsys)
	dir := dirPath(fsys, "test_rmdir_full")
	mkdirAll(ctx, t, fsys, dirPath(fsys, "test_rmdir_full", "a", "b"))
	mkdirAll(ctx, t, fsys, dirPath(fsys, "test_rmdir_full", "c"))
	cleanup(ctx, t, fsys, dir)

	if err := pathname.Rmdir(ctx, fsys, dir, pathname.RmdirFull); err != nil {
		t.Fatalf("Rmdir(%v, RmdirFull): %v", dir, err)
	}
	if pathname.Exists(ctx, fsys, dir, pathname.ExistsAny) {
		t.Errorf("Exists(%v) = true after Rmdir", dir)
	}
}

func testRmdirFullKeepsFiles(
	ctx context.Context, t *testing.T, fsys pathname.FS,
) {
	requireRemove(t, fsys)
	dir := dirPath(fsys, "test_rmdir_files")
	empty := dirPath(fsys, "test_rmdir_files", "empty")
	file := filePath(fsys, "keep.txt", "test_rmdir_files", "full")
	mkdirAll(ctx, t, fsys, empty)
	mkdirAll(ctx, t, fsys, file)
	cleanup(ctx, t, fsys, dir)
	writeFile(ctx, t, fsys, file, "keep")

	if err := pathname.Rmdir(ctx, fsys, dir, pathname.RmdirFull); err == nil {
		t.Fatalf("Rmdir(%v, RmdirFull) with files: got nil error", dir)
	}
	if !pathname.FileExists(ctx, fsys, file) {
		t.Errorf("FileExists(%v) = false, want file kept", file)
	}
	if pathname.Exists(ctx, fsys, empty, pathname.ExistsAny) {
		t.Errorf("Exists(%v) = true, want empty directory removed", empty)
	}
}

func testRemoveAll(ctx context.Context, t *testing.T, fsys pathname.FS) {
	requireRemove(t, fsys)
	dir := dirPath(fsys, "test_removeall")
	files := []pathname.Path{
		filePath(fsys, "a.txt", "test_removeall"),
		filePath(fsys, "b.txt", "test_removeall", "x"),
		filePath(fsys, "c", "test_removeall", "x", "y"),
	}
	cleanup(ctx, t, fsys, dir)
	for _, f := range files {
		mkdirAll(ctx, t, fsys, f)
		writeFile(ctx, t, fsys, f, f.FullName())
	}

	if err := pathname.RemoveAll(ctx, fsys, dir, true); err != nil {
		t.Fatalf("RemoveAll(%v, true): %v", dir, err)
	}
	if pathname.Exists(ctx, fsys, dir, pathname.ExistsAny) {
		t.Errorf("Exists(%v) = true after RemoveAll", dir)
	}
}
