package fstest

import (
	"context"
	"testing"

	"lesiw.io/pathname"
)

func testExists(ctx context.Context, t *testing.T, fsys pathname.FS) {
	dir := dirPath(fsys, "test_exists")
	file := filePath(fsys, "file.txt", "test_exists")
	missing := filePath(fsys, "missing.txt", "test_exists")
	mkdirAll(ctx, t, fsys, dir)
	cleanup(ctx, t, fsys, dir)
	writeFile(ctx, t, fsys, file, "x")

	tests := []struct {
		p     pathname.Path
		kinds pathname.ExistFlag
		want  bool
	}{
		{file, pathname.ExistsAny, true},
		{file, pathname.ExistsFile, true},
		{file, pathname.ExistsDir, false},
		{file, pathname.ExistsFile | pathname.ExistsDir, true},
		{dir, pathname.ExistsDir, true},
		{dir, pathname.ExistsFile, false},
		{missing, pathname.ExistsAny, false},
		{missing, pathname.ExistsFile, false},
	}
	for _, tt := range tests {
		got := pathname.Exists(ctx, fsys, tt.p, tt.kinds)
		if got != tt.want {
			t.Errorf("Exists(%v, %#x) = %v, want %v",
				tt.p, tt.kinds, got, tt.want)
		}
	}

	if !pathname.FileExists(ctx, fsys, file) {
		t.Errorf("FileExists(%v) = false, want true", file)
	}
	if pathname.FileExists(ctx, fsys, dir) {
		t.Errorf("FileExists(%v) = true, want false", dir)
	}
	// A leaf names a directory when read as one.
	asLeaf := filePath(fsys, "test_exists")
	if !pathname.DirExists(ctx, fsys, asLeaf) {
		t.Errorf("DirExists(%v) = false, want true", asLeaf)
	}
	if pathname.DirExists(ctx, fsys, file) {
		t.Errorf("DirExists(%v) = true, want false", file)
	}
}
