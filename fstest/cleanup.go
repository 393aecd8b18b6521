package fstest

import (
	"context"
	"testing"

	"lesiw.io/pathname"
)

// cleanup registers removal of dir and its contents using t.Cleanup.
func cleanup(
	ctx context.Context, t *testing.T, fsys pathname.FS, dir pathname.Path,
) {
	t.Helper()
	t.Cleanup(func() {
		if !pathname.Exists(ctx, fsys, dir, pathname.ExistsAny) {
			return
		}
		if err := pathname.RemoveAll(ctx, fsys, dir, true); err != nil {
			t.Errorf("cleanup: RemoveAll(%v): %v", dir, err)
		}
	})
}

// mkdirAll creates dir or fails the test, skipping it when fsys cannot
// create directories.
func mkdirAll(
	ctx context.Context, t *testing.T, fsys pathname.FS, dir pathname.Path,
) {
	t.Helper()
	if _, ok := fsys.(pathname.MkdirFS); !ok {
		t.Skip("MkdirFS not supported")
	}
	if err := pathname.MkdirAll(ctx, fsys, dir); err != nil {
		t.Fatalf("MkdirAll(%v): %v", dir, err)
	}
}

// writeFile creates p with the given content or fails the test.
func writeFile(
	ctx context.Context, t *testing.T, fsys pathname.FS,
	p pathname.Path, content string,
) {
	t.Helper()
	cfs, ok := fsys.(pathname.CreateFS)
	if !ok {
		t.Skip("CreateFS not supported")
	}
	f, err := cfs.CreateExcl(ctx, name(fsys, p))
	if err != nil {
		t.Fatalf("CreateExcl(%v): %v", p, err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		t.Fatalf("Write(%v): %v", p, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(%v): %v", p, err)
	}
}

// symlink creates link pointing at target, skipping the test when fsys
// has no symbolic links.
func symlink(
	ctx context.Context, t *testing.T, fsys pathname.FS,
	target string, link pathname.Path,
) {
	t.Helper()
	sfs, ok := fsys.(pathname.SymlinkFS)
	if !ok {
		t.Skip("SymlinkFS not supported")
	}
	if err := sfs.Symlink(ctx, target, name(fsys, link)); err != nil {
		t.Skipf("Symlink(%q, %v): %v", target, link, err)
	}
}
