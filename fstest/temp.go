package fstest

import (
	"context"
	"slices"
	"strings"
	"testing"

	"lesiw.io/pathname"
)

// requireTemp skips the test if CreateTemp cannot work on fsys.
func requireTemp(t *testing.T, fsys pathname.FS) {
	t.Helper()
	_, hasTemp := fsys.(pathname.TempFS)
	_, hasCreate := fsys.(pathname.CreateFS)
	if !hasTemp && !hasCreate {
		t.Skip("neither TempFS nor CreateFS supported")
	}
}

func testCreateTempUnique(
	ctx context.Context, t *testing.T, fsys pathname.FS,
) {
	requireTemp(t, fsys)
	dir := dirPath(fsys, "test_temp_unique")
	prefix := filePath(fsys, "tmp", "test_temp_unique")
	mkdirAll(ctx, t, fsys, dir)
	cleanup(ctx, t, fsys, dir)

	const count = 1000
	seen := make(map[string]bool, count)
	for range count {
		p, f, err := pathname.CreateTemp(ctx, fsys,
			name(fsys, prefix), false)
		if err != nil {
			t.Fatalf("CreateTemp(%v): %v", prefix, err)
		}
		if err := f.Close(); err != nil {
			t.Errorf("Close(%v): %v", p, err)
		}
		n := name(fsys, p)
		if seen[n] {
			t.Fatalf("CreateTemp(%v) returned %q twice", prefix, n)
		}
		seen[n] = true
		if !strings.HasPrefix(p.FullName(), "tmp") {
			t.Errorf("CreateTemp(%v) = %q, want prefix %q",
				prefix, n, "tmp")
		}
		if got, want := p.Dirs, prefix.Dirs; !slices.Equal(got, want) {
			t.Errorf("CreateTemp(%v) dirs = %q, want %q",
				prefix, got, want)
		}
	}
	for n := range seen {
		p := pathname.Parse(n, format(fsys))
		if !pathname.FileExists(ctx, fsys, p) {
			t.Errorf("FileExists(%q) = false after CreateTemp", n)
		}
	}
}

func testCreateTempDeleteOnClose(
	ctx context.Context, t *testing.T, fsys pathname.FS,
) {
	requireTemp(t, fsys)
	if _, ok := fsys.(pathname.RemoveFS); !ok {
		if _, ok := fsys.(pathname.UnlinkOpenFS); !ok {
			t.Skip("neither RemoveFS nor UnlinkOpenFS supported")
		}
	}
	dir := dirPath(fsys, "test_temp_delete")
	prefix := filePath(fsys, "del", "test_temp_delete")
	mkdirAll(ctx, t, fsys, dir)
	cleanup(ctx, t, fsys, dir)

	p, f, err := pathname.CreateTemp(ctx, fsys, name(fsys, prefix), true)
	if err != nil {
		t.Fatalf("CreateTemp(%v, true): %v", prefix, err)
	}
	if _, err := f.Write([]byte("scratch")); err != nil {
		t.Errorf("Write(%v): %v", p, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(%v): %v", p, err)
	}
	p.NoFollow = true
	if pathname.Exists(ctx, fsys, p, pathname.ExistsAny) {
		t.Errorf("Exists(%v) = true after Close", p)
	}
}

func testCreateTempKeep(
	ctx context.Context, t *testing.T, fsys pathname.FS,
) {
	requireTemp(t, fsys)
	dir := dirPath(fsys, "test_temp_keep")
	mkdirAll(ctx, t, fsys, dir)
	cleanup(ctx, t, fsys, dir)

	// A directory prefix yields names made of the suffix alone.
	prefix := name(fsys, dir) + string(format(fsys).Separator())
	p, f, err := pathname.CreateTemp(ctx, fsys, prefix, false)
	if err != nil {
		t.Fatalf("CreateTemp(%q): %v", prefix, err)
	}
	if _, err := f.Write([]byte("keep")); err != nil {
		t.Errorf("Write(%v): %v", p, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(%v): %v", p, err)
	}
	if p.FullName() == "" {
		t.Errorf("CreateTemp(%q) returned a directory path", prefix)
	}
	info, err := fsys.Stat(ctx, name(fsys, p))
	if err != nil {
		t.Fatalf("Stat(%v): %v", p, err)
	}
	if got, want := info.Size(), int64(len("keep")); got != want {
		t.Errorf("Stat(%v).Size() = %d, want %d", p, got, want)
	}
}
