package fstest

import (
	"context"
	"testing"

	"lesiw.io/pathname"
)

func testRemoveAllKeepsTarget(
	ctx context.Context, t *testing.T, fsys pathname.FS,
) {
	requireRemove(t, fsys)
	keep := dirPath(fsys, "test_link_keep")
	data := filePath(fsys, "data.txt", "test_link_keep")
	tree := dirPath(fsys, "test_link_tree")
	link := filePath(fsys, "link", "test_link_tree")
	mkdirAll(ctx, t, fsys, keep)
	mkdirAll(ctx, t, fsys, tree)
	cleanup(ctx, t, fsys, keep)
	cleanup(ctx, t, fsys, tree)
	writeFile(ctx, t, fsys, data, "data")
	symlink(ctx, t, fsys,
		name(fsys, dirPath(fsys, "..", "test_link_keep")), link)

	if err := pathname.RemoveAll(ctx, fsys, tree, true); err != nil {
		t.Fatalf("RemoveAll(%v, true): %v", tree, err)
	}
	if pathname.Exists(ctx, fsys, tree, pathname.ExistsAny) {
		t.Errorf("Exists(%v) = true after RemoveAll", tree)
	}
	if !pathname.FileExists(ctx, fsys, data) {
		t.Errorf("FileExists(%v) = false, link target was removed", data)
	}
}

func testRmdirOnLink(ctx context.Context, t *testing.T, fsys pathname.FS) {
	requireRemove(t, fsys)
	target := dirPath(fsys, "test_rmdir_link_target")
	data := filePath(fsys, "data.txt", "test_rmdir_link_target")
	link := dirPath(fsys, "test_rmdir_link")
	mkdirAll(ctx, t, fsys, target)
	cleanup(ctx, t, fsys, target)
	writeFile(ctx, t, fsys, data, "data")
	symlink(ctx, t, fsys, "test_rmdir_link_target", link)
	cleanup(ctx, t, fsys, link)

	err := pathname.Rmdir(ctx, fsys, link, pathname.RmdirRecursive)
	if err != nil {
		t.Fatalf("Rmdir(%v, RmdirRecursive): %v", link, err)
	}
	noFollow := link
	noFollow.NoFollow = true
	if pathname.Exists(ctx, fsys, noFollow, pathname.ExistsAny) {
		t.Errorf("Exists(%v) = true, want link removed", link)
	}
	if !pathname.FileExists(ctx, fsys, data) {
		t.Errorf("FileExists(%v) = false, link target was emptied", data)
	}
}

func testExistsSymlink(
	ctx context.Context, t *testing.T, fsys pathname.FS,
) {
	if _, ok := fsys.(pathname.LstatFS); !ok {
		t.Skip("LstatFS not supported")
	}
	dir := dirPath(fsys, "test_exists_link")
	file := filePath(fsys, "file.txt", "test_exists_link")
	link := filePath(fsys, "link", "test_exists_link")
	dangling := filePath(fsys, "dangling", "test_exists_link")
	mkdirAll(ctx, t, fsys, dir)
	cleanup(ctx, t, fsys, dir)
	writeFile(ctx, t, fsys, file, "x")
	symlink(ctx, t, fsys, "file.txt", link)
	symlink(ctx, t, fsys, "missing.txt", dangling)

	noFollow := func(p pathname.Path) pathname.Path {
		p.NoFollow = true
		return p
	}
	tests := []struct {
		p     pathname.Path
		kinds pathname.ExistFlag
		want  bool
	}{
		{link, pathname.ExistsSymlink, true},
		{link, pathname.ExistsFile, true},
		{link, pathname.ExistsAny, true},
		{noFollow(link), pathname.ExistsFile, false},
		{noFollow(link), pathname.ExistsSymlink, true},
		{dangling, pathname.ExistsAny, false},
		{dangling, pathname.ExistsSymlink, true},
		{noFollow(dangling), pathname.ExistsAny, true},
		{file, pathname.ExistsSymlink, false},
	}
	for _, tt := range tests {
		got := pathname.Exists(ctx, fsys, tt.p, tt.kinds)
		if got != tt.want {
			t.Errorf("Exists(%v, NoFollow=%v, %#x) = %v, want %v",
				tt.p, tt.p.NoFollow, tt.kinds, got, tt.want)
		}
	}
}

func testResolveLink(ctx context.Context, t *testing.T, fsys pathname.FS) {
	if _, ok := fsys.(pathname.ReadLinkFS); !ok {
		t.Skip("ReadLinkFS not supported")
	}
	top := dirPath(fsys, "test_resolve")
	link := filePath(fsys, "link", "test_resolve", "sub")
	mkdirAll(ctx, t, fsys, link)
	cleanup(ctx, t, fsys, top)
	symlink(ctx, t, fsys,
		name(fsys, filePath(fsys, "target.txt", "..")), link)

	got, err := pathname.ResolveLink(ctx, fsys, link)
	if err != nil {
		t.Fatalf("ResolveLink(%v): %v", link, err)
	}
	want := filePath(fsys, "target.txt", "test_resolve")
	if name(fsys, got) != name(fsys, want) {
		t.Errorf("ResolveLink(%v) = %v, want %v", link, got, want)
	}
}
