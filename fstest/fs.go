// Package fstest checks that the operations of lesiw.io/pathname behave
// correctly on top of a filesystem implementation.
package fstest

import (
	"context"
	"testing"

	"lesiw.io/pathname"
)

// TestFS runs the conformance suite against fsys.
//
// The filesystem must be writable and is expected to be empty. Tests
// that need a capability fsys lacks are skipped. Every test removes what
// it created.
//
// Typical usage:
//
//	func TestMyFS(t *testing.T) {
//	    fsys := createBlankFS(t)
//	    fstest.TestFS(t.Context(), t, fsys)
//	}
func TestFS(ctx context.Context, t *testing.T, fsys pathname.FS) {
	t.Helper()

	t.Run("Mkdir", func(t *testing.T) {
		t.Run("Basic", func(t *testing.T) {
			testMkdir(ctx, t, fsys)
		})

		t.Run("All", func(t *testing.T) {
			testMkdirAll(ctx, t, fsys)
		})

		t.Run("AllBlocked", func(t *testing.T) {
			testMkdirAllBlocked(ctx, t, fsys)
		})
	})

	t.Run("Rmdir", func(t *testing.T) {
		t.Run("Empty", func(t *testing.T) {
			testRmdirEmpty(ctx, t, fsys)
		})

		t.Run("NotEmpty", func(t *testing.T) {
			testRmdirNotEmpty(ctx, t, fsys)
		})

		t.Run("Full", func(t *testing.T) {
			testRmdirFull(ctx, t, fsys)
		})

		t.Run("FullKeepsFiles", func(t *testing.T) {
			testRmdirFullKeepsFiles(ctx, t, fsys)
		})

		t.Run("RemoveAll", func(t *testing.T) {
			testRemoveAll(ctx, t, fsys)
		})
	})

	t.Run("Symlink", func(t *testing.T) {
		t.Run("RemoveAllKeepsTarget", func(t *testing.T) {
			testRemoveAllKeepsTarget(ctx, t, fsys)
		})

		t.Run("RmdirOnLink", func(t *testing.T) {
			testRmdirOnLink(ctx, t, fsys)
		})

		t.Run("Exists", func(t *testing.T) {
			testExistsSymlink(ctx, t, fsys)
		})

		t.Run("ResolveLink", func(t *testing.T) {
			testResolveLink(ctx, t, fsys)
		})
	})

	t.Run("Exists", func(t *testing.T) {
		testExists(ctx, t, fsys)
	})

	t.Run("CreateTemp", func(t *testing.T) {
		t.Run("Unique", func(t *testing.T) {
			testCreateTempUnique(ctx, t, fsys)
		})

		t.Run("DeleteOnClose", func(t *testing.T) {
			testCreateTempDeleteOnClose(ctx, t, fsys)
		})

		t.Run("Keep", func(t *testing.T) {
			testCreateTempKeep(ctx, t, fsys)
		})
	})
}

// format returns the format fsys names files in.
func format(fsys pathname.FS) pathname.Format {
	if ffs, ok := fsys.(pathname.FormatFS); ok {
		return ffs.Format().Resolve()
	}
	return pathname.Posix
}

// dirPath returns the relative directory path made of dirs.
func dirPath(fsys pathname.FS, dirs ...string) pathname.Path {
	return pathname.Path{
		Format:   format(fsys),
		Dirs:     dirs,
		Relative: true,
	}
}

// filePath returns the relative path of leaf inside dirs.
func filePath(
	fsys pathname.FS, leaf string, dirs ...string,
) pathname.Path {
	p := dirPath(fsys, dirs...)
	p.SetFullName(leaf)
	return p
}

// name renders p the way the operations hand it to fsys.
func name(fsys pathname.FS, p pathname.Path) string {
	return pathname.Render(p, format(fsys),
		pathname.RenderVolume|pathname.RenderName)
}
