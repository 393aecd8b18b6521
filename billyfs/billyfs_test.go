package billyfs

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesiw.io/pathname"
	"lesiw.io/pathname/fstest"
)

func TestMemoryFS(t *testing.T) {
	fstest.TestFS(t.Context(), t, NewMemory())
}

func TestOSFS(t *testing.T) {
	fstest.TestFS(t.Context(), t, NewOS(t.TempDir()))
}

func TestUnwrap(t *testing.T) {
	bfs := memfs.New()
	fsys := New(bfs)
	assert.Same(t, bfs, fsys.Unwrap())
}

func TestMkdirParent(t *testing.T) {
	ctx := t.Context()
	fsys := NewMemory()

	err := fsys.Mkdir(ctx, "missing/child")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pathname.ErrNotExist))

	f, err := fsys.CreateExcl(ctx, "file")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	err = fsys.Mkdir(ctx, "file/child")
	assert.ErrorIs(t, err, pathname.ErrNotDir)

	require.NoError(t, fsys.Mkdir(ctx, "dir"))
	err = fsys.Mkdir(ctx, "dir")
	assert.ErrorIs(t, err, pathname.ErrExist)
}

func TestCreateExcl(t *testing.T) {
	ctx := t.Context()
	fsys := NewMemory()

	f, err := fsys.CreateExcl(ctx, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", f.Name())
	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = fsys.CreateExcl(ctx, "a.txt")
	assert.ErrorIs(t, err, pathname.ErrExist)

	info, err := fsys.Stat(ctx, "a.txt")
	require.NoError(t, err)
	assert.EqualValues(t, 5, info.Size())
}

func TestCreateTempName(t *testing.T) {
	ctx := t.Context()
	fsys := NewMemory()
	require.NoError(t, fsys.Mkdir(ctx, "tmp"))

	p, f, err := pathname.CreateTemp(ctx, fsys, "tmp/scratch-", false)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Equal(t, []string{"tmp"}, p.Dirs)
	assert.Contains(t, p.FullName(), "scratch-")
	assert.True(t, pathname.FileExists(ctx, fsys, p))
}

func TestReadDirTypes(t *testing.T) {
	ctx := t.Context()
	fsys := NewMemory()
	require.NoError(t, fsys.Mkdir(ctx, "d"))
	require.NoError(t, fsys.Symlink(ctx, "d", "l"))

	types := make(map[string]pathname.Mode)
	for entry, err := range fsys.ReadDir(ctx, "/") {
		require.NoError(t, err)
		types[entry.Name()] = entry.Type()
	}
	assert.True(t, types["d"].IsDir())
	assert.NotZero(t, types["l"]&pathname.ModeSymlink)
}
