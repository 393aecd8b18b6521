// Package webdavfs implements lesiw.io/pathname.FS for WebDAV servers.
//
// WebDAV has no symbolic links and no exclusive creation, so only the
// directory operations of lesiw.io/pathname are available: Exists,
// Mkdir, MkdirAll, Rmdir and RemoveAll. Names use the Posix format and
// are rooted at the server URL.
package webdavfs

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"path"
	"time"

	"github.com/studio-b12/gowebdav"

	"lesiw.io/pathname"
)

// FS implements pathname.FS for WebDAV servers.
type FS struct {
	client *gowebdav.Client
}

// New creates a new WebDAV filesystem and checks the connection.
//
// url: WebDAV server URL (e.g., "http://localhost:8080/webdav")
// user: Username for authentication
// password: Password for authentication
func New(url, user, password string) (*FS, error) {
	client := gowebdav.NewClient(url, user, password)
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to WebDAV server: %w", err)
	}
	return &FS{client: client}, nil
}

// Client returns the underlying WebDAV client, for transferring file
// contents.
func (f *FS) Client() *gowebdav.Client { return f.client }

func normalize(name string) string {
	return path.Join("/", name)
}

// Format implements pathname.FormatFS.
func (f *FS) Format() pathname.Format { return pathname.Posix }

// Stat implements pathname.FS.
func (f *FS) Stat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	full := normalize(name)
	info, err := f.client.Stat(full)
	if err != nil {
		return nil, convertError("stat", name, err)
	}
	return &fileInfo{
		name: path.Base(full),
		size: info.Size(),
		mode: info.Mode(),
		time: info.ModTime(),
	}, nil
}

// ReadDir implements pathname.ReadDirFS.
func (f *FS) ReadDir(
	ctx context.Context, name string,
) iter.Seq2[pathname.DirEntry, error] {
	return func(yield func(pathname.DirEntry, error) bool) {
		infos, err := f.client.ReadDir(normalize(name))
		if err != nil {
			yield(nil, convertError("readdir", name, err))
			return
		}
		for _, info := range infos {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			entry := &fileInfo{
				name: info.Name(),
				size: info.Size(),
				mode: info.Mode(),
				time: info.ModTime(),
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}

// Remove implements pathname.RemoveFS. WebDAV deletes collections with
// their contents, so Remove refuses directories that are not empty.
func (f *FS) Remove(ctx context.Context, name string) error {
	info, statErr := f.Stat(ctx, name)
	if statErr != nil {
		return statErr
	}
	if info.IsDir() {
		for _, readErr := range f.ReadDir(ctx, name) {
			if readErr != nil {
				return readErr
			}
			return &pathname.PathError{
				Op:   "remove",
				Path: name,
				Err:  errDirNotEmpty,
			}
		}
	}
	if err := f.client.Remove(normalize(name)); err != nil {
		return convertError("remove", name, err)
	}
	return nil
}

// Mkdir implements pathname.MkdirFS.
//
// The client reports MKCOL on an existing collection as success, so an
// existing name is detected with a Stat first.
func (f *FS) Mkdir(ctx context.Context, name string) error {
	full := normalize(name)
	if _, err := f.client.Stat(full); err == nil {
		return &pathname.PathError{
			Op: "mkdir", Path: name, Err: pathname.ErrExist,
		}
	} else if !gowebdav.IsErrNotFound(err) {
		return convertError("mkdir", name, err)
	}
	err := f.client.Mkdir(full, pathname.DirMode(ctx))
	if err != nil {
		return convertError("mkdir", name, err)
	}
	return nil
}

// convertError maps WebDAV status codes to pathname errors.
func convertError(op, name string, err error) error {
	switch {
	case gowebdav.IsErrNotFound(err),
		gowebdav.IsErrCode(err, http.StatusConflict):
		err = pathname.ErrNotExist
	case gowebdav.IsErrCode(err, http.StatusMethodNotAllowed):
		err = pathname.ErrExist
	case gowebdav.IsErrCode(err, http.StatusForbidden),
		gowebdav.IsErrCode(err, http.StatusUnauthorized):
		err = pathname.ErrPermission
	}
	return &pathname.PathError{Op: op, Path: name, Err: err}
}

// fileInfo implements both pathname.FileInfo and pathname.DirEntry.
type fileInfo struct {
	name string
	size int64
	mode pathname.Mode
	time time.Time
}

func (fi *fileInfo) Name() string        { return fi.name }
func (fi *fileInfo) Size() int64         { return fi.size }
func (fi *fileInfo) Mode() pathname.Mode { return fi.mode }
func (fi *fileInfo) ModTime() time.Time  { return fi.time }
func (fi *fileInfo) Sys() any            { return nil }
func (fi *fileInfo) IsDir() bool         { return fi.mode.IsDir() }
func (fi *fileInfo) Type() pathname.Mode { return fi.mode.Type() }

func (fi *fileInfo) Info() (pathname.FileInfo, error) { return fi, nil }

// Compile-time interface checks
var (
	_ pathname.FormatFS  = (*FS)(nil)
	_ pathname.ReadDirFS = (*FS)(nil)
	_ pathname.RemoveFS  = (*FS)(nil)
	_ pathname.MkdirFS   = (*FS)(nil)
	_ pathname.DirEntry  = (*fileInfo)(nil)
)
