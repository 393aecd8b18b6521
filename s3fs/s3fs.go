// Package s3fs implements lesiw.io/pathname.FS for S3-compatible object
// storage such as MinIO.
//
// Names use the Posix format and map to object keys in a single bucket.
// Directories are marker objects whose key ends in a slash; a prefix
// shared by other keys also counts as a directory. S3 has no symbolic
// links or permission bits, so DirMode and FileMode are ignored.
//
// Files are created with a conditional write and uploaded in full when
// they are closed.
package s3fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"lesiw.io/pathname"
)

// FS implements pathname.FS for an S3 bucket.
type FS struct {
	client *minio.Client
	bucket string
}

// New creates a new S3 filesystem.
//
// endpoint: S3 endpoint (e.g., "localhost:9000" for MinIO)
// bucket: S3 bucket name
// accessKey: S3 access key
// secretKey: S3 secret key
// useSSL: whether to use HTTPS
func New(
	endpoint, bucket, accessKey, secretKey string, useSSL bool,
) (*FS, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}
	return &FS{client: client, bucket: bucket}, nil
}

// Client returns the underlying MinIO client.
func (f *FS) Client() *minio.Client { return f.client }

// key returns the object key for name. The bucket root is "".
func key(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

// prefix returns the listing prefix of the directory with key k.
func prefix(k string) string {
	if k == "" {
		return ""
	}
	return k + "/"
}

// Format implements pathname.FormatFS.
func (f *FS) Format() pathname.Format { return pathname.Posix }

// Stat implements pathname.FS.
func (f *FS) Stat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	k := key(name)
	if k == "" {
		return &fileInfo{name: ".", mode: 0755 | pathname.ModeDir}, nil
	}
	obj, err := f.client.StatObject(
		ctx, f.bucket, k, minio.StatObjectOptions{},
	)
	if err == nil {
		return &fileInfo{
			name: path.Base(k),
			size: obj.Size,
			mode: 0644,
			time: obj.LastModified,
		}, nil
	}
	if minio.ToErrorResponse(err).Code != minio.NoSuchKey {
		return nil, convertError("stat", name, err)
	}

	// Not an object; look for a marker or any key below it.
	obj, found, err := f.first(ctx, prefix(k))
	if err != nil {
		return nil, convertError("stat", name, err)
	}
	if !found {
		return nil, &pathname.PathError{
			Op: "stat", Path: name, Err: pathname.ErrNotExist,
		}
	}
	return &fileInfo{
		name: path.Base(k),
		mode: 0755 | pathname.ModeDir,
		time: obj.LastModified,
	}, nil
}

// first returns the first object listed under pfx.
func (f *FS) first(
	ctx context.Context, pfx string,
) (minio.ObjectInfo, bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range f.client.ListObjectsIter(
		ctx, f.bucket, minio.ListObjectsOptions{
			Prefix:  pfx,
			MaxKeys: 1,
		},
	) {
		if obj.Err != nil {
			return minio.ObjectInfo{}, false, obj.Err
		}
		return obj, true, nil
	}
	return minio.ObjectInfo{}, false, nil
}

// ReadDir implements pathname.ReadDirFS.
func (f *FS) ReadDir(
	ctx context.Context, name string,
) iter.Seq2[pathname.DirEntry, error] {
	return func(yield func(pathname.DirEntry, error) bool) {
		info, err := f.Stat(ctx, name)
		if err != nil {
			yield(nil, err)
			return
		}
		if !info.IsDir() {
			yield(nil, &pathname.PathError{
				Op: "readdir", Path: name, Err: pathname.ErrNotDir,
			})
			return
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		pfx := prefix(key(name))
		for obj := range f.client.ListObjectsIter(
			ctx, f.bucket, minio.ListObjectsOptions{Prefix: pfx},
		) {
			if obj.Err != nil {
				yield(nil, convertError("readdir", name, obj.Err))
				return
			}
			// Skip the directory's own marker.
			rel := strings.TrimPrefix(obj.Key, pfx)
			if rel == "" {
				continue
			}
			entry := &fileInfo{
				name: strings.TrimSuffix(rel, "/"),
				size: obj.Size,
				mode: 0644,
				time: obj.LastModified,
			}
			if strings.HasSuffix(rel, "/") {
				entry.mode = 0755 | pathname.ModeDir
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}

// Mkdir implements pathname.MkdirFS. The parent directory must exist.
func (f *FS) Mkdir(ctx context.Context, name string) error {
	k := key(name)
	if err := f.checkNew(ctx, "mkdir", name, k); err != nil {
		return err
	}
	_, err := f.client.PutObject(
		ctx, f.bucket, prefix(k), bytes.NewReader(nil), 0,
		minio.PutObjectOptions{},
	)
	if err != nil {
		return convertError("mkdir", name, err)
	}
	return nil
}

// checkNew reports whether an entry may be created at key k: k must be
// unused and its parent an existing directory.
func (f *FS) checkNew(ctx context.Context, op, name, k string) error {
	if k == "" {
		return &pathname.PathError{
			Op: op, Path: name, Err: pathname.ErrExist,
		}
	}
	_, err := f.Stat(ctx, k)
	if err == nil {
		return &pathname.PathError{
			Op: op, Path: name, Err: pathname.ErrExist,
		}
	}
	if !errors.Is(err, pathname.ErrNotExist) {
		return err
	}
	parent := path.Dir(k)
	if parent == "." {
		return nil
	}
	info, err := f.Stat(ctx, parent)
	if errors.Is(err, pathname.ErrNotExist) {
		return &pathname.PathError{
			Op: op, Path: name, Err: pathname.ErrNotExist,
		}
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &pathname.PathError{
			Op: op, Path: name, Err: pathname.ErrNotDir,
		}
	}
	return nil
}

// Remove implements pathname.RemoveFS. Directories must be empty.
func (f *FS) Remove(ctx context.Context, name string) error {
	k := key(name)
	if k == "" {
		return &pathname.PathError{
			Op: "remove", Path: name, Err: pathname.ErrInvalid,
		}
	}
	info, err := f.Stat(ctx, name)
	if err != nil {
		return err
	}
	if info.IsDir() {
		for _, readErr := range f.ReadDir(ctx, name) {
			if readErr != nil {
				return readErr
			}
			return &pathname.PathError{
				Op: "remove", Path: name, Err: errDirNotEmpty,
			}
		}
		k = prefix(k)
	}
	err = f.client.RemoveObject(
		ctx, f.bucket, k, minio.RemoveObjectOptions{},
	)
	if err != nil {
		return convertError("remove", name, err)
	}
	return nil
}

// CreateExcl implements pathname.CreateFS.
//
// The name is reserved with an empty object that is only written if no
// object with that key exists. The content is uploaded on Close.
func (f *FS) CreateExcl(
	ctx context.Context, name string,
) (pathname.File, error) {
	k := key(name)
	if err := f.checkNew(ctx, "create", name, k); err != nil {
		return nil, err
	}
	opts := minio.PutObjectOptions{ContentType: "application/octet-stream"}
	opts.SetMatchETagExcept("*")
	_, err := f.client.PutObject(
		ctx, f.bucket, k, bytes.NewReader(nil), 0, opts,
	)
	if err != nil {
		return nil, convertError("create", name, err)
	}
	return &writer{
		ctx:    context.WithoutCancel(ctx),
		client: f.client,
		bucket: f.bucket,
		key:    k,
		name:   name,
	}, nil
}

// writer buffers writes and uploads them on Close.
type writer struct {
	ctx    context.Context
	client *minio.Client
	bucket string
	key    string
	name   string
	buf    bytes.Buffer
	closed bool
}

func (w *writer) Name() string { return w.name }

func (w *writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, &pathname.PathError{
			Op: "write", Path: w.name, Err: pathname.ErrClosed,
		}
	}
	return w.buf.Write(p)
}

func (w *writer) Close() error {
	if w.closed {
		return &pathname.PathError{
			Op: "close", Path: w.name, Err: pathname.ErrClosed,
		}
	}
	w.closed = true
	if w.buf.Len() == 0 {
		return nil
	}
	_, err := w.client.PutObject(
		w.ctx, w.bucket, w.key,
		bytes.NewReader(w.buf.Bytes()), int64(w.buf.Len()),
		minio.PutObjectOptions{ContentType: "application/octet-stream"},
	)
	if err != nil {
		return convertError("close", w.name, err)
	}
	return nil
}

// convertError maps S3 error responses to pathname errors.
func convertError(op, name string, err error) error {
	resp := minio.ToErrorResponse(err)
	switch {
	case resp.Code == minio.NoSuchKey:
		err = pathname.ErrNotExist
	case resp.Code == minio.PreconditionFailed:
		err = pathname.ErrExist
	case resp.StatusCode == http.StatusForbidden:
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
	_ pathname.MkdirFS   = (*FS)(nil)
	_ pathname.RemoveFS  = (*FS)(nil)
	_ pathname.CreateFS  = (*FS)(nil)
	_ pathname.DirEntry  = (*fileInfo)(nil)
)
