// Package httpfs implements a read-only lesiw.io/pathname.FS over HTTP.
//
// Only Stat is provided, answered with HEAD requests, so the existence
// checks and Stat of lesiw.io/pathname work against a static file
// server while every operation that writes reports ErrUnsupported.
// Names use the Posix format and are resolved against the base URL.
//
// A resource is a directory when the server redirects it to a URL
// ending in a slash, as net/http.FileServer does.
package httpfs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"lesiw.io/pathname"
)

// FS implements pathname.FS for files served over HTTP.
type FS struct {
	base   *url.URL
	client *http.Client
}

// New creates a new HTTP filesystem for the given base URL.
func New(baseURL string) (*FS, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	return &FS{
		base: base,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// URL returns the URL name resolves to.
func (f *FS) URL(name string) string {
	name = path.Clean("/" + name)
	if name == "/" {
		return f.base.JoinPath("/").String()
	}
	return f.base.JoinPath(name).String()
}

// Format implements pathname.FormatFS.
func (f *FS) Format() pathname.Format { return pathname.Posix }

// Stat implements pathname.FS.
func (f *FS) Stat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodHead, f.URL(name), nil,
	)
	if err != nil {
		return nil, &pathname.PathError{Op: "stat", Path: name, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &pathname.PathError{Op: "stat", Path: name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &pathname.PathError{
			Op: "stat", Path: name, Err: statusError(resp),
		}
	}

	modTime := time.Now()
	if lastMod := resp.Header.Get("Last-Modified"); lastMod != "" {
		if t, err := http.ParseTime(lastMod); err == nil {
			modTime = t
		}
	}
	fi := &fileInfo{
		name: path.Base(path.Clean("/" + name)),
		size: resp.ContentLength,
		time: modTime,
	}
	if strings.HasSuffix(resp.Request.URL.Path, "/") {
		fi.isDir, fi.size = true, 0
	}
	return fi, nil
}

// statusError maps an HTTP status to a pathname error.
func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusGone:
		return pathname.ErrNotExist
	case http.StatusForbidden, http.StatusUnauthorized:
		return pathname.ErrPermission
	}
	return fmt.Errorf("HTTP %s", resp.Status)
}

// fileInfo implements pathname.FileInfo for HTTP resources.
type fileInfo struct {
	name  string
	isDir bool
	size  int64
	time  time.Time
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return fi.size }
func (fi *fileInfo) ModTime() time.Time { return fi.time }
func (fi *fileInfo) IsDir() bool        { return fi.isDir }
func (fi *fileInfo) Sys() any           { return nil }

func (fi *fileInfo) Mode() pathname.Mode {
	if fi.isDir {
		return 0555 | pathname.ModeDir
	}
	return 0444
}

var (
	_ pathname.FS       = (*FS)(nil)
	_ pathname.FormatFS = (*FS)(nil)
)
