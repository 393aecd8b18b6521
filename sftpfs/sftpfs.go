// Package sftpfs implements lesiw.io/pathname.FS over SFTP.
//
// Names use the Posix format and are resolved against an optional base
// path on the server. SFTP has no atomic temporary files, so
// pathname.CreateTemp falls back to exclusive creation of candidate
// names, and files created for deletion on close are removed after they
// are closed.
package sftpfs

import (
	"context"
	"errors"
	"iter"
	"os"
	"path"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"lesiw.io/pathname"
)

// FS implements lesiw.io/pathname.FS using an SFTP client.
type FS struct {
	client   *sftp.Client
	sshConn  *ssh.Client
	basePath string
}

// Dial connects to the SFTP server at addr with password authentication
// and returns a filesystem backed by the connection.
//
// The host key is not verified.
func Dial(addr, user, password string) (*FS, error) {
	config := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         10 * time.Second,
	}

	// Establish SSH connection (required for SFTP)
	sshConn, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, err
	}

	client, err := sftp.NewClient(sshConn)
	if err != nil {
		_ = sshConn.Close()
		return nil, err
	}
	return &FS{client: client, sshConn: sshConn}, nil
}

// New returns a filesystem backed by an established SFTP client.
// Close closes the client.
func New(client *sftp.Client) *FS {
	return &FS{client: client}
}

// SetBasePath sets a base path prefix for relative names.
// Useful when the SFTP server restricts access to a subdirectory.
func (f *FS) SetBasePath(base string) {
	f.basePath = base
}

func (f *FS) fullPath(name string) string {
	if f.basePath != "" && !path.IsAbs(name) {
		name = path.Join(f.basePath, name)
	}
	return path.Clean(name)
}

// Close closes the SFTP client and the SSH connection, if any.
func (f *FS) Close() error {
	err := f.client.Close()
	if f.sshConn != nil {
		if cerr := f.sshConn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Format implements pathname.FormatFS.
func (f *FS) Format() pathname.Format { return pathname.Posix }

// Stat implements pathname.FS.
func (f *FS) Stat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	info, err := f.client.Stat(f.fullPath(name))
	if err != nil {
		return nil, convertError("stat", name, err)
	}
	return info, nil
}

// Lstat implements pathname.LstatFS.
func (f *FS) Lstat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	info, err := f.client.Lstat(f.fullPath(name))
	if err != nil {
		return nil, convertError("lstat", name, err)
	}
	return info, nil
}

// ReadDir implements pathname.ReadDirFS.
func (f *FS) ReadDir(
	ctx context.Context, name string,
) iter.Seq2[pathname.DirEntry, error] {
	return func(yield func(pathname.DirEntry, error) bool) {
		// Check if this is a file (not a directory)
		info, statErr := f.Stat(ctx, name)
		if statErr == nil && !info.IsDir() {
			yield(nil, &pathname.PathError{
				Op:   "readdir",
				Path: name,
				Err:  pathname.ErrNotDir,
			})
			return
		}

		entries, err := f.client.ReadDir(f.fullPath(name))
		if err != nil {
			yield(nil, convertError("readdir", name, err))
			return
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(&dirEntry{info: entry}, nil) {
				return
			}
		}
	}
}

// Mkdir implements pathname.MkdirFS.
func (f *FS) Mkdir(ctx context.Context, name string) error {
	full := f.fullPath(name)
	if err := f.client.Mkdir(full); err != nil {
		return f.createError("mkdir", name, full, err)
	}
	mode := os.FileMode(pathname.DirMode(ctx))
	info, err := f.client.Stat(full)
	if err == nil && info.Mode().Perm() == mode.Perm() {
		return nil
	}
	if err := f.client.Chmod(full, mode); err != nil {
		return convertError("chmod", name, err)
	}
	return nil
}

// Remove implements pathname.RemoveFS.
func (f *FS) Remove(ctx context.Context, name string) error {
	if err := f.client.Remove(f.fullPath(name)); err != nil {
		return convertError("remove", name, err)
	}
	return nil
}

// CreateExcl implements pathname.CreateFS.
func (f *FS) CreateExcl(
	ctx context.Context, name string,
) (pathname.File, error) {
	full := f.fullPath(name)
	file, err := f.client.OpenFile(full, os.O_RDWR|os.O_CREATE|os.O_EXCL)
	if err != nil {
		return nil, f.createError("create", name, full, err)
	}
	if err := file.Chmod(os.FileMode(pathname.FileMode(ctx))); err != nil {
		_ = file.Close()
		return nil, convertError("chmod", name, err)
	}
	return &sftpFile{File: file, name: name}, nil
}

// Symlink implements pathname.SymlinkFS.
func (f *FS) Symlink(ctx context.Context, oldname, newname string) error {
	if err := f.client.Symlink(oldname, f.fullPath(newname)); err != nil {
		return convertError("symlink", newname, err)
	}
	return nil
}

// ReadLink implements pathname.ReadLinkFS.
func (f *FS) ReadLink(ctx context.Context, name string) (string, error) {
	target, err := f.client.ReadLink(f.fullPath(name))
	if err != nil {
		return "", convertError("readlink", name, err)
	}
	return target, nil
}

// createError converts a failure to create name. SFTP version 3 has no
// status for a name that is taken, so one is reported as ErrExist.
func (f *FS) createError(op, name, full string, err error) error {
	if _, serr := f.client.Lstat(full); serr == nil {
		err = pathname.ErrExist
	}
	return convertError(op, name, err)
}

// convertError converts SFTP and OS errors to pathname errors.
func convertError(op, name string, err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}

	switch {
	case errors.Is(err, os.ErrNotExist):
		err = pathname.ErrNotExist
	case errors.Is(err, os.ErrExist):
		err = pathname.ErrExist
	case errors.Is(err, os.ErrPermission):
		err = pathname.ErrPermission
	}
	return &pathname.PathError{Op: op, Path: name, Err: err}
}

// sftpFile reports the name it was created under rather than the
// server path.
type sftpFile struct {
	*sftp.File
	name string
}

func (s *sftpFile) Name() string { return s.name }

// dirEntry wraps os.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info os.FileInfo
}

func (de *dirEntry) Name() string        { return de.info.Name() }
func (de *dirEntry) IsDir() bool         { return de.info.IsDir() }
func (de *dirEntry) Type() pathname.Mode { return de.info.Mode().Type() }

func (de *dirEntry) Info() (pathname.FileInfo, error) {
	return de.info, nil
}

// Compile-time interface checks
var (
	_ pathname.FormatFS   = (*FS)(nil)
	_ pathname.LstatFS    = (*FS)(nil)
	_ pathname.ReadDirFS  = (*FS)(nil)
	_ pathname.MkdirFS    = (*FS)(nil)
	_ pathname.RemoveFS   = (*FS)(nil)
	_ pathname.CreateFS   = (*FS)(nil)
	_ pathname.SymlinkFS  = (*FS)(nil)
	_ pathname.ReadLinkFS = (*FS)(nil)
)
