// Package smbfs implements lesiw.io/pathname.FS for SMB/CIFS file shares.
//
// Names use the DOS format and are relative to the root of the mounted
// share; a leading separator is ignored. Volumes are not supported,
// since a share is mounted by name rather than by drive letter.
package smbfs

import (
	"context"
	"errors"
	"iter"
	"net"
	"os"
	"strings"
	"time"

	"github.com/hirochachacha/go-smb2"

	"lesiw.io/pathname"
)

// FS implements pathname.FS using an SMB share.
type FS struct {
	conn    net.Conn
	session *smb2.Session
	share   *smb2.Share
}

// Dial connects to an SMB server and mounts a share.
//
// addr: SMB server address (e.g., "localhost:445")
// shareName: Share name to connect to (e.g., "public")
// user: Username for authentication
// password: Password for authentication
func Dial(addr, shareName, user, password string) (*FS, error) {
	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return nil, err
	}

	d := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     user,
			Password: password,
		},
	}
	session, err := d.Dial(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	share, err := session.Mount(shareName)
	if err != nil {
		_ = session.Logoff()
		_ = conn.Close()
		return nil, err
	}
	return &FS{conn: conn, session: session, share: share}, nil
}

// Close unmounts the share and ends the session.
func (f *FS) Close() error {
	err := f.share.Umount()
	if lerr := f.session.Logoff(); err == nil {
		err = lerr
	}
	if cerr := f.conn.Close(); err == nil {
		err = cerr
	}
	return err
}

// shareName returns the name of name within the share. The share root
// is ".".
func shareName(name string) string {
	name = strings.TrimLeft(name, `\/`)
	name = strings.TrimSuffix(name, `\`)
	if name == "" {
		return "."
	}
	return name
}

// Format implements pathname.FormatFS.
func (f *FS) Format() pathname.Format { return pathname.DOS }

// Stat implements pathname.FS.
func (f *FS) Stat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	info, err := f.share.Stat(shareName(name))
	if err != nil {
		return nil, convertError("stat", name, err)
	}
	return info, nil
}

// Lstat implements pathname.LstatFS.
func (f *FS) Lstat(
	ctx context.Context, name string,
) (pathname.FileInfo, error) {
	info, err := f.share.Lstat(shareName(name))
	if err != nil {
		return nil, convertError("lstat", name, err)
	}
	return info, nil
}

// ReadLink implements pathname.ReadLinkFS.
func (f *FS) ReadLink(ctx context.Context, name string) (string, error) {
	target, err := f.share.Readlink(shareName(name))
	if err != nil {
		return "", convertError("readlink", name, err)
	}
	return target, nil
}

// ReadDir implements pathname.ReadDirFS.
func (f *FS) ReadDir(
	ctx context.Context, name string,
) iter.Seq2[pathname.DirEntry, error] {
	return func(yield func(pathname.DirEntry, error) bool) {
		entries, err := f.share.ReadDir(shareName(name))
		if err != nil {
			yield(nil, convertError("readdir", name, err))
			return
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			// Samba keeps soft deletes here.
			if entry.Name() == ".deleted" {
				continue
			}
			if !yield(&dirEntry{info: entry}, nil) {
				return
			}
		}
	}
}

// Mkdir implements pathname.MkdirFS.
func (f *FS) Mkdir(ctx context.Context, name string) error {
	err := f.share.Mkdir(
		shareName(name), os.FileMode(pathname.DirMode(ctx)),
	)
	if err != nil {
		return convertError("mkdir", name, err)
	}
	return nil
}

// Remove implements pathname.RemoveFS.
func (f *FS) Remove(ctx context.Context, name string) error {
	sn := shareName(name)
	if sn == "." {
		return &pathname.PathError{
			Op: "remove", Path: name, Err: pathname.ErrInvalid,
		}
	}
	if err := f.share.Remove(sn); err != nil {
		return convertError("remove", name, err)
	}
	return nil
}

// CreateExcl implements pathname.CreateFS.
func (f *FS) CreateExcl(
	ctx context.Context, name string,
) (pathname.File, error) {
	file, err := f.share.OpenFile(
		shareName(name),
		os.O_RDWR|os.O_CREATE|os.O_EXCL,
		os.FileMode(pathname.FileMode(ctx)),
	)
	if err != nil {
		return nil, convertError("create", name, err)
	}
	return &smbFile{File: file, name: name}, nil
}

// convertError converts SMB and OS errors to pathname errors.
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
	case errors.Is(err, os.ErrInvalid):
		err = pathname.ErrInvalid
	}
	return &pathname.PathError{Op: op, Path: name, Err: err}
}

// smbFile reports the name it was created under.
type smbFile struct {
	*smb2.File
	name string
}

func (s *smbFile) Name() string { return s.name }

// dirEntry wraps os.FileInfo to implement pathname.DirEntry.
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
	_ pathname.ReadLinkFS = (*FS)(nil)
	_ pathname.ReadDirFS  = (*FS)(nil)
	_ pathname.MkdirFS    = (*FS)(nil)
	_ pathname.RemoveFS   = (*FS)(nil)
	_ pathname.CreateFS   = (*FS)(nil)
)
