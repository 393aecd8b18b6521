package pathname

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"time"
)

// MaxTempAttempts bounds the names CreateTemp tries when the file system
// cannot create temporary files atomically.
const MaxTempAttempts = 1000

var tempSeq atomic.Uint64

func init() {
	tempSeq.Store(uint64(time.Now().UnixNano()) & 0xffffffff)
}

// A TempFile is an open temporary file returned by CreateTemp.
type TempFile struct {
	File
	path   Path
	remove func() error
}

// Path returns the path of the file.
func (t *TempFile) Path() Path { return t.path.Clone() }

// Close closes the file. If the file was created for deletion on close and
// the file system could not unlink it while open, Close removes it now.
func (t *TempFile) Close() error {
	err := t.File.Close()
	if t.remove != nil {
		rerr := t.remove()
		t.remove = nil
		if err == nil {
			err = rerr
		}
	}
	return err
}

// CreateTemp creates and opens a new file whose name starts with prefix.
// Analogous to: [os.CreateTemp], mkstemp.
//
// The prefix is parsed in the file system's format: its directories
// select where the file is created and its leaf starts the file name.
// A prefix naming a directory, such as "/tmp/", yields names made of the
// suffix alone.
//
// If fsys implements [TempFS], the file is created atomically by the file
// system. Otherwise CreateTemp tries up to MaxTempAttempts names with
// varying suffixes, skipping names that exist and creating each with
// [CreateFS.CreateExcl], so a name taken between the check and the
// creation is skipped as well.
//
// With deleteOnClose the file is deleted once closed. If fsys implements
// [UnlinkOpenFS] the name is removed right away and only the open handle
// keeps the file alive; otherwise TempFile.Close removes it.
//
// Requires: [TempFS] || [CreateFS]; [RemoveFS] for deleteOnClose without
// [UnlinkOpenFS]
func CreateTemp(
	ctx context.Context, fsys FS, prefix string, deleteOnClose bool,
) (Path, *TempFile, error) {
	if deleteOnClose && !canDelete(fsys) {
		return Path{}, nil, &PathError{
			Op: "createtemp", Path: prefix, Err: ErrUnsupported,
		}
	}
	f := formatOf(fsys)
	pp := Parse(prefix, f)
	pp.NoFollow = true

	file, p, err := createTempFast(ctx, fsys, pp)
	if errors.Is(err, ErrUnsupported) {
		file, p, err = createTempLoop(ctx, fsys, pp, prefix)
	}
	if err != nil {
		return Path{}, nil, err
	}

	t := &TempFile{File: file, path: p}
	if deleteOnClose {
		if err = setDeleteOnClose(ctx, fsys, t); err != nil {
			_ = file.Close()
			if rfs, ok := fsys.(RemoveFS); ok {
				_ = rfs.Remove(ctx, nameOf(fsys, p))
			}
			return Path{}, nil, err
		}
	}
	return p.Clone(), t, nil
}

func canDelete(fsys FS) bool {
	if _, ok := fsys.(UnlinkOpenFS); ok {
		return true
	}
	_, ok := fsys.(RemoveFS)
	return ok
}

func createTempFast(
	ctx context.Context, fsys FS, pp Path,
) (File, Path, error) {
	tfs, ok := fsys.(TempFS)
	if !ok {
		return nil, Path{}, ErrUnsupported
	}
	dir := dirOf(pp)
	file, err := tfs.CreateTemp(ctx, nameOf(fsys, dir), pp.FullName())
	if err != nil {
		return nil, Path{}, err
	}
	p := Parse(file.Name(), formatOf(fsys))
	p.NoFollow = true
	return file, p, nil
}

func createTempLoop(
	ctx context.Context, fsys FS, pp Path, prefix string,
) (File, Path, error) {
	cfs, ok := fsys.(CreateFS)
	if !ok {
		return nil, Path{}, &PathError{
			Op: "createtemp", Path: prefix, Err: ErrUnsupported,
		}
	}
	log := Logger(ctx)
	base := pp.FullName()
	for range MaxTempAttempts {
		cand := pp.Clone()
		cand.Name = base + strconv.FormatUint(tempSeq.Add(1), 36)
		cand.Ext, cand.HasExt = "", false
		name := nameOf(fsys, cand)
		if Exists(ctx, fsys, cand, ExistsAny) {
			log.Debug("createtemp: name taken", "path", name)
			continue
		}
		file, err := cfs.CreateExcl(ctx, name)
		if errors.Is(err, ErrExist) {
			log.Debug("createtemp: lost race", "path", name)
			continue
		}
		if err != nil {
			return nil, Path{}, newPathError("createtemp", name, err)
		}
		return file, cand, nil
	}
	return nil, Path{}, &PathError{
		Op: "createtemp", Path: prefix, Err: ErrTempExhausted,
	}
}

func setDeleteOnClose(ctx context.Context, fsys FS, t *TempFile) error {
	name := nameOf(fsys, t.path)
	if ufs, ok := fsys.(UnlinkOpenFS); ok {
		err := ufs.UnlinkOpen(ctx, name)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrUnsupported) {
			return newPathError("unlink", name, err)
		}
	}
	rfs, ok := fsys.(RemoveFS)
	if !ok {
		return &PathError{Op: "unlink", Path: name, Err: ErrUnsupported}
	}
	ctx = context.WithoutCancel(ctx)
	t.remove = func() error {
		return newPathError("remove", name, rfs.Remove(ctx, name))
	}
	return nil
}
