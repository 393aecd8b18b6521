// Package memfs implements lesiw.io/pathname.FS using an in-memory file
// tree.
//
// Names use the Posix format. Relative names are resolved from the root,
// and ".." never climbs above it. Symbolic links are stored as written and
// resolved on lookup.
package memfs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"lesiw.io/pathname"
)

// maxHops bounds symbolic link resolution during a single lookup.
const maxHops = 40

var (
	errDirNotEmpty = errors.New("directory not empty")
	errLoop        = errors.New("too many levels of symbolic links")
)

// FS is an in-memory file system. It is safe for concurrent use.
type FS struct {
	sync.RWMutex
	root *node
}

// New returns a new empty in-memory filesystem.
func New() *FS {
	return &FS{
		root: &node{
			mode:    0755 | pathname.ModeDir,
			modTime: time.Now(),
			nodes:   make(map[string]*node),
		},
	}
}

// node represents a file, directory or symbolic link.
type node struct {
	name    string
	data    []byte
	mode    pathname.Mode
	modTime time.Time
	link    string
	nodes   map[string]*node
}

func (n *node) isDir() bool  { return n.mode.IsDir() }
func (n *node) isLink() bool { return n.mode&pathname.ModeSymlink != 0 }

var (
	_ pathname.FS       = (*FS)(nil)
	_ pathname.FormatFS = (*FS)(nil)
)

// Format implements pathname.FormatFS.
func (f *FS) Format() pathname.Format { return pathname.Posix }

// split turns a name into its components below the root.
func split(name string) []string {
	p, _ := pathname.Normalize(
		pathname.Parse("/"+name, pathname.Posix), nil,
		pathname.NormalizeOptions{Flags: pathname.NormDots},
	)
	comps := p.Dirs
	if leaf := p.FullName(); leaf != "" {
		comps = append(comps, leaf)
	}
	return comps
}

// lookup walks comps from the root. Links met on the way are always
// followed; a link in the last position only when follow is set.
// The caller must hold the lock.
func (f *FS) lookup(comps []string, follow bool) (*node, error) {
	cur := f.root
	var walked []string
	for hops, i := 0, 0; i < len(comps); i++ {
		if !cur.isDir() {
			return nil, pathname.ErrNotDir
		}
		next, ok := cur.nodes[comps[i]]
		if !ok {
			return nil, pathname.ErrNotExist
		}
		last := i == len(comps)-1
		if !next.isLink() || (last && !follow) {
			walked = append(walked, comps[i])
			cur = next
			continue
		}
		if hops++; hops > maxHops {
			return nil, errLoop
		}
		target := next.link
		if !strings.HasPrefix(target, "/") {
			target = strings.Join(walked, "/") + "/" + target
		}
		comps = append(split(target), comps[i+1:]...)
		cur, walked, i = f.root, nil, -1
	}
	return cur, nil
}

// parent returns the directory that holds the last component of name,
// and that component.
func (f *FS) parent(name string) (*node, string, error) {
	comps := split(name)
	if len(comps) == 0 {
		return nil, "", pathname.ErrExist
	}
	dir, err := f.lookup(comps[:len(comps)-1], true)
	if err != nil {
		return nil, "", err
	}
	if !dir.isDir() {
		return nil, "", pathname.ErrNotDir
	}
	return dir, comps[len(comps)-1], nil
}

// writer buffers writes and stores them in its node on Close.
type writer struct {
	fs   *FS
	node *node
	name string
	bytes.Buffer
}

func (w *writer) Name() string { return w.name }

func (w *writer) Close() error {
	w.fs.Lock()
	defer w.fs.Unlock()

	w.node.data = append(w.node.data, w.Bytes()...)
	w.node.modTime = time.Now()
	w.Reset()
	return nil
}

// ReadFile returns the contents of the named file.
func (f *FS) ReadFile(ctx context.Context, name string) ([]byte, error) {
	f.RLock()
	defer f.RUnlock()

	n, err := f.lookup(split(name), true)
	if err != nil {
		return nil, &pathname.PathError{Op: "open", Path: name, Err: err}
	}
	if n.isDir() {
		return nil, &pathname.PathError{
			Op: "open", Path: name, Err: errors.New("is a directory"),
		}
	}
	return bytes.Clone(n.data), nil
}
