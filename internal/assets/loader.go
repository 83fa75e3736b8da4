// Package assets reads the game's read-only resources: the tile atlas, level
// symbol grids and entity descriptors.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

var (
	ErrNotFound = errors.New("not found")
	ErrNotAFile = errors.New("not a regular file")
	ErrIO       = errors.New("i/o failure")
)

// ResourceError describes a failed read of one named asset.
type ResourceError struct {
	Name string
	Dir  string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Dir == "" {
		return fmt.Sprintf("resource %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("resource %q in %q: %v", e.Name, e.Dir, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Loader returns the bytes of a named asset, optionally inside a directory.
type Loader interface {
	Read(name, dir string) ([]byte, error)
}

// FSLoader reads assets from a file system, typically os.DirFS(assetsDir).
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a loader rooted at fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// Read returns the contents of dir/name. An empty dir reads from the root.
func (l *FSLoader) Read(name, dir string) ([]byte, error) {
	p := name
	if dir != "" {
		p = path.Join(dir, name)
	}

	fail := func(kind, err error) error {
		if err != nil {
			kind = fmt.Errorf("%w: %v", kind, err)
		}
		return &ResourceError{Name: name, Dir: dir, Err: kind}
	}

	info, err := fs.Stat(l.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fail(ErrNotFound, nil)
		}
		return nil, fail(ErrIO, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fail(ErrNotAFile, nil)
	}

	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fail(ErrIO, err)
	}
	return data, nil
}
