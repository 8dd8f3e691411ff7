// Package asset resolves named resources to byte streams.
package asset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
)

var ErrNotFound = errors.New("resource not found")

// Resource is an opened resource. Decoders need to seek, so the whole
// resource is held in memory.
type Resource struct {
	Name string
	*bytes.Reader
}

// Resolver maps a resource name to its contents.
type Resolver interface {
	Resolve(name string) (*Resource, error)
}

// FS resolves names under Dir inside Files.
type FS struct {
	Files fs.FS
	Dir   string
}

// NewDir resolves names under a directory of the local file system.
func NewDir(dir string) *FS {
	return &FS{Files: os.DirFS(dir), Dir: "."}
}

func (r *FS) Resolve(name string) (*Resource, error) {
	if r == nil || r.Files == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if name == "" || name == "." || !fs.ValidPath(name) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	data, err := fs.ReadFile(r.Files, path.Join(r.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return &Resource{Name: name, Reader: bytes.NewReader(data)}, nil
}

// Map resolves names from an in-memory table.
type Map map[string][]byte

func (m Map) Resolve(name string) (*Resource, error) {
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return &Resource{Name: name, Reader: bytes.NewReader(data)}, nil
}

var _ io.ReadSeeker = (*Resource)(nil)
