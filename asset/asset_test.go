package asset

import (
	"errors"
	"io"
	"testing"
	"testing/fstest"
)

func TestFSResolve(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"sounds/hit.wav": &fstest.MapFile{Data: []byte("RIFF")},
	}
	r := &FS{Files: files, Dir: "sounds"}

	res, err := r.Resolve("hit.wav")
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	data, _ := io.ReadAll(res)
	if string(data) != "RIFF" || res.Name != "hit.wav" {
		t.Errorf("Resolve() = %q (%s), want RIFF (hit.wav)", data, res.Name)
	}

	tests := []string{"missing.wav", "../sounds/hit.wav", ""}
	for _, name := range tests {
		if _, err := r.Resolve(name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve(%q) error = %v, want ErrNotFound", name, err)
		}
	}
}

func TestNilFSResolve(t *testing.T) {
	t.Parallel()

	var r *FS
	if _, err := r.Resolve("x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
}

func TestMapResolve(t *testing.T) {
	t.Parallel()

	m := Map{"a": []byte{1, 2}}
	res, err := m.Resolve("a")
	if err != nil || res.Len() != 2 {
		t.Fatalf("Resolve(a) = %v, %v", res, err)
	}
	if _, err := m.Resolve("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(b) error = %v, want ErrNotFound", err)
	}
}
