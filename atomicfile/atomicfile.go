// Package atomicfile provides a writer that keeps data in a temporary file
// and moves it to its final destination on close, so readers never observe a
// partially written file.
package atomicfile

import (
	"os"
	"path/filepath"
)

// File writes to a temporary sibling of the destination path and renames it
// into place on Close.
type File struct {
	dst string
	tmp *os.File
}

// New creates a temporary file next to dst, so the final rename stays on the
// same filesystem.
func New(dst string) (*File, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".wip-")
	if err != nil {
		return nil, err
	}
	return &File{dst: dst, tmp: tmp}, nil
}

func (f *File) Write(p []byte) (int, error) {
	return f.tmp.Write(p)
}

// Close flushes the temporary file and moves it to the destination.
func (f *File) Close() error {
	if err := f.tmp.Sync(); err != nil {
		f.Abort()
		return err
	}
	if err := f.tmp.Close(); err != nil {
		os.Remove(f.tmp.Name())
		return err
	}
	return os.Rename(f.tmp.Name(), f.dst)
}

// Abort discards the temporary file, leaving any existing destination
// untouched.
func (f *File) Abort() error {
	f.tmp.Close()
	return os.Remove(f.tmp.Name())
}
