// Package store locates and loads raw batch documents from a directory. A
// missing document is reported as ErrNotFound so callers can keep going; a
// document that exists but does not parse is the extractor's problem, not
// the store's.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/miku/pmbatch/batch"
)

// ErrNotFound signals an absent document, which is an expected condition
// during a batch run.
var ErrNotFound = errors.New("document not found")

// Extensions lists the stored variants probed per batch, in order of
// preference. Fetched documents may be kept compressed on disk.
var Extensions = []string{"xml", "xml.gz", "xml.zst"}

// Store resolves batches to files under a single directory.
type Store struct {
	Dir    string
	Prefix string // e.g. "pubmed"
}

// Path returns the existing document path for a batch, or false when no
// variant is on disk.
func (s *Store) Path(b batch.Batch) (string, bool) {
	for _, ext := range Extensions {
		fn := filepath.Join(s.Dir, b.Filename(s.Prefix, ext))
		if _, err := os.Stat(fn); err == nil {
			return fn, true
		}
	}
	return "", false
}

// Exists reports whether any stored variant of the batch document is
// present.
func (s *Store) Exists(b batch.Batch) bool {
	_, ok := s.Path(b)
	return ok
}

// Load returns the raw document bytes for a batch, decompressing gzip and
// zstd variants transparently. Returns an error wrapping ErrNotFound when no
// variant exists.
func (s *Store) Load(b batch.Batch) ([]byte, error) {
	fn, ok := s.Path(b)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, b.Filename(s.Prefix, "xml"))
	}
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	switch filepath.Ext(fn) {
	case ".gz":
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip %s: %w", fn, err)
		}
		defer gr.Close()
		r = gr
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd %s: %w", fn, err)
		}
		defer zr.Close()
		r = zr
	}
	return io.ReadAll(r)
}
