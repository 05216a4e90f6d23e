// Package fetch retrieves raw batch documents from the NCBI efetch endpoint.
// The id list for a batch comes from a local CSV, sliced by row range; the
// wire call carries the comma-joined ids, never the document name.
package fetch

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/miku/pmbatch/atomicfile"
	"github.com/miku/pmbatch/batch"
)

// DefaultEndpoint is the NCBI efetch service.
const DefaultEndpoint = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

// Doer abstracts https://pkg.go.dev/net/http#Client.Do.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// ReadIDRange reads ids from the first column of a CSV file, skipping the
// header row, for the inclusive zero-based row range [start, end]. Scanning
// stops once the range is exceeded; blank first columns are skipped.
func ReadIDRange(filename string, start, end int) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%s: missing header row", filename)
		}
		return nil, err
	}
	var ids []string
	for i := 0; i <= end; i++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if i < start {
			continue
		}
		if len(row) == 0 {
			continue
		}
		if id := strings.TrimSpace(row[0]); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Fetcher retrieves one raw XML document per id batch.
type Fetcher struct {
	Client    Doer
	Endpoint  string
	DB        string // e.g. "pubmed"
	UserAgent string
}

// FetchBatch requests the raw document for a non-empty id list and returns
// the response body. Transport errors and non-2xx statuses are returned as
// errors; there is no retry here, the client may carry its own.
func (f *Fetcher) FetchBatch(ids []string) ([]byte, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("fetch: empty id list")
	}
	vs := url.Values{}
	vs.Add("db", f.DB)
	vs.Add("id", strings.Join(ids, ","))
	vs.Add("retmode", "xml")
	link := fmt.Sprintf("%s?%s", f.Endpoint, vs.Encode())
	req, err := http.NewRequest("GET", link, nil)
	if err != nil {
		return nil, err
	}
	if f.UserAgent != "" {
		req.Header.Add("User-Agent", f.UserAgent)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch: HTTP %d for batch of %d ids", resp.StatusCode, len(ids))
	}
	return io.ReadAll(resp.Body)
}

// WriteBatch fetches the document for a batch and writes it to dir under the
// batch naming convention, atomically and optionally compressed (ext "xml",
// "xml.gz" or "xml.zst"). Returns the filename. Idempotent: an existing
// document is left alone.
func (f *Fetcher) WriteBatch(b batch.Batch, ids []string, dir, prefix, ext string) (string, error) {
	dst := filepath.Join(dir, b.Filename(prefix, ext))
	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	}
	blob, err := f.FetchBatch(ids)
	if err != nil {
		return "", err
	}
	af, err := atomicfile.New(dst)
	if err != nil {
		return "", err
	}
	var w io.WriteCloser = nopWriteCloser{af}
	switch {
	case strings.HasSuffix(ext, ".gz"):
		w = gzip.NewWriter(af)
	case strings.HasSuffix(ext, ".zst"):
		zw, err := zstd.NewWriter(af)
		if err != nil {
			af.Abort()
			return "", err
		}
		w = zw
	}
	if _, err := w.Write(blob); err != nil {
		af.Abort()
		return "", err
	}
	if err := w.Close(); err != nil {
		af.Abort()
		return "", err
	}
	if err := af.Close(); err != nil {
		return "", err
	}
	return dst, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
