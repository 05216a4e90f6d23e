package fetch

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/miku/pmbatch/batch"
)

func writeIDList(t *testing.T, rows ...string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "pmid_list.csv")
	content := "pmid,title\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestReadIDRange(t *testing.T) {
	fn := writeIDList(t, "100,a", "101,b", "102,c", "103,d", "104,e")
	tests := []struct {
		name       string
		start, end int
		want       []string
	}{
		{"full range", 0, 4, []string{"100", "101", "102", "103", "104"}},
		{"inner slice", 1, 3, []string{"101", "102", "103"}},
		{"single row", 2, 2, []string{"102"}},
		{"range past eof", 3, 100, []string{"103", "104"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadIDRange(fn, tt.start, tt.end)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadIDRangeSkipsBlanks(t *testing.T) {
	fn := writeIDList(t, "100,a", ",blank", "102,c")
	got, err := ReadIDRange(fn, 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"100", "102"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReadIDRangeStopsAtEnd(t *testing.T) {
	// The row just past the range is malformed; it must never be read.
	fn := writeIDList(t, "100,a", "101,b", "102,c", `"broken`)
	got, err := ReadIDRange(fn, 0, 2)
	if err != nil {
		t.Fatalf("row past range was read: %v", err)
	}
	want := []string{"100", "101", "102"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReadIDRangeMissingFile(t *testing.T) {
	if _, err := ReadIDRange(filepath.Join(t.TempDir(), "nope.csv"), 0, 10); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFetchBatch(t *testing.T) {
	const doc = "<PubmedArticleSet></PubmedArticleSet>"
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, doc)
	}))
	defer server.Close()
	f := &Fetcher{Client: http.DefaultClient, Endpoint: server.URL, DB: "pubmed"}
	b, err := f.FetchBatch([]string{"100", "101", "102"})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != doc {
		t.Errorf("got %q, want %q", b, doc)
	}
	for _, want := range []string{"db=pubmed", "id=100%2C101%2C102", "retmode=xml"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestFetchBatchEmptyIDs(t *testing.T) {
	f := &Fetcher{Client: http.DefaultClient, Endpoint: "http://localhost:0", DB: "pubmed"}
	if _, err := f.FetchBatch(nil); err == nil {
		t.Error("expected error for empty id list")
	}
}

func TestFetchBatchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()
	f := &Fetcher{Client: http.DefaultClient, Endpoint: server.URL, DB: "pubmed"}
	if _, err := f.FetchBatch([]string{"100"}); err == nil {
		t.Error("expected error for HTTP 502")
	}
}

func TestWriteBatch(t *testing.T) {
	const doc = "<PubmedArticleSet><PubmedArticle/></PubmedArticleSet>"
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		io.WriteString(w, doc)
	}))
	defer server.Close()
	dir := t.TempDir()
	f := &Fetcher{Client: http.DefaultClient, Endpoint: server.URL, DB: "pubmed"}
	b := batch.Batch{Start: 0, End: 2}
	fn, err := f.WriteBatch(b, []string{"100", "101", "102"}, dir, "pubmed", "xml")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(fn) != "pubmed_0_to_2.xml" {
		t.Errorf("unexpected filename: %s", fn)
	}
	got, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != doc {
		t.Errorf("got %q, want %q", got, doc)
	}
	// A second call must not hit the server again.
	if _, err := f.WriteBatch(b, []string{"100", "101", "102"}, dir, "pubmed", "xml"); err != nil {
		t.Fatal(err)
	}
	if hits != 1 {
		t.Errorf("got %d requests, want 1", hits)
	}
}
