// pm-fetch retrieves batches of raw PubMed XML via the NCBI efetch API and
// stores one document per batch under the data directory.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/miku/pmbatch"
	"github.com/miku/pmbatch/batch"
	"github.com/miku/pmbatch/config"
	"github.com/miku/pmbatch/fetch"
	"github.com/sethgrid/pester"
)

var docs = strings.TrimLeft(`
# pm-fetch - fetch PubMed records in batches

Reads PMIDs from column 1 of a CSV file (header row expected), slices them
into fixed-size row ranges and fetches one XML document per range from the
NCBI efetch endpoint. Documents land in the data directory as

    pubmed_<start>_to_<end>.xml

Existing documents are skipped, so reruns only fetch what is missing.

## examples

$ pm-fetch -i pmid_list.csv -s 0 -e 3699 -b 100
$ pm-fetch -i pmid_list.csv -s 3700 -e 3703 -b 100 -z gzip

## flags

`, "\n")

var (
	defaultDataDir = path.Join(xdg.DataHome, pmbatch.AppName)

	idListFile  = flag.String("i", "", "CSV file with one PMID per row in column 1 (required)")
	dir         = flag.String("d", defaultDataDir, "directory for raw batch documents")
	rangeStart  = flag.Int("s", 0, "first row of the id range (zero-based, inclusive)")
	rangeEnd    = flag.Int("e", 3699, "last row of the id range (inclusive)")
	batchSize   = flag.Int("b", 100, "ids per batch")
	endpoint    = flag.String("u", fetch.DefaultEndpoint, "efetch endpoint URL")
	maxRetries  = flag.Int("r", 3, "max retries")
	timeout     = flag.Duration("T", 60*time.Second, "connection timeout")
	compress    = flag.String("z", "", "compress stored documents: gzip or zstd")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Usage = func() {
		io.WriteString(os.Stderr, docs)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(pmbatch.Version)
		os.Exit(0)
	}
	if *idListFile == "" {
		log.Fatal("missing id list, use -i")
	}
	cfg := &config.Config{
		DataDir:    *dir,
		Prefix:     "pubmed",
		IDListFile: *idListFile,
		RangeStart: *rangeStart,
		RangeEnd:   *rangeEnd,
		BatchSize:  *batchSize,
		Workers:    1,
		MaxRetries: *maxRetries,
		Timeout:    *timeout,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	ext := "xml"
	switch *compress {
	case "":
	case "gzip":
		ext = "xml.gz"
	case "zstd":
		ext = "xml.zst"
	default:
		log.Fatalf("invalid compression: %s", *compress)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatal(err)
	}
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = cfg.MaxRetries
	client.RetryOnHTTP429 = true
	client.Timeout = cfg.Timeout
	fetcher := &fetch.Fetcher{
		Client:    client,
		Endpoint:  *endpoint,
		DB:        "pubmed",
		UserAgent: fmt.Sprintf("%s/%s", pmbatch.AppName, pmbatch.Version),
	}
	var failed int
	batches := batch.Ranges(cfg.RangeStart, cfg.RangeEnd, cfg.BatchSize)
	for _, b := range batches {
		ids, err := fetch.ReadIDRange(cfg.IDListFile, b.Start, b.End)
		if err != nil {
			log.Fatal(err)
		}
		if len(ids) == 0 {
			log.Printf("no ids in rows %s, skipping", b)
			continue
		}
		fn, err := fetcher.WriteBatch(b, ids, cfg.DataDir, cfg.Prefix, ext)
		if err != nil {
			log.Printf("batch %s failed: %v", b, err)
			failed++
			continue
		}
		log.Printf("batch %s: %d ids -> %s", b, len(ids), fn)
	}
	if failed > 0 {
		log.Fatalf("%d of %d batches failed", failed, len(batches))
	}
}
