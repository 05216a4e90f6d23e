// pm-ids extracts ArticleIdList entries from stored batch documents and
// writes them as one flat CSV, widening the column set by one other_<scheme>
// column per non-standard id scheme seen anywhere in the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"github.com/adrg/xdg"
	"github.com/miku/pmbatch"
	"github.com/miku/pmbatch/atomicfile"
	"github.com/miku/pmbatch/batch"
	"github.com/miku/pmbatch/config"
	"github.com/miku/pmbatch/pipeline"
	"github.com/miku/pmbatch/report"
	"github.com/miku/pmbatch/store"
	"github.com/miku/pmbatch/table"
	"github.com/sirupsen/logrus"
)

var docs = strings.TrimLeft(`
# pm-ids - flatten PubMed article ids into a CSV table

Walks the expected batch documents (pubmed_<start>_to_<end>.xml) under the
data directory, extracts one row per article that carries an ArticleIdList
and writes article_ids.csv. Missing or malformed documents are skipped and
counted, the run never aborts because of a single bad batch.

## examples

$ pm-ids -s 0 -e 3699 -b 100
$ pm-ids -d /var/data/pmbatch -o article_ids.csv -w 4

## flags

`, "\n")

var (
	defaultDataDir = path.Join(xdg.DataHome, pmbatch.AppName)

	dir         = flag.String("d", defaultDataDir, "directory with raw batch documents")
	prefix      = flag.String("p", "pubmed", "document name prefix")
	rangeStart  = flag.Int("s", 0, "first row of the id range (zero-based, inclusive)")
	rangeEnd    = flag.Int("e", 3699, "last row of the id range (inclusive)")
	batchSize   = flag.Int("b", 100, "ids per batch")
	workers     = flag.Int("w", 1, "parallel document parsers")
	output      = flag.String("o", "article_ids.csv", "output CSV file")
	jsonFile    = flag.String("j", "", "also write the summary as JSON to this file")
	quiet       = flag.Bool("q", false, "suppress per-batch logging")
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
	cfg := &config.Config{
		DataDir:    *dir,
		Prefix:     *prefix,
		RangeStart: *rangeStart,
		RangeEnd:   *rangeEnd,
		BatchSize:  *batchSize,
		Workers:    *workers,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	logger := logrus.New()
	if *quiet {
		logger.SetLevel(logrus.ErrorLevel)
	}
	p := pipeline.New(&store.Store{Dir: cfg.DataDir, Prefix: cfg.Prefix},
		batch.Ranges(cfg.RangeStart, cfg.RangeEnd, cfg.BatchSize))
	p.Workers = cfg.Workers
	p.Logger = logger
	results, err := p.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	var (
		tally   = pipeline.Count(results)
		records = pipeline.IDRecords(results)
	)
	if len(records) == 0 {
		log.Printf("no ArticleIdList data found in any document")
	} else {
		if err := table.WriteFile(*output, records); err != nil {
			log.Fatalf("write table: %v", err)
		}
		log.Printf("wrote %d rows, %d columns to %s",
			len(records), len(table.Columns(records)), *output)
		summary := report.SummarizeIDs(records)
		summary.Render(os.Stdout, records, report.DefaultPreview)
		if *jsonFile != "" {
			b, err := summary.JSON()
			if err != nil {
				log.Fatal(err)
			}
			f, err := atomicfile.New(*jsonFile)
			if err != nil {
				log.Fatal(err)
			}
			if _, err := f.Write(append(b, '\n')); err != nil {
				f.Abort()
				log.Fatal(err)
			}
			if err := f.Close(); err != nil {
				log.Fatal(err)
			}
		}
	}
	log.Printf("batches=%d processed=%d missing=%d failed=%d articles=%d",
		tally.Batches, tally.Processed, tally.Missing, tally.Failed, tally.Articles)
	if tally.Failed > 0 {
		log.Printf("%d batches failed to parse, see log above", tally.Failed)
	}
}
