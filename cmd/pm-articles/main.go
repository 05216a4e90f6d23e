// pm-articles builds the article metadata view from stored batch documents:
// title, journal, publication date, authors, abstract and DOI per article,
// persisted as a human-readable report.
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
	"github.com/miku/pmbatch/extract"
	"github.com/miku/pmbatch/pipeline"
	"github.com/miku/pmbatch/report"
	"github.com/miku/pmbatch/store"
	"github.com/sirupsen/logrus"
)

var docs = strings.TrimLeft(`
# pm-articles - summarize PubMed article metadata

Walks the expected batch documents under the data directory and writes a
human-readable report with per-file article counts and per-article fields.
With -counts-only, only file existence and article counts are reported.

## examples

$ pm-articles -s 0 -e 3699 -b 100
$ pm-articles -counts-only
$ pm-articles -skip-missing-pmid -o pubmed_summary.txt
$ pm-articles -normalize-dates

## flags

`, "\n")

var (
	defaultDataDir = path.Join(xdg.DataHome, pmbatch.AppName)

	dir             = flag.String("d", defaultDataDir, "directory with raw batch documents")
	prefix          = flag.String("p", "pubmed", "document name prefix")
	rangeStart      = flag.Int("s", 0, "first row of the id range (zero-based, inclusive)")
	rangeEnd        = flag.Int("e", 3699, "last row of the id range (inclusive)")
	batchSize       = flag.Int("b", 100, "ids per batch")
	workers         = flag.Int("w", 1, "parallel document parsers")
	output          = flag.String("o", "", "report file (default pubmed_summary.txt, or xml_file_summary.txt with -counts-only)")
	skipMissingPMID = flag.Bool("skip-missing-pmid", false, "drop articles without a PMID from the report")
	normalizeDates  = flag.Bool("normalize-dates", false, "report publication dates as YYYY-MM-DD where derivable")
	countsOnly      = flag.Bool("counts-only", false, "only report file existence and article counts")
	quiet           = flag.Bool("q", false, "suppress per-batch logging")
	showVersion     = flag.Bool("version", false, "show version")
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
	reportFile := *output
	if reportFile == "" {
		if *countsOnly {
			reportFile = "xml_file_summary.txt"
		} else {
			reportFile = "pubmed_summary.txt"
		}
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
		tally     = pipeline.Count(results)
		documents = pipeline.Documents(results, extract.Options{
			SkipMissingPMID: *skipMissingPMID,
			NormalizeDates:  *normalizeDates,
		})
	)
	f, err := atomicfile.New(reportFile)
	if err != nil {
		log.Fatal(err)
	}
	if *countsOnly {
		err = report.WriteCountsReport(f, documents)
	} else {
		err = report.WriteArticleReport(f, documents)
	}
	if err != nil {
		f.Abort()
		log.Fatalf("write report: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("write report: %v", err)
	}
	if !*countsOnly {
		report.RenderSamples(os.Stdout, documents, report.DefaultPreview)
	}
	log.Printf("report saved to %s", reportFile)
	log.Printf("batches=%d processed=%d missing=%d failed=%d articles=%d",
		tally.Batches, tally.Processed, tally.Missing, tally.Failed, tally.Articles)
}
