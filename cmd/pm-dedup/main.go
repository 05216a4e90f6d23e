// pm-dedup sorts a produced CSV table by its first column and removes
// duplicate rows, keeping the first occurrence per key.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/miku/pmbatch"
	"github.com/miku/pmbatch/dedup"
)

var docs = strings.TrimLeft(`
# pm-dedup - sort and deduplicate a CSV table

Sorts the rows of a CSV file by the first column (pmid) and drops duplicate
keys, keeping the first occurrence. Without an output argument the input is
overwritten in place; the write is atomic either way.

## usage

$ pm-dedup article_ids.csv
$ pm-dedup article_ids.csv sorted_article_ids.csv

## flags

`, "\n")

var showVersion = flag.Bool("version", false, "show version")

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
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	var (
		input  = flag.Arg(0)
		output = flag.Arg(1) // empty means in place
	)
	stats, err := dedup.File(input, output)
	if err != nil {
		log.Fatal(err)
	}
	if output == "" {
		output = input
	}
	log.Printf("%s: %d rows in, %d rows out, %d duplicates removed",
		output, stats.Original, stats.Final, stats.Removed)
}
