// Package table materializes identifier records as CSV. The column set is
// only known after all records have been seen, because every distinct
// non-standard id scheme becomes its own other_<scheme> column, so the
// writer runs in two passes over the full record sequence.
package table

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/miku/pmbatch/atomicfile"
	"github.com/miku/pmbatch/extract"
)

// FixedColumns is the declared column order of the identifier table; the
// widened other_* columns follow in lexicographic order.
var FixedColumns = []string{
	"pmid",
	"file_source",
	"pubmed",
	"mid",
	"pmc",
	"doi",
	"pii",
	"pmcid",
}

// OtherSchemes returns the sorted set of non-standard id scheme names seen
// in any record.
func OtherSchemes(records []extract.IDRecord) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for scheme := range rec.OtherIDs {
			seen[scheme] = struct{}{}
		}
	}
	schemes := make([]string, 0, len(seen))
	for scheme := range seen {
		schemes = append(schemes, scheme)
	}
	sort.Strings(schemes)
	return schemes
}

// Columns returns the full header: fixed columns first, then one
// other_<scheme> column per distinct scheme.
func Columns(records []extract.IDRecord) []string {
	columns := append([]string{}, FixedColumns...)
	for _, scheme := range OtherSchemes(records) {
		columns = append(columns, "other_"+scheme)
	}
	return columns
}

// Write emits the full identifier table. Every row is projected onto the
// widened column set; absent values stay empty cells.
func Write(w io.Writer, records []extract.IDRecord) error {
	var (
		cw      = csv.NewWriter(w)
		schemes = OtherSchemes(records)
	)
	if err := cw.Write(Columns(records)); err != nil {
		return err
	}
	row := make([]string, 0, len(FixedColumns)+len(schemes))
	for _, rec := range records {
		row = row[:0]
		row = append(row,
			rec.PMID,
			rec.FileSource,
			rec.Pubmed,
			rec.MID,
			rec.PMC,
			rec.DOI,
			rec.PII,
			rec.PMCID)
		for _, scheme := range schemes {
			row = append(row, rec.OtherIDs[scheme])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table to filename atomically; on error no partial
// file replaces an existing one.
func WriteFile(filename string, records []extract.IDRecord) error {
	f, err := atomicfile.New(filename)
	if err != nil {
		return err
	}
	if err := Write(f, records); err != nil {
		f.Abort()
		return err
	}
	return f.Close()
}
