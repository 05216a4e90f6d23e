// Package dedup normalizes a produced CSV table: rows are sorted by the
// first column and later duplicates of the same key are dropped, keeping the
// first occurrence.
package dedup

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/miku/pmbatch/atomicfile"
)

// Stats reports what normalization did to the table.
type Stats struct {
	Original int
	Final    int
	Removed  int
}

// Rows stable-sorts data rows ascending by the first column and keeps the
// first occurrence per key. Keys compare numerically when both sides parse
// as integers, lexicographically otherwise.
func Rows(rows [][]string) [][]string {
	sorted := make([][]string, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return keyLess(key(sorted[i]), key(sorted[j]))
	})
	var (
		out  [][]string
		seen = make(map[string]struct{})
	)
	for _, row := range sorted {
		k := key(row)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, row)
	}
	return out
}

func key(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func keyLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}

// File normalizes input and writes the result to output; an empty output
// overwrites input in place. The write is atomic, a failed run leaves the
// input untouched.
func File(input, output string) (Stats, error) {
	var stats Stats
	if output == "" {
		output = input
	}
	f, err := os.Open(input)
	if err != nil {
		return stats, err
	}
	defer f.Close()
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return stats, fmt.Errorf("%s: empty file", input)
		}
		return stats, err
	}
	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, err
		}
		rows = append(rows, row)
	}
	out := Rows(rows)
	stats = Stats{Original: len(rows), Final: len(out), Removed: len(rows) - len(out)}
	af, err := atomicfile.New(output)
	if err != nil {
		return stats, err
	}
	cw := csv.NewWriter(af)
	if err := cw.Write(header); err != nil {
		af.Abort()
		return stats, err
	}
	if err := cw.WriteAll(out); err != nil {
		af.Abort()
		return stats, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		af.Abort()
		return stats, err
	}
	return stats, af.Close()
}
