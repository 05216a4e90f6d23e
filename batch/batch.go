// Package batch enumerates fixed-size slices of a PMID range and maps each
// slice to a document name, e.g. pubmed_0_to_99.xml.
package batch

import "fmt"

// Batch is one contiguous, inclusive slice of the overall id range. The
// bounds double as row offsets into the PMID list and as part of the
// document name.
type Batch struct {
	Start int
	End   int
}

// Size returns the number of ids covered by the batch.
func (b Batch) Size() int {
	return b.End - b.Start + 1
}

// String renders the batch bounds, mostly for logs.
func (b Batch) String() string {
	return fmt.Sprintf("%d-%d", b.Start, b.End)
}

// Filename returns the document name for a batch, following the
// <prefix>_<start>_to_<end>.<ext> convention.
func (b Batch) Filename(prefix, ext string) string {
	return fmt.Sprintf("%s_%d_to_%d.%s", prefix, b.Start, b.End, ext)
}

// Ranges returns the ordered sequence of batches covering [start, end]
// inclusive in size-sized steps. Batches are contiguous and non-overlapping;
// the final batch may be short if the range does not divide evenly. Invalid
// input is a programmer error.
func Ranges(start, end, size int) []Batch {
	if size <= 0 {
		panic(fmt.Sprintf("batch: invalid batch size: %d", size))
	}
	if end < start {
		panic(fmt.Sprintf("batch: invalid range: %d-%d", start, end))
	}
	var batches []Batch
	for lo := start; lo <= end; lo += size {
		hi := lo + size - 1
		if hi > end {
			hi = end
		}
		batches = append(batches, Batch{Start: lo, End: hi})
	}
	return batches
}
