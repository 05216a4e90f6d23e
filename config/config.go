// Package config holds the shared settings of the pmbatch tools, assembled
// from flags in the respective mains.
package config

import (
	"fmt"
	"time"
)

// Config for batch runs. Range bounds are inclusive row offsets into the
// PMID list; the same bounds name the stored documents.
type Config struct {
	// DataDir is where raw batch documents live.
	DataDir string
	// Prefix is the document name prefix, e.g. "pubmed".
	Prefix string
	// IDListFile is the CSV containing one PMID per row in column 1.
	IDListFile string
	// RangeStart and RangeEnd bound the overall id range, inclusive.
	RangeStart int
	RangeEnd   int
	// BatchSize is the number of ids per batch; the last batch may be
	// short.
	BatchSize int
	// Workers for parallel document parsing; 1 means sequential.
	Workers int
	// MaxRetries is the client-level retry count for fetching.
	MaxRetries int
	// Timeout is the fetch timeout per request.
	Timeout time.Duration
}

// Validate reports configuration errors before any processing starts.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("config: batch size must be positive, got %d", c.BatchSize)
	}
	if c.RangeStart < 0 {
		return fmt.Errorf("config: range start must not be negative, got %d", c.RangeStart)
	}
	if c.RangeEnd < c.RangeStart {
		return fmt.Errorf("config: range end %d before start %d", c.RangeEnd, c.RangeStart)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: need at least one worker, got %d", c.Workers)
	}
	return nil
}
