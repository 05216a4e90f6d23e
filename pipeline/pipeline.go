// Package pipeline drives a full extraction run: enumerate batches, load
// each stored document, parse it and accumulate the results in enumeration
// order. A missing or malformed document is logged and counted, never fatal;
// the failed batch count is always part of the final tally.
package pipeline

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/miku/pmbatch/batch"
	"github.com/miku/pmbatch/extract"
	"github.com/miku/pmbatch/report"
	"github.com/miku/pmbatch/schema/pubmed"
	"github.com/miku/pmbatch/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome for one batch. Exactly one of Missing, Err or Set
// carries the information; the Set is nil for missing and failed batches.
type Result struct {
	Batch    batch.Batch
	Filename string
	Missing  bool
	Err      error
	Set      *pubmed.ArticleSet
}

// Tally aggregates a run. Failed counts parse failures, not missing
// documents.
type Tally struct {
	Batches   int
	Processed int
	Missing   int
	Failed    int
	Articles  int
}

// Pipeline loads and parses all batch documents of a run.
type Pipeline struct {
	Store   *store.Store
	Batches []batch.Batch
	// Workers > 1 parses documents concurrently; results are reassembled
	// into enumeration order, so output stays reproducible.
	Workers int
	RunID   string
	Logger  *logrus.Logger
}

// New returns a sequential pipeline with a fresh run id.
func New(s *store.Store, batches []batch.Batch) *Pipeline {
	return &Pipeline{
		Store:   s,
		Batches: batches,
		Workers: 1,
		RunID:   uuid.NewString(),
		Logger:  logrus.StandardLogger(),
	}
}

func (p *Pipeline) log() *logrus.Entry {
	logger := p.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return logger.WithField("run", p.RunID)
}

// Run processes all batches and returns one result per batch, in
// enumeration order. Per-batch failures are recorded in the results, the
// only error returned is context cancellation.
func (p *Pipeline) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, len(p.Batches))
	if p.Workers <= 1 {
		for i, b := range p.Batches {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = p.process(b)
		}
		return results, nil
	}
	indexes := make(chan int)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(indexes)
		for i := range p.Batches {
			select {
			case indexes <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < p.Workers; w++ {
		g.Go(func() error {
			for i := range indexes {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				results[i] = p.process(p.Batches[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// process handles a single batch; every outcome is logged with enough
// context to be diagnosable later.
func (p *Pipeline) process(b batch.Batch) Result {
	var (
		name   = b.Filename(p.Store.Prefix, "xml")
		logger = p.log().WithFields(logrus.Fields{"batch": b.String(), "file": name})
		result = Result{Batch: b, Filename: name}
	)
	blob, err := p.Store.Load(b)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Warn("document not found")
			result.Missing = true
			return result
		}
		logger.WithError(err).Error("load failed")
		result.Err = err
		return result
	}
	set, err := extract.Parse(b, blob)
	if err != nil {
		logger.WithError(err).Error("parse failed")
		result.Err = err
		return result
	}
	logger.WithField("articles", len(set.Article)).Info("document processed")
	result.Set = set
	return result
}

// Count sums up a result sequence.
func Count(results []Result) Tally {
	t := Tally{Batches: len(results)}
	for _, r := range results {
		switch {
		case r.Missing:
			t.Missing++
		case r.Err != nil:
			t.Failed++
		default:
			t.Processed++
			t.Articles += len(r.Set.Article)
		}
	}
	return t
}

// IDRecords flattens all results into the identifier view, preserving
// result order. Missing and failed batches contribute nothing.
func IDRecords(results []Result) []extract.IDRecord {
	var records []extract.IDRecord
	for _, r := range results {
		if r.Set == nil {
			continue
		}
		records = append(records, extract.IDRecords(r.Set, r.Filename)...)
	}
	return records
}

// Documents maps results onto the per-document metadata view.
func Documents(results []Result, opts extract.Options) []report.Document {
	docs := make([]report.Document, 0, len(results))
	for _, r := range results {
		doc := report.Document{Name: r.Filename, Missing: r.Missing, Failed: r.Err != nil}
		if r.Set != nil {
			doc.Articles = extract.Articles(r.Set, opts)
		}
		docs = append(docs, doc)
	}
	return docs
}
