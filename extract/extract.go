// Package extract turns one raw PubMed XML document into flat records. Two
// views exist: identifier records, one per article that carries an
// ArticleIdList, and article metadata records, one per article.
package extract

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/miku/pmbatch/batch"
	"github.com/miku/pmbatch/schema/pubmed"
)

// MissingPMID is the sentinel recorded when an article has no PMID; such
// articles are kept, never dropped.
const MissingPMID = "N/A"

// ParseError wraps a document level failure with the batch it belongs to.
// One bad document never stops the run, the caller logs it and moves on.
type ParseError struct {
	Batch batch.Batch
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse failed for batch %s: %v", e.Batch, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IDRecord is the flat identifier view of one article: the fixed id schemes
// as columns plus an open-ended map for everything else.
type IDRecord struct {
	PMID       string
	FileSource string
	Pubmed     string
	MID        string
	PMC        string
	DOI        string
	PII        string
	PMCID      string
	OtherIDs   map[string]string
}

// Article is the flat metadata view of one article. Absent fields stay
// empty, they are recorded as missing, not a reason to skip the record.
type Article struct {
	PMID            string
	Title           string
	Journal         string
	PublicationDate string
	Abstract        string
	Authors         []string
	DOI             string
}

// Options control extraction behavior that the source left ambiguous.
type Options struct {
	// SkipMissingPMID drops articles without a PMID from the metadata
	// view. The identifier view is unaffected, it only requires a
	// non-empty ArticleIdList.
	SkipMissingPMID bool
	// NormalizeDates replaces the verbatim publication date with the
	// normalized YYYY-MM-DD release date, where one can be derived;
	// otherwise the verbatim date is kept.
	NormalizeDates bool
}

// Parse decodes a raw document into the typed article set. Any decoding
// failure is wrapped in a ParseError carrying the batch.
func Parse(b batch.Batch, blob []byte) (*pubmed.ArticleSet, error) {
	var set pubmed.ArticleSet
	if err := xml.Unmarshal(blob, &set); err != nil {
		return nil, &ParseError{Batch: b, Err: err}
	}
	return &set, nil
}

// IDRecords extracts one identifier record per article with a non-empty
// ArticleIdList; articles without any id list produce no record. The source
// argument names the document the records came from.
func IDRecords(set *pubmed.ArticleSet, source string) []IDRecord {
	var records []IDRecord
	for i := range set.Article {
		doc := &set.Article[i]
		ids := doc.PubmedData.ArticleIdList.ArticleId
		if len(ids) == 0 {
			continue
		}
		rec := IDRecord{
			PMID:       doc.PMID(),
			FileSource: source,
			OtherIDs:   make(map[string]string),
		}
		if rec.PMID == "" {
			rec.PMID = MissingPMID
		}
		for _, articleID := range ids {
			switch articleID.IdType {
			case "pubmed":
				rec.Pubmed = articleID.Text
			case "mid":
				rec.MID = articleID.Text
			case "pmc":
				rec.PMC = articleID.Text
			case "doi":
				rec.DOI = articleID.Text
			case "pii":
				rec.PII = articleID.Text
			case "pmcid":
				rec.PMCID = articleID.Text
			default:
				rec.OtherIDs[articleID.IdType] = articleID.Text
			}
		}
		records = append(records, rec)
	}
	return records
}

// Articles extracts the metadata view, one record per article. A missing
// PMID becomes a sentinel unless opts says to skip such articles.
func Articles(set *pubmed.ArticleSet, opts Options) []Article {
	var articles []Article
	for i := range set.Article {
		doc := &set.Article[i]
		pmid := doc.PMID()
		if pmid == "" {
			if opts.SkipMissingPMID {
				continue
			}
			pmid = MissingPMID
		}
		date := doc.PubDate()
		if opts.NormalizeDates {
			if rd := doc.ReleaseDate(); rd != "" {
				date = rd
			}
		}
		articles = append(articles, Article{
			PMID:            pmid,
			Title:           collapseWS(doc.Title()),
			Journal:         doc.JournalTitle(),
			PublicationDate: date,
			Abstract:        collapseWS(doc.AbstractText()),
			Authors:         doc.Authors(),
			DOI:             doc.DOI(),
		})
	}
	return articles
}

var wsPattern = regexp.MustCompile(`\s+`)

// collapseWS trims and squashes whitespace runs, so multi-line XML text
// nodes stay on one report line.
func collapseWS(s string) string {
	return wsPattern.ReplaceAllString(strings.TrimSpace(s), " ")
}
