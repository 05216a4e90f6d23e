// Package report aggregates extracted records into run summaries, both for
// the console and for persisted, human-readable report files.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/miku/pmbatch/extract"
	"github.com/segmentio/encoding/json"
)

// DefaultPreview bounds the number of sample entries rendered in summaries.
const DefaultPreview = 5

// fixedSchemes is the order in which id scheme counts are reported.
var fixedSchemes = []string{"pubmed", "mid", "pmc", "doi", "pii", "pmcid"}

// IDSummary aggregates the identifier view of a run. A field counts as
// present iff it is non-empty.
type IDSummary struct {
	Total      int            `json:"total"`
	Counts     map[string]int `json:"counts"`
	OtherTypes map[string]int `json:"other_types"`
}

// SummarizeIDs computes per-scheme presence counts, the count of records
// carrying at least one non-standard scheme, and per-scheme counts for
// those.
func SummarizeIDs(records []extract.IDRecord) *IDSummary {
	s := &IDSummary{
		Total:      len(records),
		Counts:     make(map[string]int),
		OtherTypes: make(map[string]int),
	}
	for _, rec := range records {
		for scheme, v := range map[string]string{
			"pubmed": rec.Pubmed,
			"mid":    rec.MID,
			"pmc":    rec.PMC,
			"doi":    rec.DOI,
			"pii":    rec.PII,
			"pmcid":  rec.PMCID,
		} {
			if v != "" {
				s.Counts[scheme]++
			}
		}
		if len(rec.OtherIDs) > 0 {
			s.Counts["other"]++
			for scheme := range rec.OtherIDs {
				s.OtherTypes[scheme]++
			}
		}
	}
	return s
}

// JSON renders the summary machine-readable.
func (s *IDSummary) JSON() ([]byte, error) {
	return json.Marshal(s)
}

// Render writes the console summary, including a bounded preview of the
// first few records with their present fields.
func (s *IDSummary) Render(w io.Writer, records []extract.IDRecord, preview int) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "ARTICLE ID LIST SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\nTotal ArticleIdList entries: %d\n", s.Total)
	fmt.Fprintf(w, "\nID Type Distribution:\n")
	for _, scheme := range append(append([]string{}, fixedSchemes...), "other") {
		if n := s.Counts[scheme]; n > 0 {
			fmt.Fprintf(w, "  %s: %d\n", strings.ToUpper(scheme), n)
		}
	}
	if len(s.OtherTypes) > 0 {
		fmt.Fprintf(w, "\nOther ID types found:\n")
		schemes := make([]string, 0, len(s.OtherTypes))
		for scheme := range s.OtherTypes {
			schemes = append(schemes, scheme)
		}
		sort.Strings(schemes)
		for _, scheme := range schemes {
			fmt.Fprintf(w, "  %s: %d\n", scheme, s.OtherTypes[scheme])
		}
	}
	if preview <= 0 {
		preview = DefaultPreview
	}
	if preview > len(records) {
		preview = len(records)
	}
	fmt.Fprintf(w, "\nSample entries (first %d):\n", preview)
	for i, rec := range records[:preview] {
		fmt.Fprintf(w, "\nEntry %d:\n", i+1)
		fmt.Fprintf(w, "  PMID: %s\n", rec.PMID)
		fmt.Fprintf(w, "  File: %s\n", rec.FileSource)
		for _, kv := range []struct{ scheme, value string }{
			{"PUBMED", rec.Pubmed},
			{"MID", rec.MID},
			{"PMC", rec.PMC},
			{"DOI", rec.DOI},
			{"PII", rec.PII},
			{"PMCID", rec.PMCID},
		} {
			if kv.value != "" {
				fmt.Fprintf(w, "  %s: %s\n", kv.scheme, kv.value)
			}
		}
		if len(rec.OtherIDs) > 0 {
			fmt.Fprintf(w, "  Other IDs: %v\n", rec.OtherIDs)
		}
	}
}

// Document is the per-document aggregate used in the metadata reports.
type Document struct {
	Name     string
	Missing  bool
	Failed   bool
	Articles []extract.Article
}

// WriteArticleReport persists the full metadata view: per-document article
// counts followed by every article with its present fields. The report is
// meant for humans, not for machines.
func WriteArticleReport(w io.Writer, docs []Document) error {
	fmt.Fprintln(w, "PubMed XML Processing Summary")
	fmt.Fprintln(w, strings.Repeat("=", 40))
	fmt.Fprintln(w)
	var processed, total int
	for _, doc := range docs {
		if doc.Missing || doc.Failed {
			continue
		}
		processed++
		total += len(doc.Articles)
	}
	fmt.Fprintf(w, "Total XML files processed: %d\n", processed)
	fmt.Fprintf(w, "Total articles found: %d\n\n", total)
	for _, doc := range docs {
		switch {
		case doc.Missing:
			fmt.Fprintf(w, "File: %s (missing)\n\n", doc.Name)
			continue
		case doc.Failed:
			fmt.Fprintf(w, "File: %s (parse failed)\n\n", doc.Name)
			continue
		}
		fmt.Fprintf(w, "File: %s\n", doc.Name)
		fmt.Fprintf(w, "Articles: %d\n", len(doc.Articles))
		fmt.Fprintln(w, strings.Repeat("-", 30))
		for i, a := range doc.Articles {
			fmt.Fprintf(w, "\nArticle %d:\n", i+1)
			fmt.Fprintf(w, "  PMID: %s\n", orNA(a.PMID))
			fmt.Fprintf(w, "  Title: %s\n", orNA(a.Title))
			fmt.Fprintf(w, "  Journal: %s\n", orNA(a.Journal))
			fmt.Fprintf(w, "  Date: %s\n", orNA(a.PublicationDate))
			fmt.Fprintf(w, "  DOI: %s\n", orNA(a.DOI))
			if len(a.Authors) > 0 {
				fmt.Fprintf(w, "  Authors: %s\n", strings.Join(a.Authors, ", "))
			}
			if a.Abstract != "" {
				fmt.Fprintf(w, "  Abstract: %s\n", a.Abstract)
			}
		}
		fmt.Fprintf(w, "\n%s\n\n", strings.Repeat("=", 50))
	}
	return nil
}

// RenderSamples writes a compact console preview, up to max articles per
// document, with long fields clipped.
func RenderSamples(w io.Writer, docs []Document, max int) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "SAMPLE ARTICLES (showing up to %d per file)\n", max)
	fmt.Fprintln(w, rule)
	for _, doc := range docs {
		if doc.Missing || doc.Failed {
			continue
		}
		fmt.Fprintf(w, "\nFile: %s\n", doc.Name)
		fmt.Fprintln(w, strings.Repeat("-", 40))
		n := max
		if n > len(doc.Articles) {
			n = len(doc.Articles)
		}
		for i, a := range doc.Articles[:n] {
			fmt.Fprintf(w, "\nArticle %d:\n", i+1)
			fmt.Fprintf(w, "  PMID: %s\n", orNA(a.PMID))
			fmt.Fprintf(w, "  Title: %s\n", orNA(a.Title))
			fmt.Fprintf(w, "  Journal: %s\n", orNA(a.Journal))
			fmt.Fprintf(w, "  Date: %s\n", orNA(a.PublicationDate))
			fmt.Fprintf(w, "  DOI: %s\n", orNA(a.DOI))
			if len(a.Authors) > 0 {
				fmt.Fprintf(w, "  Authors: %s%s\n",
					strings.Join(head(a.Authors, 3), ", "), ellipsis(len(a.Authors) > 3))
			}
			if a.Abstract != "" {
				fmt.Fprintf(w, "  Abstract: %s%s\n",
					clip(a.Abstract, 200), ellipsis(utf8.RuneCountInString(a.Abstract) > 200))
			}
		}
	}
}

// WriteCountsReport persists the per-file scan results: found and missing
// files, article counts, parse errors.
func WriteCountsReport(w io.Writer, docs []Document) error {
	fmt.Fprintln(w, "PubMed XML File Summary")
	fmt.Fprintln(w, strings.Repeat("=", 30))
	fmt.Fprintln(w)
	var found, missing, total int
	for _, doc := range docs {
		if doc.Missing {
			missing++
			continue
		}
		found++
		total += len(doc.Articles)
	}
	fmt.Fprintf(w, "Files found: %d\n", found)
	fmt.Fprintf(w, "Files missing: %d\n", missing)
	fmt.Fprintf(w, "Total articles: %d\n\n", total)
	fmt.Fprintln(w, "Existing files:")
	fmt.Fprintln(w, strings.Repeat("-", 20))
	for _, doc := range docs {
		if doc.Missing {
			continue
		}
		if doc.Failed {
			fmt.Fprintf(w, "%s: 0 articles (parse failed)\n", doc.Name)
			continue
		}
		fmt.Fprintf(w, "%s: %d articles\n", doc.Name, len(doc.Articles))
	}
	if missing > 0 {
		fmt.Fprintln(w, "\nMissing files:")
		fmt.Fprintln(w, strings.Repeat("-", 15))
		for _, doc := range docs {
			if doc.Missing {
				fmt.Fprintln(w, doc.Name)
			}
		}
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// clip shortens s to at most n characters, never splitting a rune.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func ellipsis(more bool) string {
	if more {
		return "..."
	}
	return ""
}

func head(vs []string, n int) []string {
	if len(vs) > n {
		return vs[:n]
	}
	return vs
}
