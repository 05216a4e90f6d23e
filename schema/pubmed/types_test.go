package pubmed

import (
	"encoding/xml"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleDoc = `<?xml version="1.0" ?>
<!DOCTYPE PubmedArticleSet PUBLIC "-//NLM//DTD PubMedArticle, 1st January 2025//EN" "https://dtd.nlm.nih.gov/ncbi/pubmed/out/pubmed_250101.dtd">
<PubmedArticleSet>
<PubmedArticle>
    <MedlineCitation Status="MEDLINE" Owner="NLM">
        <PMID Version="1">10540222</PMID>
        <Article PubModel="Print">
            <Journal>
                <ISSN IssnType="Print">0006-8950</ISSN>
                <JournalIssue CitedMedium="Print">
                    <Volume>122</Volume>
                    <Issue>11</Issue>
                    <PubDate>
                        <Year>1999</Year>
                        <Month>Nov</Month>
                        <Day>15</Day>
                    </PubDate>
                </JournalIssue>
                <Title>Brain : a journal of neurology</Title>
                <ISOAbbreviation>Brain</ISOAbbreviation>
            </Journal>
            <ArticleTitle>Tau protein isoforms in neurodegeneration.</ArticleTitle>
            <ELocationID EIdType="pii" ValidYN="Y">S0006-8950(99)00123-4</ELocationID>
            <ELocationID EIdType="doi" ValidYN="Y">10.1093/brain/122.11.2111</ELocationID>
            <Abstract>
                <AbstractText Label="BACKGROUND">Tau isoform composition differs across tauopathies.</AbstractText>
                <AbstractText Label="METHODS">Immunoblotting of sarkosyl-insoluble tau.</AbstractText>
            </Abstract>
            <AuthorList CompleteYN="Y">
                <Author ValidYN="Y">
                    <LastName>Smith</LastName>
                    <ForeName>J</ForeName>
                    <Initials>J</Initials>
                </Author>
                <Author ValidYN="Y">
                    <LastName>Okamoto</LastName>
                </Author>
                <Author ValidYN="Y">
                    <Initials>X</Initials>
                </Author>
            </AuthorList>
            <Language>eng</Language>
        </Article>
    </MedlineCitation>
    <PubmedData>
        <PublicationStatus>ppublish</PublicationStatus>
        <ArticleIdList>
            <ArticleId IdType="pubmed">10540222</ArticleId>
            <ArticleId IdType="doi">10.1093/brain/122.11.2111</ArticleId>
            <ArticleId IdType="pmc">PMC1234567</ArticleId>
            <ArticleId IdType="sici">0006-8950(1999)122</ArticleId>
        </ArticleIdList>
    </PubmedData>
</PubmedArticle>
<PubmedArticle>
    <MedlineCitation Status="PubMed-not-MEDLINE" Owner="NLM">
        <PMID Version="1">10536016</PMID>
        <Article PubModel="Electronic">
            <Journal>
                <JournalIssue CitedMedium="Internet">
                    <PubDate>
                        <Year>2021</Year>
                    </PubDate>
                </JournalIssue>
                <Title>Preprint archive</Title>
            </Journal>
            <ArticleTitle>A second article without ids.</ArticleTitle>
        </Article>
    </MedlineCitation>
    <PubmedData>
        <PublicationStatus>epublish</PublicationStatus>
    </PubmedData>
</PubmedArticle>
</PubmedArticleSet>`

func mustParseSet(t *testing.T) *ArticleSet {
	t.Helper()
	var set ArticleSet
	if err := xml.Unmarshal([]byte(sampleDoc), &set); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return &set
}

func TestUnmarshalArticleSet(t *testing.T) {
	set := mustParseSet(t)
	if len(set.Article) != 2 {
		t.Fatalf("got %d articles, want 2", len(set.Article))
	}
	doc := &set.Article[0]
	if got, want := doc.PMID(), "10540222"; got != want {
		t.Errorf("pmid: got %s, want %s", got, want)
	}
	if got, want := doc.Title(), "Tau protein isoforms in neurodegeneration."; got != want {
		t.Errorf("title: got %s, want %s", got, want)
	}
	if got, want := doc.JournalTitle(), "Brain : a journal of neurology"; got != want {
		t.Errorf("journal: got %s, want %s", got, want)
	}
	ids := doc.PubmedData.ArticleIdList.ArticleId
	if len(ids) != 4 {
		t.Fatalf("got %d article ids, want 4", len(ids))
	}
	if ids[3].IdType != "sici" {
		t.Errorf("got id type %s, want sici", ids[3].IdType)
	}
	if set.Article[1].PubmedData.ArticleIdList.ArticleId != nil {
		t.Errorf("second article should have no id list")
	}
}

func TestAbstractFirstMatch(t *testing.T) {
	set := mustParseSet(t)
	// Two AbstractText sections, only the first is kept.
	want := "Tau isoform composition differs across tauopathies."
	if got := set.Article[0].AbstractText(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := set.Article[1].AbstractText(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestDOIFirstTypedMatch(t *testing.T) {
	set := mustParseSet(t)
	// The pii-typed ELocationID comes first in the document and must be
	// skipped in favor of the first doi-typed one.
	if got, want := set.Article[0].DOI(), "10.1093/brain/122.11.2111"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got := set.Article[1].DOI(); got != "" {
		t.Errorf("got %s, want empty", got)
	}
}

func TestAuthorName(t *testing.T) {
	tests := []struct {
		name   string
		author Author
		want   string
	}{
		{"both parts", Author{LastName: "Smith", ForeName: "J"}, "Smith, J"},
		{"family only", Author{LastName: "Smith"}, "Smith"},
		{"given only", Author{ForeName: "J"}, ""},
		{"neither", Author{Initials: "X"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.author.Name(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthors(t *testing.T) {
	set := mustParseSet(t)
	got := set.Article[0].Authors()
	want := []string{"Smith, J", "Okamoto"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if names := set.Article[1].Authors(); names != nil {
		t.Errorf("got %v, want no authors", names)
	}
}

func TestPubDate(t *testing.T) {
	set := mustParseSet(t)
	if got, want := set.Article[0].PubDate(), "1999-Nov-15"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got, want := set.Article[1].PubDate(), "2021"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	var empty Article
	if got := empty.PubDate(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestReleaseDate(t *testing.T) {
	set := mustParseSet(t)
	if got, want := set.Article[0].ReleaseDate(), "1999-11-15"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got, want := set.Article[1].ReleaseDate(), "2021-01-01"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	var empty Article
	if got := empty.ReleaseDate(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
