package pubmed

import (
	"encoding/xml"
	"strings"

	"github.com/araddon/dateparse"
)

// ArticleSet is the root element of an efetch result document.
type ArticleSet struct {
	XMLName xml.Name  `xml:"PubmedArticleSet"`
	Article []Article `xml:"PubmedArticle"`
}

// Article represents a single PubmedArticle element.
type Article struct {
	XMLName         xml.Name `xml:"PubmedArticle"`
	MedlineCitation struct {
		Text   string `xml:",chardata"`
		Status string `xml:"Status,attr"`
		Owner  string `xml:"Owner,attr"`
		PMID   struct {
			Text    string `xml:",chardata"` // 10540222, 10536016, ...
			Version string `xml:"Version,attr"`
		} `xml:"PMID"`
		Article struct {
			Text    string `xml:",chardata"`
			Journal struct {
				Text string `xml:",chardata"`
				ISSN struct {
					Text     string `xml:",chardata"` // 0006-8950, 1432-1459, ...
					IssnType string `xml:"IssnType,attr"`
				} `xml:"ISSN"`
				JournalIssue struct {
					Text    string `xml:",chardata"`
					Volume  string `xml:"Volume"`
					Issue   string `xml:"Issue"`
					PubDate struct {
						Text  string `xml:",chardata"`
						Year  string `xml:"Year"`  // 1999, 2021, ...
						Month string `xml:"Month"` // Oct, 12, ...
						Day   string `xml:"Day"`   // 15, 3, ...
					} `xml:"PubDate"`
				} `xml:"JournalIssue"`
				Title           string `xml:"Title"` // Brain : a journal of neur...
				ISOAbbreviation string `xml:"ISOAbbreviation"`
			} `xml:"Journal"`
			ArticleTitle struct {
				Text string `xml:",chardata"`
			} `xml:"ArticleTitle"`
			Abstract struct {
				Text         string `xml:",chardata"`
				AbstractText []struct {
					Text        string `xml:",chardata"`
					Label       string `xml:"Label,attr"`
					NlmCategory string `xml:"NlmCategory,attr"`
				} `xml:"AbstractText"`
			} `xml:"Abstract"`
			AuthorList struct {
				Text     string   `xml:",chardata"`
				Complete string   `xml:"CompleteYN,attr"`
				Author   []Author `xml:"Author"`
			} `xml:"AuthorList"`
			// ELocationID may repeat, e.g. both pii and doi.
			ELocationID []struct {
				Text    string `xml:",chardata"`
				EIdType string `xml:"EIdType,attr"` // doi, pii
				ValidYN string `xml:"ValidYN,attr"`
			} `xml:"ELocationID"`
			Language string `xml:"Language"`
		} `xml:"Article"`
	} `xml:"MedlineCitation"`
	PubmedData struct {
		Text          string `xml:",chardata"`
		ArticleIdList struct {
			Text      string      `xml:",chardata"`
			ArticleId []ArticleID `xml:"ArticleId"`
		} `xml:"ArticleIdList"`
		PublicationStatus string `xml:"PublicationStatus"`
	} `xml:"PubmedData"`
}

// Author holds name parts, all of which may be empty.
type Author struct {
	Text     string `xml:",chardata"`
	ValidYN  string `xml:"ValidYN,attr"`
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
	Initials string `xml:"Initials"`
}

// Name renders an author as "Last, Fore", or just "Last" when the fore name
// is missing; an author with neither part renders empty.
func (a Author) Name() string {
	switch {
	case a.LastName != "" && a.ForeName != "":
		return a.LastName + ", " + a.ForeName
	case a.LastName != "":
		return a.LastName
	default:
		return ""
	}
}

// ArticleID is one identifier attached to an article, e.g. doi, pmc.
type ArticleID struct {
	Text   string `xml:",chardata"`
	IdType string `xml:"IdType,attr"` // pubmed, doi, pii, pmc, mid, ...
}

// PMID returns the article primary key, or the empty string.
func (doc *Article) PMID() string {
	return strings.TrimSpace(doc.MedlineCitation.PMID.Text)
}

// Title returns the article title.
func (doc *Article) Title() string {
	return doc.MedlineCitation.Article.ArticleTitle.Text
}

// JournalTitle returns the full journal title.
func (doc *Article) JournalTitle() string {
	return doc.MedlineCitation.Article.Journal.Title
}

// AbstractText returns the first abstract section, if any.
func (doc *Article) AbstractText() string {
	ab := doc.MedlineCitation.Article.Abstract.AbstractText
	if len(ab) == 0 {
		return ""
	}
	return ab[0].Text
}

// PubDate joins the available year, month and day parts with a dash; the
// result is empty when all three parts are absent. Parts are kept verbatim,
// so a month may read "Oct" as well as "10".
func (doc *Article) PubDate() string {
	var (
		pd    = doc.MedlineCitation.Article.Journal.JournalIssue.PubDate
		parts []string
	)
	for _, p := range []string{pd.Year, pd.Month, pd.Day} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}

var monthIndex = map[string]string{
	"Jan": "01", "Feb": "02", "Mar": "03", "Apr": "04", "May": "05",
	"Jun": "06", "Jul": "07", "Aug": "08", "Sep": "09", "Oct": "10",
	"Nov": "11", "Dec": "12",
}

// ReleaseDate returns the publication date normalized to YYYY-MM-DD, or the
// empty string if the date is absent or unparseable. PubMed renders months
// both by name and by number.
func (doc *Article) ReleaseDate() string {
	pd := doc.MedlineCitation.Article.Journal.JournalIssue.PubDate
	if pd.Year == "" {
		return ""
	}
	month := pd.Month
	if m, ok := monthIndex[month]; ok {
		month = m
	}
	if month == "" {
		if len(pd.Year) != 4 {
			return ""
		}
		return pd.Year + "-01-01"
	}
	parts := []string{pd.Year, month}
	if pd.Day != "" {
		parts = append(parts, pd.Day)
	}
	t, err := dateparse.ParseAny(strings.Join(parts, "-"))
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// DOI returns the first DOI-typed ELocationID, if any.
func (doc *Article) DOI() string {
	for _, el := range doc.MedlineCitation.Article.ELocationID {
		if el.EIdType == "doi" {
			return el.Text
		}
	}
	return ""
}

// Authors renders the author list, dropping entries without any name parts.
func (doc *Article) Authors() (names []string) {
	for _, author := range doc.MedlineCitation.Article.AuthorList.Author {
		if name := author.Name(); name != "" {
			names = append(names, name)
		}
	}
	return names
}
