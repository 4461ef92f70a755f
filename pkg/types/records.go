// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Hit records one (work, matched keyword rule) pair produced by the scan
// stage. Authors is a semicolon-joined list; Pattern is the regex that
// matched, kept for traceability.
type Hit struct {
	JournalInput    string
	JournalOpenAlex string
	WorkID          string
	DOI             string
	Year            int
	Title           string
	Authors         string
	Keyword         string
	Pattern         string
}

// ArticleID derives a stable article identity for deduplication:
// work ID, falling back to DOI, falling back to title.
func (h Hit) ArticleID() string {
	switch {
	case h.WorkID != "":
		return h.WorkID
	case h.DOI != "":
		return h.DOI
	default:
		return h.Title
	}
}

// AggregateRow is one row of the keyword prevalence table: counts for a
// (journal, year, keyword) triple. Share is MatchingArticles/TotalArticles
// in 0..1 and Percentage the same in 0..100; both are 0 when
// TotalArticles is 0.
type AggregateRow struct {
	Journal          string
	Year             int
	Keyword          string
	TotalArticles    int
	MatchingArticles int
	Share            float64
	Percentage       float64
}
