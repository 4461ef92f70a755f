package scan

import (
	"io"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/journal-trends/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	Keyword        string    `yaml:"keyword,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// ExportCSL writes the distinct matched works from the hit table as a
// CSL-YAML bibliography. A work hit by several rules becomes one entry
// whose keyword field joins the distinct labels, sorted.
func ExportCSL(hits []types.Hit, w io.Writer) error {
	order := make([]string, 0)
	byID := make(map[string]*CSLItem)
	labels := make(map[string][]string)

	for _, h := range hits {
		id := h.ArticleID()
		if id == "" {
			continue
		}
		if _, ok := byID[id]; !ok {
			byID[id] = hitToCSLItem(h)
			order = append(order, id)
		}
		if !contains(labels[id], h.Keyword) {
			labels[id] = append(labels[id], h.Keyword)
		}
	}

	items := make([]CSLItem, 0, len(order))
	for _, id := range order {
		item := *byID[id]
		sorted := labels[id]
		sort.Strings(sorted)
		item.Keyword = strings.Join(sorted, "; ")
		items = append(items, item)
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// hitToCSLItem converts one hit row into a CSL entry for its work.
func hitToCSLItem(h types.Hit) *CSLItem {
	item := &CSLItem{
		ID:             h.ArticleID(),
		Type:           "article-journal",
		Title:          h.Title,
		ContainerTitle: h.JournalOpenAlex,
	}

	for _, name := range strings.Split(h.Authors, ";") {
		if name = strings.TrimSpace(name); name != "" {
			item.Author = append(item.Author, parseAuthorName(name))
		}
	}

	if h.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{h.Year}}}
	}

	if doi := strings.TrimPrefix(h.DOI, "https://doi.org/"); strings.HasPrefix(doi, "10.") {
		item.DOI = doi
	}

	return item
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
