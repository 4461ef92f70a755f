// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// worksPerPage is the OpenAlex maximum page size.
const worksPerPage = 200

// Work is a single publication record as returned by the Works API.
// Only the fields the pipeline consumes are decoded; a Work is never
// mutated after fetching.
type Work struct {
	ID                    string           `json:"id"`
	DOI                   string           `json:"doi,omitempty"`
	Title                 string           `json:"title"`
	DisplayName           string           `json:"display_name,omitempty"`
	PublicationYear       int              `json:"publication_year"`
	PublicationDate       string           `json:"publication_date,omitempty"`
	Authorships           []Authorship     `json:"authorships,omitempty"`
	PrimaryLocation       *Location        `json:"primary_location,omitempty"`
	Locations             []Location       `json:"locations,omitempty"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index,omitempty"`
}

// Authorship links a work to one author.
type Authorship struct {
	Author Author `json:"author"`
}

// Author is an OpenAlex author record.
type Author struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name"`
}

// Location is a hosting venue of a work.
type Location struct {
	Source *Source `json:"source,omitempty"`
}

// Source is an OpenAlex source (journal) record.
type Source struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	ISSNL       string   `json:"issn_l,omitempty"`
	ISSN        []string `json:"issn,omitempty"`
}

// Identity derives a stable article identity: work ID, falling back to
// DOI, falling back to title. Empty when all three are missing.
func (w *Work) Identity() string {
	switch {
	case w.ID != "":
		return w.ID
	case w.DOI != "":
		return w.DOI
	default:
		return w.Title
	}
}

// AuthorNames returns the ordered author display names, skipping
// authorships without a name.
func (w *Work) AuthorNames() []string {
	var names []string
	for _, a := range w.Authorships {
		if a.Author.DisplayName != "" {
			names = append(names, a.Author.DisplayName)
		}
	}
	return names
}

// VenueName returns the first non-empty source display name from the
// work's locations, checking primary_location first.
func (w *Work) VenueName() string {
	if w.PrimaryLocation != nil && w.PrimaryLocation.Source != nil && w.PrimaryLocation.Source.DisplayName != "" {
		return w.PrimaryLocation.Source.DisplayName
	}
	for _, loc := range w.Locations {
		if loc.Source != nil && loc.Source.DisplayName != "" {
			return loc.Source.DisplayName
		}
	}
	return ""
}

type worksResponse struct {
	Meta    responseMeta `json:"meta"`
	Results []Work       `json:"results"`
}

type responseMeta struct {
	Count      int    `json:"count"`
	PerPage    int    `json:"per_page"`
	NextCursor string `json:"next_cursor"`
}

// FetchWorks returns every work published in the given source on or after
// January 1 of fromYear, following cursor pagination until the API stops
// returning a next cursor.
func (c *Client) FetchWorks(ctx context.Context, sourceID string, fromYear int) ([]Work, error) {
	if sourceID == "" {
		return nil, fmt.Errorf("empty source ID")
	}

	filter := fmt.Sprintf("locations.source.id:%s,from_publication_date:%d-01-01", sourceID, fromYear)
	cursor := "*"

	var all []Work
	for {
		params := url.Values{
			"filter":   {filter},
			"per_page": {strconv.Itoa(worksPerPage)},
			"cursor":   {cursor},
		}

		var page worksResponse
		if err := c.getJSON(ctx, "/works", params, &page); err != nil {
			return nil, fmt.Errorf("fetching works for %s: %w", sourceID, err)
		}

		all = append(all, page.Results...)

		if page.Meta.NextCursor == "" || len(page.Results) == 0 {
			return all, nil
		}
		cursor = page.Meta.NextCursor
	}
}
