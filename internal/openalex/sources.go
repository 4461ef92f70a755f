// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/journal-trends/pkg/types"
)

type sourcesResponse struct {
	Meta    responseMeta `json:"meta"`
	Results []Source     `json:"results"`
}

// ResolveJournal maps a journal name and optional comma-separated ISSN
// list to an OpenAlex source. ISSN candidates are tried in order and the
// first hit wins; when none match, the Sources index is searched by name
// and the first result wins. A journal with no match by either route is
// returned with Found=false and empty identity fields, not an error —
// errors are reserved for failed API calls.
func (c *Client) ResolveJournal(ctx context.Context, name, issns string) (types.Journal, error) {
	j := types.Journal{InputName: name, InputISSN: issns}

	for _, issn := range splitISSNs(issns) {
		params := url.Values{
			"filter":   {"issn:" + issn},
			"per_page": {"1"},
		}
		var page sourcesResponse
		if err := c.getJSON(ctx, "/sources", params, &page); err != nil {
			return j, fmt.Errorf("looking up ISSN %s: %w", issn, err)
		}
		if len(page.Results) > 0 {
			src := page.Results[0]
			j.OpenAlexID = src.ID
			j.DisplayName = src.DisplayName
			j.MatchedISSN = issn
			j.Found = true
			return j, nil
		}
	}

	if name == "" {
		return j, nil
	}

	params := url.Values{
		"search":   {name},
		"per_page": {"1"},
	}
	var page sourcesResponse
	if err := c.getJSON(ctx, "/sources", params, &page); err != nil {
		return j, fmt.Errorf("searching sources for %q: %w", name, err)
	}
	if len(page.Results) > 0 {
		src := page.Results[0]
		j.OpenAlexID = src.ID
		j.DisplayName = src.DisplayName
		j.MatchedISSN = src.ISSNL
		if j.MatchedISSN == "" && len(src.ISSN) > 0 {
			j.MatchedISSN = src.ISSN[0]
		}
		j.Found = true
	}
	return j, nil
}

// splitISSNs splits a comma-separated ISSN field into trimmed, non-empty
// candidates.
func splitISSNs(issns string) []string {
	var out []string
	for _, s := range strings.Split(issns, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
