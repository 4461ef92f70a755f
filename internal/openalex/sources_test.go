// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/journal-trends/pkg/types"
)

// testClient returns a Client pointed at a local server, with an
// aggressive rate limit so tests do not sleep.
func testClient(baseURL string) *Client {
	return NewClient(types.FetchConfig{BaseURL: baseURL, RequestsPerSecond: 10000})
}

func TestResolveJournalByISSN(t *testing.T) {
	var gotFilters []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("filter")
		gotFilters = append(gotFilters, filter)
		if filter == "issn:0002-9602" {
			w.Write([]byte(`{"meta":{"count":1},"results":[{"id":"https://openalex.org/S123","display_name":"American Journal of Sociology","issn_l":"0002-9602"}]}`))
			return
		}
		w.Write([]byte(`{"meta":{"count":0},"results":[]}`))
	}))
	defer ts.Close()

	j, err := testClient(ts.URL).ResolveJournal(context.Background(), "American Journal of Sociology", "9999-9999, 0002-9602")
	if err != nil {
		t.Fatalf("ResolveJournal() error: %v", err)
	}
	if !j.Found {
		t.Fatal("ResolveJournal() Found = false, want true")
	}
	if j.OpenAlexID != "https://openalex.org/S123" {
		t.Errorf("OpenAlexID = %q", j.OpenAlexID)
	}
	if j.MatchedISSN != "0002-9602" {
		t.Errorf("MatchedISSN = %q, want the ISSN that hit", j.MatchedISSN)
	}
	// The first candidate missed, so both must have been tried in order.
	if len(gotFilters) != 2 || gotFilters[0] != "issn:9999-9999" {
		t.Errorf("filters tried = %v", gotFilters)
	}
}

func TestResolveJournalFallsBackToNameSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == "Social Forces" {
			w.Write([]byte(`{"meta":{"count":1},"results":[{"id":"https://openalex.org/S456","display_name":"Social Forces","issn":["0037-7732"]}]}`))
			return
		}
		w.Write([]byte(`{"meta":{"count":0},"results":[]}`))
	}))
	defer ts.Close()

	j, err := testClient(ts.URL).ResolveJournal(context.Background(), "Social Forces", "1111-1111")
	if err != nil {
		t.Fatalf("ResolveJournal() error: %v", err)
	}
	if !j.Found {
		t.Fatal("ResolveJournal() Found = false, want true")
	}
	if j.DisplayName != "Social Forces" {
		t.Errorf("DisplayName = %q", j.DisplayName)
	}
	if j.MatchedISSN != "0037-7732" {
		t.Errorf("MatchedISSN = %q, want first issn from the source", j.MatchedISSN)
	}
}

func TestResolveJournalNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meta":{"count":0},"results":[]}`))
	}))
	defer ts.Close()

	j, err := testClient(ts.URL).ResolveJournal(context.Background(), "Journal of Nonexistence", "")
	if err != nil {
		t.Fatalf("ResolveJournal() error: %v", err)
	}
	if j.Found {
		t.Error("Found = true for a journal with no match")
	}
	if j.OpenAlexID != "" || j.DisplayName != "" || j.MatchedISSN != "" {
		t.Errorf("identity fields not empty: %+v", j)
	}
	if j.InputName != "Journal of Nonexistence" {
		t.Errorf("InputName = %q", j.InputName)
	}
}

func TestResolveJournalServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	if _, err := testClient(ts.URL).ResolveJournal(context.Background(), "Anything", ""); err == nil {
		t.Fatal("expected error on HTTP 500")
	}
}

func TestSplitISSNs(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{" , ", 0},
		{"0002-9602", 1},
		{"0002-9602, 1537-5390", 2},
	}
	for _, tt := range tests {
		if got := splitISSNs(tt.in); len(got) != tt.want {
			t.Errorf("splitISSNs(%q) = %v, want %d entries", tt.in, got, tt.want)
		}
	}
}
