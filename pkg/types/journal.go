// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data records shared across pipeline stages.
package types

// JournalInput is one row of the input workbook: a human-entered journal
// name plus a comma-separated list of candidate ISSNs.
type JournalInput struct {
	Name string `yaml:"name"`
	ISSN string `yaml:"issn,omitempty"`
}

// Journal is a journal resolved against the OpenAlex Sources index.
// Found is false when neither ISSN lookup nor name search produced a
// match; the identity fields are then empty.
type Journal struct {
	InputName   string `json:"input_name" yaml:"input_name"`
	InputISSN   string `json:"input_issn,omitempty" yaml:"input_issn,omitempty"`
	OpenAlexID  string `json:"openalex_id,omitempty" yaml:"openalex_id,omitempty"`
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	MatchedISSN string `json:"matched_issn,omitempty" yaml:"matched_issn,omitempty"`
	Found       bool   `json:"found" yaml:"found"`
}
