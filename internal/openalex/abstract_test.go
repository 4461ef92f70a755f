// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"strings"
	"testing"
)

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name   string
		index  map[string][]int
		want   string
		wantOK bool
	}{
		{
			name:   "nil map",
			index:  nil,
			want:   "",
			wantOK: false,
		},
		{
			name:   "empty map",
			index:  map[string][]int{},
			want:   "",
			wantOK: false,
		},
		{
			name:   "word with no positions",
			index:  map[string][]int{"orphan": {}},
			want:   "",
			wantOK: false,
		},
		{
			name:   "single word",
			index:  map[string][]int{"hello": {0}},
			want:   "hello",
			wantOK: true,
		},
		{
			name: "three words in order",
			index: map[string][]int{
				"The": {0},
				"cat": {1},
				"sat": {2},
			},
			want:   "The cat sat",
			wantOK: true,
		},
		{
			name: "word appearing at multiple positions",
			index: map[string][]int{
				"the": {0, 4},
				"cat": {1},
				"sat": {2},
				"on":  {3},
				"mat": {5},
			},
			want:   "the cat sat on the mat",
			wantOK: true,
		},
		{
			name: "space removed before sentence punctuation",
			index: map[string][]int{
				"We":      {0},
				"propose": {1},
				"a":       {2},
				"method":  {3},
				".":       {4},
			},
			want:   "We propose a method.",
			wantOK: true,
		},
		{
			name: "space removed before comma and question mark",
			index: map[string][]int{
				"First": {0},
				",":     {1},
				"why":   {2},
				"?":     {3},
			},
			want:   "First, why?",
			wantOK: true,
		},
		{
			name:   "punctuation only trims to something",
			index:  map[string][]int{";": {0}},
			want:   ";",
			wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ReconstructAbstract(tt.index)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ReconstructAbstract() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// Reconstructed text must never contain a space immediately before clause
// punctuation, whatever positions the punctuation tokens land on.
func TestReconstructAbstractNoSpaceBeforePunctuation(t *testing.T) {
	index := map[string][]int{
		"models": {0},
		",":      {1},
		"data":   {2},
		";":      {3},
		"and":    {4},
		"code":   {5},
		":":      {6},
		"all":    {7},
		"!":      {8},
	}
	got, ok := ReconstructAbstract(index)
	if !ok {
		t.Fatal("ReconstructAbstract() reported no abstract")
	}
	for _, p := range []string{".", ",", ";", ":", "?", "!"} {
		if strings.Contains(got, " "+p) {
			t.Errorf("reconstructed abstract %q contains space before %q", got, p)
		}
	}
}
