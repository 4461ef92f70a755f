// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"regexp"
	"strings"
)

// punctSpace matches the join artifact of a space before clause punctuation.
var punctSpace = regexp.MustCompile(`\s+([.,;:?!])`)

// ReconstructAbstract converts an abstract_inverted_index (word to
// zero-based positions) back to plain text. Each word is written into
// every position it lists (last writer wins on duplicate positions), the
// slots are joined with spaces, and the space preceding clause punctuation
// is removed. Returns ok=false for an absent or empty index, or when the
// result trims to nothing.
func ReconstructAbstract(index map[string][]int) (string, bool) {
	if len(index) == 0 {
		return "", false
	}

	maxPos := -1
	for _, positions := range index {
		for _, p := range positions {
			if p > maxPos {
				maxPos = p
			}
		}
	}
	if maxPos < 0 {
		return "", false
	}

	words := make([]string, maxPos+1)
	for word, positions := range index {
		for _, p := range positions {
			if p >= 0 {
				words[p] = word
			}
		}
	}

	abstract := strings.TrimSpace(strings.Join(words, " "))
	abstract = punctSpace.ReplaceAllString(abstract, "$1")
	if abstract == "" {
		return "", false
	}
	return abstract, true
}
