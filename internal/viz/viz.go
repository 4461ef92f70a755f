// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package viz renders keyword prevalence trend charts: a small-multiples
// PNG and an interactive HTML line chart.
package viz

import (
	"sort"

	"github.com/pdiddy/journal-trends/pkg/types"
)

// bertFamily labels are forced to zero before bertMinYear: the models did
// not exist yet, so earlier matches are false positives (band names,
// acronym collisions).
var bertFamily = map[string]bool{
	"BERT":       true,
	"RoBERTa":    true,
	"ALBERT":     true,
	"DistilBERT": true,
}

const bertMinYear = 2018

// Series is one keyword's percentage trend, aligned to the Dataset year grid.
type Series struct {
	Label string
	Pct   []float64
}

// Dataset is the chart-ready view of a prevalence table: a continuous
// year grid and one series per keyword that has any non-zero value.
type Dataset struct {
	Years  []int
	Series []Series
}

// BuildDataset collapses prevalence rows across journals into yearly
// totals per keyword and computes percentages with guarded division.
// Rows before yearMin are dropped; the grid runs from yearMin to the
// latest year present, with missing cells filled as zero. Keywords that
// are zero for every year are dropped entirely.
func BuildDataset(rows []types.AggregateRow, yearMin int) Dataset {
	type yk struct {
		year  int
		label string
	}
	totals := make(map[yk]int)
	matching := make(map[yk]int)
	labelSet := make(map[string]bool)
	maxYear := yearMin

	for _, r := range rows {
		if r.Year < yearMin {
			continue
		}
		n := r.MatchingArticles
		if bertFamily[r.Keyword] && r.Year < bertMinYear {
			n = 0
		}
		key := yk{r.Year, r.Keyword}
		totals[key] += r.TotalArticles
		matching[key] += n
		labelSet[r.Keyword] = true
		if r.Year > maxYear {
			maxYear = r.Year
		}
	}

	years := make([]int, 0, maxYear-yearMin+1)
	for y := yearMin; y <= maxYear; y++ {
		years = append(years, y)
	}

	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	ds := Dataset{Years: years}
	for _, label := range labels {
		pct := make([]float64, len(years))
		nonZero := false
		for i, y := range years {
			key := yk{y, label}
			if t := totals[key]; t > 0 {
				pct[i] = 100 * float64(matching[key]) / float64(t)
			}
			if pct[i] > 0 {
				nonZero = true
			}
		}
		if nonZero {
			ds.Series = append(ds.Series, Series{Label: label, Pct: pct})
		}
	}
	return ds
}
