// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package viz

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdiddy/journal-trends/internal/artifact"
)

// Options selects the input table and chart shape for the visualize stage.
type Options struct {
	Sheet  string
	OutDir string

	// YearMin is the left edge of the year grid (default 2010).
	YearMin int

	// Cols is the small-multiples column count (default 3).
	Cols int

	// Title is the interactive chart title. Empty means a default built
	// from the sheet name.
	Title string
}

// Run reads the prevalence table and renders both output figures: the
// small-multiples PNG and the interactive HTML chart.
func Run(opts Options, w io.Writer) error {
	if opts.YearMin <= 0 {
		opts.YearMin = 2010
	}

	rows, err := artifact.ReadPrevalence(artifact.PrevalencePath(opts.OutDir, opts.Sheet))
	if err != nil {
		return err
	}

	ds := BuildDataset(rows, opts.YearMin)

	figDir := artifact.FiguresDir(opts.OutDir)
	base := "keyword_trends_" + artifact.SafeSheet(opts.Sheet)

	pngPath := filepath.Join(figDir, base+".png")
	if err := RenderPNG(ds, opts.Cols, pngPath); err != nil {
		return err
	}
	fmt.Fprintf(w, "figure saved to %s\n", pngPath)

	title := opts.Title
	if title == "" {
		title = "Keyword prevalence: " + opts.Sheet
	}
	htmlPath := filepath.Join(figDir, base+".html")
	if err := RenderHTML(ds, title, htmlPath); err != nil {
		return err
	}
	fmt.Fprintf(w, "interactive chart saved to %s\n", htmlPath)
	return nil
}
