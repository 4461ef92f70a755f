// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package viz

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// palette is the fixed series color cycle.
var palette = []color.RGBA{
	{0x1b, 0x9e, 0x77, 0xff},
	{0xd9, 0x5f, 0x02, 0xff},
	{0x75, 0x70, 0xb3, 0xff},
	{0xe7, 0x29, 0x8a, 0xff},
	{0x66, 0xa6, 0x1e, 0xff},
	{0xe6, 0xab, 0x02, 0xff},
	{0xa6, 0x76, 0x1d, 0xff},
	{0x1f, 0x78, 0xb4, 0xff},
	{0xfb, 0x9a, 0x99, 0xff},
	{0xca, 0xb2, 0xd6, 0xff},
}

const (
	panelWidth  = 4 * vg.Inch
	panelHeight = 3 * vg.Inch
)

// RenderPNG draws one small chart per keyword (year on x, percentage on
// y, filled area under the line) arranged in a grid of cols columns, and
// writes the result as a PNG.
func RenderPNG(ds Dataset, cols int, path string) error {
	if len(ds.Series) == 0 {
		return fmt.Errorf("no keyword series to plot")
	}
	if cols <= 0 {
		cols = 3
	}
	rows := (len(ds.Series) + cols - 1) / cols

	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
	}

	for i, s := range ds.Series {
		p := plot.New()
		p.Title.Text = s.Label
		p.Y.Label.Text = "% of articles"
		p.X.Tick.Marker = yearTicks{}

		xys := make(plotter.XYs, len(ds.Years))
		for j, y := range ds.Years {
			xys[j].X = float64(y)
			xys[j].Y = s.Pct[j]
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("building series %s: %w", s.Label, err)
		}
		c := palette[i%len(palette)]
		line.Color = c
		line.Width = vg.Points(2)
		line.FillColor = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0x38}
		p.Add(line)

		plots[i/cols][i%cols] = p
	}

	img := vgimg.New(vg.Length(cols)*panelWidth, vg.Length(rows)*panelHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}

	canvases := plot.Align(plots, tiles, dc)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if plots[r][c] != nil {
				plots[r][c].Draw(canvases[r][c])
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating figures directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating figure %s: %w", path, err)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing figure %s: %w", path, err)
	}
	return f.Close()
}

// yearTicks places integer-year tick marks on the x axis.
type yearTicks struct{}

func (yearTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	lo := int(math.Ceil(min))
	hi := int(math.Floor(max))
	if hi < lo {
		return ticks
	}
	step := 1
	if span := hi - lo; span > 6 {
		step = (span + 5) / 6
	}
	for y := lo; y <= hi; y += step {
		ticks = append(ticks, plot.Tick{Value: float64(y), Label: fmt.Sprintf("%d", y)})
	}
	return ticks
}
