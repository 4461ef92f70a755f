package viz

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes an interactive line chart overlaying every keyword
// series, with an axis tooltip, scrollable legend, and a data-zoom slider.
func RenderHTML(ds Dataset, title, path string) error {
	if len(ds.Series) == 0 {
		return fmt.Errorf("no keyword series to plot")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "% of articles"}),
	)

	years := make([]string, len(ds.Years))
	for i, y := range ds.Years {
		years[i] = strconv.Itoa(y)
	}
	line.SetXAxis(years)

	for _, s := range ds.Series {
		data := make([]opts.LineData, len(s.Pct))
		for i, v := range s.Pct {
			data[i] = opts.LineData{Value: math.Round(v*100) / 100}
		}
		line.AddSeries(s.Label, data)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating figures directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart %s: %w", path, err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("rendering chart %s: %w", path, err)
	}
	return nil
}
