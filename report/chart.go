// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"errors"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"golang.org/x/profcmp/profcmp"
)

// ErrNoRatios is returned by WriteChart when no row has a time ratio.
var ErrNoRatios = errors.New("no device/bench time ratios to chart")

var (
	barColor   = color.NRGBA{0x33, 0x66, 0x99, 0xff}
	slowColor  = color.NRGBA{0xff, 0, 0, 0xff}
	limitColor = color.NRGBA{0xff, 0, 0, 0xa0}
)

// WriteChart writes a PNG bar chart of the device/bench time ratio of
// every compared API in t, with a dashed line at s.Limit.
func WriteChart(w io.Writer, t *profcmp.Table, s *profcmp.Summary) error {
	var (
		values plotter.Values
		slow   plotter.Values
		names  []string
	)
	for _, row := range t.Rows {
		if !row.HasDeviceTime || math.IsInf(row.TimeRatio, 0) || math.IsNaN(row.TimeRatio) {
			continue
		}
		names = append(names, row.API)
		if row.TimeRatio > s.Limit {
			values = append(values, 0)
			slow = append(slow, row.TimeRatio)
		} else {
			values = append(values, row.TimeRatio)
			slow = append(slow, 0)
		}
	}
	if len(names) == 0 {
		return ErrNoRatios
	}

	pl := plot.New()
	pl.Title.Text = profcmp.TimeRatio.String()
	pl.Y.Label.Text = "device time / bench time"
	pl.Y.Min = 0

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	width := vg.Points(8)
	for _, series := range []struct {
		vals plotter.Values
		clr  color.Color
	}{{values, barColor}, {slow, slowColor}} {
		bars, err := plotter.NewBarChart(series.vals, width)
		if err != nil {
			return err
		}
		bars.Color = series.clr
		bars.LineStyle.Width = 0
		pl.Add(bars)
	}

	limit := plotter.NewFunction(func(float64) float64 { return s.Limit })
	limit.Color = limitColor
	limit.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	pl.Add(limit)
	pl.Legend.Add("limit", limit)
	pl.Legend.Top = true

	pl.NominalX(names...)
	pl.X.Tick.Label.Rotation = -math.Pi / 4
	pl.X.Tick.Label.XAlign = draw.XLeft
	pl.X.Tick.Label.YAlign = draw.YTop

	// Force the unit ratio onto the graph to ensure there is a scale.
	if pl.Y.Max < 1 {
		pl.Y.Max = 1
	}
	if pl.Y.Max < s.Limit {
		pl.Y.Max = s.Limit
	}

	chartWidth := vg.Length(len(names))*3*width + 2*vg.Inch
	if chartWidth < 6*vg.Inch {
		chartWidth = 6 * vg.Inch
	}
	wt, err := pl.WriterTo(chartWidth, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
