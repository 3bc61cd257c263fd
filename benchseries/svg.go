// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// An SVGRenderer draws line charts as SVG documents using go-chart.
type SVGRenderer struct {
	Width, Height int // pixels
}

// DefaultSVGRenderer is an SVGRenderer with a 960x600 canvas.
var DefaultSVGRenderer = &SVGRenderer{Width: 960, Height: 600}

func (*SVGRenderer) Ext() string { return "svg" }

// Render writes c to w as an SVG document.
func (r *SVGRenderer) Render(w io.Writer, c *Chart) error {
	return r.Chart(c).Render(chart.SVG, w)
}

// Chart builds the go-chart chart for c. X values are range indices
// labeled with c.XLabels. Two unlabeled ticks pad the axis by half a
// step on each side, since go-chart takes the x range from the ticks
// and a single range would otherwise have zero width.
func (r *SVGRenderer) Chart(c *Chart) *chart.Chart {
	n := len(c.XLabels)
	xs := make([]float64, n)
	ticks := make([]chart.Tick, 0, n+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, l := range c.XLabels {
		xs[i] = float64(i)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: l})
	}
	ticks = append(ticks, chart.Tick{Value: float64(n) - 0.5})

	lo, hi := math.Inf(1), math.Inf(-1)
	var series []chart.Series
	for i, s := range c.Series {
		for _, v := range s.Values {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
		clr := chart.GetDefaultColor(i)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: s.Values,
			Style: chart.Style{
				StrokeColor: clr,
				StrokeWidth: 2,
				DotColor:    clr,
				DotWidth:    pointRad,
			},
		})
	}

	// go-chart rejects an empty y range, which a flat series would
	// produce.
	var yRange *chart.ContinuousRange
	if !(hi > lo) {
		if math.IsInf(lo, 0) {
			lo, hi = 0, 0
		}
		yRange = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}

	ch := &chart.Chart{
		Title:  c.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  c.XLabel,
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: c.YLabel,
		},
		Series: series,
	}
	if yRange != nil {
		ch.YAxis.Range = yRange
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch
}
