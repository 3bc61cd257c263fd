// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"golang.org/x/image/font"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// A Renderer draws a Chart into an image format.
type Renderer interface {
	// Ext returns the file name extension of the format, such as
	// "png".
	Ext() string

	// Render writes c to w.
	Render(w io.Writer, c *Chart) error
}

// Save renders every chart into dir, which is created if it does not
// exist, as dir/<c.FileName()>.<r.Ext()>. It returns the paths
// written. All charts are rendered before any file is created, and
// files already written are removed if a later write fails, so an
// error leaves no charts behind.
func Save(dir string, charts []*Chart, r Renderer) ([]string, error) {
	paths := make([]string, len(charts))
	images := make([][]byte, len(charts))
	for i, c := range charts {
		paths[i] = filepath.Join(dir, c.FileName()) + "." + r.Ext()
		var buf bytes.Buffer
		if err := r.Render(&buf, c); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", paths[i], err)
		}
		images[i] = buf.Bytes()
	}

	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, err
	}
	for i, path := range paths {
		if err := os.WriteFile(path, images[i], 0666); err != nil {
			for _, p := range paths[:i] {
				err = multierr.Append(err, os.Remove(p))
			}
			return nil, err
		}
	}
	return paths, nil
}

const pointRad = 3.5

// A PlotRenderer draws line charts as PNG images using gonum/plot.
type PlotRenderer struct {
	Width, Height vg.Length
	DPI           int
}

// DefaultPlotRenderer is a PlotRenderer with a 16x10 cm canvas at
// 150 dpi.
var DefaultPlotRenderer = &PlotRenderer{
	Width:  16 * vg.Centimeter,
	Height: 10 * vg.Centimeter,
	DPI:    150,
}

func (*PlotRenderer) Ext() string { return "png" }

// Plot builds the gonum plot for c: one line with circle markers per
// series over a nominal x axis of range labels.
func (*PlotRenderer) Plot(c *Chart) (*plot.Plot, error) {
	pl := plot.New()

	pl.Title.Text = c.Title
	pl.Title.TextStyle.Font.Weight = font.WeightBold
	pl.X.Label.Text = c.XLabel
	pl.Y.Label.Text = c.YLabel

	grid := plotter.NewGrid()
	pl.Add(grid)

	for i, s := range c.Series {
		xys := make(plotter.XYs, len(s.Values))
		for j, v := range s.Values {
			xys[j].X = float64(j)
			xys[j].Y = v
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("%s: series %s: %w", c.Title, s.Name, err)
		}
		clr := plotutil.Color(i)
		line.LineStyle.Color = clr
		line.LineStyle.Width = vg.Points(1.5)
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		points.GlyphStyle.Color = clr
		points.GlyphStyle.Radius = vg.Points(pointRad)

		pl.Add(line, points)
		pl.Legend.Add(s.Name, line, points)
	}
	pl.Legend.Top = true
	pl.Legend.Left = true
	pl.NominalX(c.XLabels...)

	return pl, nil
}

// Render writes c to w as a PNG image.
func (r *PlotRenderer) Render(w io.Writer, c *Chart) error {
	pl, err := r.Plot(c)
	if err != nil {
		return err
	}
	can := vgimg.NewWith(vgimg.UseWH(r.Width, r.Height),
		vgimg.UseDPI(r.DPI), vgimg.UseBackgroundColor(color.White))
	pl.Draw(draw.New(can))
	_, err = vgimg.PngCanvas{Canvas: can}.WriteTo(w)
	return err
}
