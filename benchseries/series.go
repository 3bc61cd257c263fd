// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"strings"

	"github.com/hashmaps/hmbench/benchfmt"
	"github.com/hashmaps/hmbench/benchunit"
)

// XLabel is the x axis label of every chart.
const XLabel = "Number of entries in hash map"

// A Series is one implementation's line in a Chart.
type Series struct {
	Name   string
	Values []float64 // one per Chart.XLabels entry, in Chart.Scaler units
}

// A Chart is everything needed to draw one operation of one load
// factor group. Renderers and exporters consume Charts; they do no
// aggregation of their own.
type Chart struct {
	LoadFactor string
	Op         benchfmt.Operation

	Title   string
	XLabel  string
	YLabel  string
	XLabels []string
	Ranges  []int64

	// Scaler is the unit conversion applied to the averaged
	// nanosecond values.
	Scaler benchunit.Scaler

	// Series holds one entry per implementation, in
	// benchfmt.Implementations order.
	Series []Series
}

// FileName returns the base name, without extension, under which the
// chart is persisted: the operation's display words joined by hyphens
// followed by "-lf" and the load factor, for example
// "FAILED-LOOKUP-lf0.75".
func (c *Chart) FileName() string {
	return strings.Join(strings.Fields(c.Op.String()), "-") + "-lf" + c.LoadFactor
}

// ScalerFor returns the unit a chart of op is drawn in. Failed lookups
// are single probes and stay in nanoseconds; the other operations are
// timed over the whole range and are shown in milliseconds.
func ScalerFor(op benchfmt.Operation) benchunit.Scaler {
	if op == benchfmt.FailedLookup {
		return benchunit.Nanoseconds
	}
	return benchunit.Milliseconds
}

// Charts returns one Chart per load factor group and measured
// operation. Groups are visited in first-seen order and operations in
// declaration order. Every chart is computed before Charts returns,
// so an inconsistent trial matrix anywhere yields an error and no
// charts at all.
func Charts(ds *Dataset) ([]*Chart, error) {
	xLabels := make([]string, len(ds.Ranges))
	for i, n := range ds.Ranges {
		xLabels[i] = benchunit.FormatCount(n)
	}

	var charts []*Chart
	for _, g := range ds.Groups {
		for _, op := range benchfmt.Operations {
			if !g.Has(op) {
				continue
			}
			c, err := newChart(g, op, xLabels, ds.Ranges)
			if err != nil {
				return nil, err
			}
			charts = append(charts, c)
		}
	}
	return charts, nil
}

func newChart(g *Group, op benchfmt.Operation, xLabels []string, ranges []int64) (*Chart, error) {
	scaler := ScalerFor(op)
	c := &Chart{
		LoadFactor: g.LoadFactor,
		Op:         op,
		Title:      fmt.Sprintf("%s (load factor %s)", op, g.LoadFactor),
		XLabel:     XLabel,
		YLabel:     scaler.Label(),
		XLabels:    xLabels,
		Ranges:     ranges,
		Scaler:     scaler,
	}
	for _, r := range g.Results {
		avg, err := r.Average(op)
		if err != nil {
			return nil, err
		}
		c.Series = append(c.Series, Series{Name: r.Name(), Values: scaler.Scale(avg)})
	}
	return c, nil
}
