// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit formats entry counts and converts benchmark
// durations between time units.
package benchunit

import "strconv"

// A Scaler converts values measured in nanoseconds to a display unit.
type Scaler struct {
	Factor float64 // Nanoseconds per display unit
	Unit   string  // Display unit ("ns", "ms")
}

var (
	// Nanoseconds leaves values unchanged.
	Nanoseconds = Scaler{1, "ns"}
	// Milliseconds divides values by 1e6.
	Milliseconds = Scaler{1e6, "ms"}
)

// Scale returns a new slice holding vals converted to s's unit.
func (s Scaler) Scale(vals []float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = v / s.Factor
	}
	return out
}

// Label returns the axis label for values in s's unit, for example
// "Time [ms]".
func (s Scaler) Label() string {
	return "Time [" + s.Unit + "]"
}

// A countFactor is an entry count threshold and the suffix used at or
// above it.
type countFactor struct {
	factor int64
	suffix string
}

// countFactors is ordered from the largest factor down.
var countFactors = []countFactor{
	{1000000, "M"},
	{1000, "K"},
}

// FormatCount formats the entry count n as a compact axis label:
// millions get an "M" suffix, thousands a "K" suffix, and smaller
// counts are printed as is. The scaled value is truncated, not
// rounded, so 1900000 formats as "1M" and 999999 as "999K".
func FormatCount(n int64) string {
	buf := make([]byte, 0, 20)
	for _, f := range countFactors {
		if n >= f.factor {
			buf = strconv.AppendInt(buf, n/f.factor, 10)
			return string(append(buf, f.suffix...))
		}
	}
	return string(strconv.AppendInt(buf, n, 10))
}
