// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchseries aggregates hash map benchmark records from
// repeated trial files and turns them into chart-ready series.
//
// A Builder folds the records of N trial files into a Dataset, one
// Group per load factor. Each Group holds one Result per
// implementation, and each Result holds, per operation, an N-column
// matrix of raw nanosecond measurements indexed by trial file and then
// by range position. Averages over the trial dimension are computed on
// demand by Result.Average; Charts walks a Dataset and produces one
// Chart per (load factor, operation).
package benchseries

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
	"github.com/hashmaps/hmbench/benchfmt"
)

// A Dataset is the result of aggregating a set of trial files.
// It is read-only once built.
type Dataset struct {
	// Files are the trial files, indexed by trial number.
	Files []string

	// Ranges are the distinct entry counts observed across every
	// file and load factor, in first-seen order.
	Ranges []int64

	// Groups holds one Group per load factor, in first-seen order.
	Groups []*Group
}

// Group returns the group for the load factor key, or nil.
func (ds *Dataset) Group(loadFactor string) *Group {
	for _, g := range ds.Groups {
		if g.LoadFactor == loadFactor {
			return g
		}
	}
	return nil
}

// A Group collects the results for one load factor.
type Group struct {
	LoadFactor string

	// Results holds one Result per implementation, indexed by
	// benchfmt.Implementation.
	Results [benchfmt.NumImplementations]*Result
}

// Has reports whether any implementation of g recorded a measurement
// for op.
func (g *Group) Has(op benchfmt.Operation) bool {
	for _, r := range g.Results {
		if r.Has(op) {
			return true
		}
	}
	return false
}

// A Result holds the measurements of one implementation within a
// Group.
type Result struct {
	Impl benchfmt.Implementation

	// Ranges is the range axis shared by every Result of the
	// Dataset.
	Ranges []int64

	// Trials holds, per operation, one column of durations (in
	// nanoseconds) per trial file. Values within a column are in
	// the order they were read, which is range order for
	// well-formed input.
	Trials [benchfmt.NumOperations][][]int64

	loadFactor string
	files      []string
}

func newResult(impl benchfmt.Implementation, loadFactor string, files []string) *Result {
	r := &Result{Impl: impl, loadFactor: loadFactor, files: files}
	for op := range r.Trials {
		r.Trials[op] = make([][]int64, len(files))
	}
	return r
}

// Name returns the display name of r's implementation.
func (r *Result) Name() string {
	return r.Impl.String()
}

// Has reports whether any trial recorded a measurement for op.
func (r *Result) Has(op benchfmt.Operation) bool {
	for _, col := range r.Trials[op] {
		if len(col) > 0 {
			return true
		}
	}
	return false
}

// Average returns, for each range index, the arithmetic mean of op's
// measurements across all trial files, in nanoseconds.
//
// Every trial column must hold exactly one value per range. If one
// does not, Average returns an error wrapping
// benchfmt.ErrMalformedRecord rather than truncating or padding.
func (r *Result) Average(op benchfmt.Operation) ([]float64, error) {
	cols := r.Trials[op]
	for i, col := range cols {
		if len(col) != len(r.Ranges) {
			return nil, fmt.Errorf("load factor %s: %s %s: trial %d (%s) has %d measurements, want %d: %w",
				r.loadFactor, r.Impl, op, i, r.fileName(i), len(col), len(r.Ranges), benchfmt.ErrMalformedRecord)
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("load factor %s: %s %s: no trial files: %w", r.loadFactor, r.Impl, op, benchfmt.ErrMalformedRecord)
	}

	avg := make([]float64, len(r.Ranges))
	xs := make([]float64, len(cols))
	for j := range r.Ranges {
		for i, col := range cols {
			xs[i] = float64(col[j])
		}
		avg[j] = stats.Mean(xs)
	}
	return avg, nil
}

func (r *Result) fileName(i int) string {
	if i < len(r.files) {
		return r.files[i]
	}
	return "?"
}
