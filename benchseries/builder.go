// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"context"
	"fmt"

	"github.com/hashmaps/hmbench/benchfmt"
	"golang.org/x/sync/errgroup"
)

// A Builder collects benchmark records from a fixed, ordered set of
// trial files into a Dataset.
//
// A Builder is not safe for concurrent use. AddFiles parallelizes
// parsing internally but folds records into the Builder from a single
// goroutine.
type Builder struct {
	files []string

	groups map[string]*Group
	order  []*Group

	// ranges is the global range axis in first-seen order.
	ranges     []int64
	rangeIndex map[int64]int

	err error // first error from AddFiles; sticky
}

// NewBuilder creates a Builder for the trial files, whose position in
// files is their trial index.
func NewBuilder(files []string) *Builder {
	return &Builder{
		files:      files,
		groups:     make(map[string]*Group),
		rangeIndex: make(map[int64]int),
	}
}

// Add appends the measurement rec, read from the trial file at index
// trial, to the Builder.
//
// The first record of a load factor creates its Group, with one Result
// per implementation and an empty column per trial file for every
// operation. The duration is appended to the column for
// (implementation, operation, trial); the Builder trusts the input
// order and never sorts.
func (b *Builder) Add(trial int, rec *benchfmt.Record) error {
	if trial < 0 || trial >= len(b.files) {
		return fmt.Errorf("trial index %d out of range [0, %d)", trial, len(b.files))
	}
	if _, ok := b.rangeIndex[rec.Range]; !ok {
		b.rangeIndex[rec.Range] = len(b.ranges)
		b.ranges = append(b.ranges, rec.Range)
	}

	g := b.groups[rec.LoadFactor]
	if g == nil {
		g = &Group{LoadFactor: rec.LoadFactor}
		for _, impl := range benchfmt.Implementations {
			g.Results[impl] = newResult(impl, rec.LoadFactor, b.files)
		}
		b.groups[rec.LoadFactor] = g
		b.order = append(b.order, g)
	}

	col := &g.Results[rec.Impl].Trials[rec.Op][trial]
	*col = append(*col, rec.Duration)
	return nil
}

// AddFiles reads every trial file and adds its records.
//
// Aggregation is all-or-nothing: the first malformed record or I/O
// error is returned, and the Builder must then be discarded.
//
// If jobs is greater than 1, up to jobs files are parsed concurrently.
// Parsed files are folded in trial order regardless, so the resulting
// Dataset is identical to a serial pass.
func (b *Builder) AddFiles(ctx context.Context, jobs int) error {
	if b.err != nil {
		return b.err
	}
	if jobs <= 1 {
		b.err = b.addSerial(ctx)
	} else {
		b.err = b.addParallel(ctx, jobs)
	}
	return b.err
}

func (b *Builder) addSerial(ctx context.Context) error {
	files := benchfmt.Files{Paths: b.files}
	for files.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.Add(files.Index(), files.Result()); err != nil {
			return err
		}
	}
	return files.Err()
}

func (b *Builder) addParallel(ctx context.Context, jobs int) error {
	parsed := make([][]benchfmt.Record, len(b.files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range b.files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs, err := benchfmt.ReadFile(path)
			if err != nil {
				return err
			}
			parsed[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, recs := range parsed {
		for j := range recs {
			if err := b.Add(i, &recs[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Build returns the Dataset collected so far. Every Result of every
// Group shares the one range axis observed across all files.
func (b *Builder) Build() (*Dataset, error) {
	if b.err != nil {
		return nil, b.err
	}
	ds := &Dataset{
		Files:  b.files,
		Ranges: append([]int64(nil), b.ranges...),
		Groups: b.order,
	}
	for _, g := range ds.Groups {
		for _, r := range g.Results {
			r.Ranges = ds.Ranges
		}
	}
	return ds, nil
}

// Aggregate reads the trial files and returns their Dataset.
func Aggregate(ctx context.Context, files []string, jobs int) (*Dataset, error) {
	b := NewBuilder(files)
	if err := b.AddFiles(ctx, jobs); err != nil {
		return nil, err
	}
	return b.Build()
}
