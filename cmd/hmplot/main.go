// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Hmplot averages hash map benchmark trials and charts them.
//
// Usage:
//
//	hmplot --results DIR [--save [--out DIR] [--format png|svg] [--html]] [--csv FILE] [--db DSN]
//
// Every regular file in the results directory is one trial run: a CSV
// file with a header row and rows of the form
//
//	implementation,range,load factor,operation,duration in ns
//
// Trials are averaged per load factor, implementation, operation and
// range. Hmplot draws one chart per load factor and operation, with one
// line per implementation. FAILED LOOKUP is plotted in nanoseconds, the
// other operations in milliseconds.
//
// Without --save the charts are printed to standard output as tables.
// With --save they are written to the --out directory, named like
// "FAILED-LOOKUP-lf0.75.png". Any malformed input aborts the run before
// a single chart is written.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/hashmaps/hmbench/benchfmt"
	"github.com/hashmaps/hmbench/benchseries"
	"github.com/hashmaps/hmbench/internal/config"
	"github.com/hashmaps/hmbench/internal/logging"
	"github.com/hashmaps/hmbench/storage/db"
	_ "github.com/hashmaps/hmbench/storage/db/sqlite3"
	"github.com/urfave/cli"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()
	if _, err := logging.New(logging.Local); err != nil {
		fmt.Fprintf(os.Stderr, "hmplot: %v\n", err)
		os.Exit(1)
	}

	a := cli.NewApp()
	a.Name = "hmplot"
	a.Usage = "chart hash map benchmark results"
	a.Flags = config.Flags()
	a.Action = func(c *cli.Context) error {
		cfg, err := config.NewConfig(c)
		if err != nil {
			return err
		}
		if _, err := logging.New(cfg.Environment); err != nil {
			return err
		}
		defer logging.NoContext().Sync()
		return run(ctx, cfg, os.Stdout)
	}

	if err := a.Run(os.Args); err != nil {
		logging.WithContext(ctx).Fatal("Error running hmplot", zap.Error(err))
	}
}

// run reads every trial in cfg.Results and produces all requested
// outputs. Nothing is written unless every trial parses and averages.
func run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	logger := logging.WithContext(ctx)

	files, err := benchfmt.Dir(cfg.Results)
	if err != nil {
		return err
	}
	logger.Info("Found trial files", zap.String("dir", cfg.Results), zap.Int("files", len(files)))

	ds, err := benchseries.Aggregate(ctx, files, cfg.Jobs)
	if err != nil {
		return err
	}
	charts, err := benchseries.Charts(ds)
	if err != nil {
		return err
	}
	logger.Debug("Aggregated trials",
		zap.Int("groups", len(ds.Groups)),
		zap.Int("ranges", len(ds.Ranges)),
		zap.Int("charts", len(charts)))
	if len(charts) == 0 {
		logger.Warn("No measurements found", zap.String("dir", cfg.Results))
	}

	if cfg.Save {
		if err := save(ctx, cfg, len(ds.Files), charts); err != nil {
			return err
		}
	} else if err := benchseries.FormatText(stdout, charts); err != nil {
		return err
	}

	if cfg.CSV != "" {
		if err := writeCSV(cfg.CSV, stdout, charts); err != nil {
			return err
		}
		logger.Info("Wrote CSV", zap.String("file", cfg.CSV))
	}

	if cfg.DB != "" {
		if err := store(ctx, cfg, len(ds.Files), charts); err != nil {
			return err
		}
	}
	return nil
}

func save(ctx context.Context, cfg *config.Config, trials int, charts []*benchseries.Chart) error {
	logger := logging.WithContext(ctx)

	paths, err := benchseries.Save(cfg.Out, charts, cfg.Renderer())
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.Debug("Wrote chart", zap.String("file", p))
	}
	logger.Info("Saved charts", zap.String("dir", cfg.Out), zap.Int("charts", len(paths)), zap.String("format", cfg.Format))

	if !cfg.HTML {
		return nil
	}
	index := filepath.Join(cfg.Out, "index.html")
	f, err := os.Create(index)
	if err != nil {
		return err
	}
	err = benchseries.WriteHTML(f, trials, charts, paths)
	if err = multierr.Append(err, f.Close()); err != nil {
		return fmt.Errorf("writing %s: %w", index, err)
	}
	logger.Info("Wrote report", zap.String("file", index))
	return nil
}

func writeCSV(name string, stdout io.Writer, charts []*benchseries.Chart) (err error) {
	if name == "-" {
		return benchseries.WriteCSV(stdout, charts)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return benchseries.WriteCSV(f, charts)
}

func store(ctx context.Context, cfg *config.Config, trials int, charts []*benchseries.Chart) (err error) {
	logger := logging.WithContext(ctx)

	d, err := db.OpenSQL(cfg.DBDriver, cfg.DB)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		err = multierr.Append(err, d.Close())
	}()

	r, err := d.NewRun(ctx, trials)
	if err != nil {
		return err
	}
	for _, c := range charts {
		if err := r.InsertChart(ctx, c); err != nil {
			return multierr.Append(err, r.Abort())
		}
	}
	if err := r.Commit(); err != nil {
		return err
	}
	logger.Info("Stored run", zap.String("driver", cfg.DBDriver), zap.Int64("run", r.ID), zap.Int("charts", len(charts)))
	return nil
}
