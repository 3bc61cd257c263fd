// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config turns hmplot's command line into a Config.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/hashmaps/hmbench/benchseries"
	"github.com/hashmaps/hmbench/internal/logging"
	"github.com/urfave/cli"
	"gonum.org/v1/plot/vg"
)

// Output formats accepted by --format.
const (
	PNG = "png"
	SVG = "svg"
)

// Flags returns the command line flags NewConfig reads.
func Flags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "results",
			Usage: "read trial CSV files from `DIR`",
		},
		cli.BoolFlag{
			Name:  "save",
			Usage: "write chart images instead of printing tables",
		},
		cli.StringFlag{
			Name:  "out",
			Value: "./assets",
			Usage: "write chart images to `DIR`",
		},
		cli.StringFlag{
			Name:  "format",
			Value: PNG,
			Usage: "image format, png or svg",
		},
		cli.Float64Flag{
			Name:  "width",
			Value: 16,
			Usage: "image width in centimeters",
		},
		cli.Float64Flag{
			Name:  "height",
			Value: 10,
			Usage: "image height in centimeters",
		},
		cli.IntFlag{
			Name:  "dpi",
			Value: 150,
			Usage: "image resolution",
		},
		cli.StringFlag{
			Name:  "csv",
			Usage: "write averaged series as CSV to `FILE` (- for stdout)",
		},
		cli.BoolFlag{
			Name:  "html",
			Usage: "with --save, also write an index.html report",
		},
		cli.StringFlag{
			Name:  "db-driver",
			Value: "sqlite3",
			Usage: "database driver, sqlite3 or mysql",
		},
		cli.StringFlag{
			Name:  "db",
			Usage: "store averaged points in the database at `DSN`",
		},
		cli.IntFlag{
			Name:  "jobs",
			Value: 1,
			Usage: "parse up to `N` trial files concurrently",
		},
		cli.StringFlag{
			Name:  "env",
			Value: string(logging.Local),
			Usage: "logger flavour: local, development or production",
		},
	}
}

// Config is the validated command line.
type Config struct {
	Environment logging.Env

	Results string
	Jobs    int

	Save   bool
	Out    string
	Format string
	// Image size in centimeters.
	Width, Height float64
	DPI           int
	HTML          bool

	CSV string

	DBDriver string
	DB       string
}

// NewConfig reads the flags of c and validates them.
func NewConfig(c *cli.Context) (*Config, error) {
	cfg := &Config{
		Environment: logging.Env(c.String("env")),
		Results:     c.String("results"),
		Jobs:        c.Int("jobs"),
		Save:        c.Bool("save"),
		Out:         c.String("out"),
		Format:      c.String("format"),
		Width:       c.Float64("width"),
		Height:      c.Float64("height"),
		DPI:         c.Int("dpi"),
		HTML:        c.Bool("html"),
		CSV:         c.String("csv"),
		DBDriver:    c.String("db-driver"),
		DB:          c.String("db"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first unusable setting.
func (cfg *Config) Validate() error {
	switch {
	case cfg.Results == "":
		return errors.New("--results is required")
	case cfg.Format != PNG && cfg.Format != SVG:
		return fmt.Errorf("unknown format %q", cfg.Format)
	case cfg.Width <= 0 || cfg.Height <= 0:
		return fmt.Errorf("invalid image size %gx%g cm", cfg.Width, cfg.Height)
	case cfg.DPI <= 0:
		return fmt.Errorf("invalid dpi %d", cfg.DPI)
	case cfg.Jobs < 0:
		return fmt.Errorf("invalid jobs %d", cfg.Jobs)
	case cfg.HTML && !cfg.Save:
		return errors.New("--html requires --save")
	case cfg.DB != "" && cfg.DBDriver != "sqlite3" && cfg.DBDriver != "mysql":
		return fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
	return nil
}

// Renderer returns the chart renderer for the configured format and
// size.
func (cfg *Config) Renderer() benchseries.Renderer {
	if cfg.Format == SVG {
		px := func(cm float64) int { return int(math.Round(cm / 2.54 * float64(cfg.DPI))) }
		return &benchseries.SVGRenderer{Width: px(cfg.Width), Height: px(cfg.Height)}
	}
	return &benchseries.PlotRenderer{
		Width:  vg.Length(cfg.Width) * vg.Centimeter,
		Height: vg.Length(cfg.Height) * vg.Centimeter,
		DPI:    cfg.DPI,
	}
}
