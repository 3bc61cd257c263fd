// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"io"
	"strconv"

	"github.com/hashmaps/hmbench/internal/texttab"
)

// FormatText writes each chart to w as an aligned text table with one
// row per implementation and one column per range. It is the terminal
// counterpart of rendering an image.
func FormatText(w io.Writer, charts []*Chart) error {
	for i, c := range charts {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s, %s\n", c.Title, c.YLabel); err != nil {
			return err
		}

		var tab texttab.Table
		tab.Row().Cell("entries")
		for _, l := range c.XLabels {
			tab.Cell(l, texttab.Right)
		}
		for _, s := range c.Series {
			tab.Row().Cell(s.Name)
			for _, v := range s.Values {
				tab.Cell(strconv.FormatFloat(v, 'g', 4, 64), texttab.Right)
			}
		}
		if err := tab.Format(w); err != nil {
			return err
		}
	}
	return nil
}
