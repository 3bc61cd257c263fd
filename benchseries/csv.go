// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"load factor", "operation", "implementation", "entries", "label", "value", "unit"}

// WriteCSV writes the plotted values of charts to out, one row per
// (chart, series, range) in plotting order. Values are in the chart's
// display unit.
func WriteCSV(out io.Writer, charts []*Chart) error {
	csvw := csv.NewWriter(out)
	if err := csvw.Write(csvHeader); err != nil {
		return err
	}
	row := make([]string, len(csvHeader))
	for _, c := range charts {
		for _, s := range c.Series {
			for j, v := range s.Values {
				row[0] = c.LoadFactor
				row[1] = c.Op.String()
				row[2] = s.Name
				row[3] = strconv.FormatInt(c.Ranges[j], 10)
				row[4] = c.XLabels[j]
				row[5] = strof(v)
				row[6] = c.Scaler.Unit
				if err := csvw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	csvw.Flush()
	return csvw.Error()
}

func strof(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
