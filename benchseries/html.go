// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Hash map benchmarks</title>
</head>
<body>
<h1>Hash map benchmarks</h1>
<p>{{.Trials}} trial file(s).</p>
{{range .Charts}}
<h2>{{.Title}}</h2>
{{if .Image}}<p><img src="{{.Image}}" alt="{{.Title}}"></p>{{end}}
<table border="1">
<tr><th>{{.Unit}}</th>{{range .Labels}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr><td>{{.Name}}</td>{{range .Values}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{end}}
</body>
</html>
`))

type htmlReport struct {
	Trials int
	Charts []htmlChart
}

type htmlChart struct {
	Title  string
	Image  string
	Unit   string
	Labels []string
	Rows   []htmlRow
}

type htmlRow struct {
	Name   string
	Values []string
}

// WriteHTML writes an HTML report of charts to w. images, if not nil,
// holds the path of each chart's rendered image, parallel to charts;
// only the base name is linked, so the report must live in the same
// directory as the images.
func WriteHTML(w io.Writer, trials int, charts []*Chart, images []string) error {
	if images != nil && len(images) != len(charts) {
		return fmt.Errorf("got %d images for %d charts", len(images), len(charts))
	}
	rep := htmlReport{Trials: trials}
	for i, c := range charts {
		hc := htmlChart{
			Title:  c.Title,
			Unit:   c.YLabel,
			Labels: c.XLabels,
		}
		if images != nil {
			hc.Image = filepath.Base(images[i])
		}
		for _, s := range c.Series {
			row := htmlRow{Name: s.Name}
			for _, v := range s.Values {
				row.Values = append(row.Values, strconv.FormatFloat(v, 'g', 6, 64))
			}
			hc.Rows = append(hc.Rows, row)
		}
		rep.Charts = append(rep.Charts, hc)
	}
	return htmlTemplate.Execute(w, rep)
}
