// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"

	"golang.org/x/profcmp/profcmp"
)

const htmlText = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Profiling Result Comparison</title>
<style>
.profcmp { border-collapse: collapse; }
.profcmp th { text-align: left; border-bottom: 1px solid #666; padding: 0em 1em 0em 0em; }
.profcmp td { padding: 0em 1em 0em 0em; }
.profcmp td.num { text-align: right; }
.profcmp tr.slow td { font-weight: bold; color: #c00; }
</style>
</head>
<body>
<p>{{.Compared}} of {{.APIs}} APIs compared; {{.Unmatched}} without device record.
{{- if .HasRatio}} Time ratio min {{.Min}}, max {{.Max}}{{if .GeoMean}}, geomean {{.GeoMean}}{{end}}.{{end}}
Memory delta {{.MemoryDelta}}. Slowdown limit {{.Limit}}.</p>
<table class="profcmp">
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows -}}
{{if .Slow}}<tr class="slow">{{else}}<tr>{{end}}<td>{{.API}}</td>{{range .Cells}}<td class="num">{{.}}</td>{{end}}</tr>
{{end -}}
</table>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlText))

type htmlPage struct {
	APIs, Compared, Unmatched int
	HasRatio                  bool
	Min, Max, GeoMean, Limit  string
	MemoryDelta               string
	Header                    []string
	Rows                      []htmlRow
}

type htmlRow struct {
	API   string
	Cells []string
	Slow  bool
}

// WriteHTML writes t as a standalone HTML page, with the summary s
// above the table and the rows in s.Slowdowns highlighted.
func WriteHTML(w io.Writer, t *profcmp.Table, s *profcmp.Summary) error {
	recs, err := records(t)
	if err != nil {
		return err
	}
	slow := make(map[*profcmp.Row]bool)
	for _, row := range s.Slowdowns {
		slow[row] = true
	}
	page := &htmlPage{
		APIs:        s.APIs,
		Compared:    s.Compared,
		Unmatched:   s.Unmatched,
		HasRatio:    s.HasRatio,
		Limit:       fmtRatio(s.Limit),
		MemoryDelta: signedBytes(s.MemoryDelta),
		Header:      recs[0],
	}
	if s.HasRatio {
		page.Min, page.Max = fmtRatio(s.Min), fmtRatio(s.Max)
	}
	if s.HasGeoMean {
		page.GeoMean = fmtRatio(s.GeoMean)
	}
	for i, row := range t.Rows {
		rec := recs[i+1]
		page.Rows = append(page.Rows, htmlRow{API: rec[0], Cells: rec[1:], Slow: slow[row]})
	}
	return htmlTemplate.Execute(w, page)
}
