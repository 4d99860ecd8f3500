// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/profcmp/internal/scale"
	"golang.org/x/profcmp/internal/texttab"
	"golang.org/x/profcmp/profcmp"
)

// WriteText writes a human-readable summary of t to w: overall
// counts, time ratio statistics, and a table of the APIs that are
// slower on the device than s.Limit allows.
func WriteText(w io.Writer, t *profcmp.Table, s *profcmp.Summary) error {
	if t.Len() == 0 {
		return ErrEmptyTable
	}
	var b strings.Builder
	fmt.Fprintf(&b, "APIs: %d, compared: %d, without device record: %d\n", s.APIs, s.Compared, s.Unmatched)
	if s.HasRatio {
		fmt.Fprintf(&b, "time ratio: min %s, max %s", fmtRatio(s.Min), fmtRatio(s.Max))
		if s.HasGeoMean {
			fmt.Fprintf(&b, ", geomean %s", fmtRatio(s.GeoMean))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "memory delta: %s\n", signedBytes(s.MemoryDelta))
	for _, warn := range s.Warnings {
		fmt.Fprintf(&b, "warning: %v\n", warn)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	if len(s.Slowdowns) == 0 {
		_, err := fmt.Fprintf(w, "all APIs within time ratio %s (threshold %g)\n", fmtRatio(s.Limit), s.Threshold)
		return err
	}
	if _, err := fmt.Fprintf(w, "\n%d APIs exceed time ratio %s (threshold %g):\n", len(s.Slowdowns), fmtRatio(s.Limit), s.Threshold); err != nil {
		return err
	}
	var tab texttab.Table
	tab.Row().Cell("API").Cell("bench", texttab.Right).Cell("device", texttab.Right).Cell("ratio", texttab.Right).Cell("memory", texttab.Right)
	for _, row := range s.Slowdowns {
		tab.Row().Cell(row.API).
			Cell(micros(row.BenchTime), texttab.Right).
			Cell(micros(row.DeviceTime), texttab.Right).
			Cell(fmtRatio(row.TimeRatio), texttab.Right).
			Cell(signedBytes(row.MemoryDelta), texttab.Right)
	}
	return tab.Format(w)
}

func fmtRatio(x float64) string {
	return strconv.FormatFloat(x, 'f', 3, 64)
}

// micros formats a raw time value, falling back to the raw text if
// it is not a number.
func micros(v string) string {
	x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return v
	}
	return scale.Micros(x)
}

func signedBytes(n int64) string {
	s := scale.Bytes(float64(n))
	if n > 0 {
		s = "+" + s
	}
	return s
}
