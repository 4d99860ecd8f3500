// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profcmp

import (
	"fmt"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// DefaultTimeRatio is the default threshold for bench time / device
// time. An API meets the standard when its benchmark time is at least
// this fraction of its device time.
const DefaultTimeRatio = 0.95

// A Summary gives aggregate statistics over a Table.
type Summary struct {
	// Threshold is the bench/device time threshold the summary was
	// computed with, and Limit = 1/Threshold is the corresponding
	// upper bound on the device/bench TimeRatio.
	Threshold, Limit float64

	// APIs is the number of rows. Compared is the number of rows
	// with a time ratio. Unmatched is the number of rows with no
	// device memory record.
	APIs, Compared, Unmatched int

	// Min and Max bound the time ratios if HasRatio is set.
	// GeoMean is their geometric mean if HasGeoMean is set.
	Min, Max   float64
	HasRatio   bool
	GeoMean    float64
	HasGeoMean bool

	// MemoryDelta is the sum of the memory deltas of all rows.
	MemoryDelta int64

	// Slowdowns lists the rows whose time ratio exceeds Limit,
	// slowest first.
	Slowdowns []*Row

	// Warnings explains statistics that could not be computed.
	Warnings []error
}

// Summarize computes a Summary of t. If threshold is not positive,
// DefaultTimeRatio is used.
func Summarize(t *Table, threshold float64) *Summary {
	if threshold <= 0 {
		threshold = DefaultTimeRatio
	}
	s := &Summary{Threshold: threshold, Limit: 1 / threshold}
	if t == nil {
		return s
	}

	var ratios []float64
	positive := true
	for _, row := range t.Rows {
		s.APIs++
		if !row.HasDeviceMemory {
			s.Unmatched++
			continue
		}
		s.MemoryDelta += row.MemoryDelta
		if !row.HasDeviceTime {
			continue
		}
		s.Compared++
		ratios = append(ratios, row.TimeRatio)
		if !(row.TimeRatio > 0) {
			positive = false
		}
		if row.TimeRatio > s.Limit {
			s.Slowdowns = append(s.Slowdowns, row)
		}
	}
	sort.SliceStable(s.Slowdowns, func(i, j int) bool {
		return s.Slowdowns[i].TimeRatio > s.Slowdowns[j].TimeRatio
	})

	if len(ratios) == 0 {
		return s
	}
	s.Min, s.Max = stats.Bounds(ratios)
	s.HasRatio = true
	if positive {
		s.GeoMean = stats.GeoMean(ratios)
		s.HasGeoMean = true
	} else {
		s.Warnings = append(s.Warnings, fmt.Errorf("ratios must be >0 to compute geomean"))
	}
	return s
}
