// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profcmp

import (
	"fmt"
	"strconv"
)

// A Column identifies one field of a comparison row.
type Column int

// Columns in the order they are emitted.
const (
	APIName Column = iota
	BenchMemory
	BenchTime
	DeviceMemory
	DeviceTime
	TimeRatio
	MemoryDelta

	numColumns
)

var columnNames = [numColumns]string{
	APIName:      "API Name",
	BenchMemory:  "Bench Memory Used(B)",
	BenchTime:    "Bench Time(μs)",
	DeviceMemory: "Device Memory Used(B)",
	DeviceTime:   "Device Time(μs)",
	TimeRatio:    "Device/Bench Time Ratio",
	MemoryDelta:  "Device-Bench Memory",
}

// String returns the column's header text.
func (c Column) String() string {
	if c < 0 || c >= numColumns {
		return fmt.Sprintf("Column(%d)", int(c))
	}
	return columnNames[c]
}

// A Row is the comparison of one API across the four logs.
//
// API and BenchMemory are always set. The remaining fields are only
// meaningful when the corresponding Has flag is set:
// HasDeviceMemory covers DeviceMemory and MemoryDelta, and
// HasDeviceTime covers DeviceTime and TimeRatio.
type Row struct {
	API         string
	BenchMemory string

	BenchTime    string
	HasBenchTime bool

	DeviceMemory    string
	MemoryDelta     int64
	HasDeviceMemory bool

	DeviceTime    string
	TimeRatio     float64
	HasDeviceTime bool
}

// Columns returns the columns present in r, in emission order.
func (r *Row) Columns() []Column {
	cols := make([]Column, 0, numColumns)
	cols = append(cols, APIName, BenchMemory)
	if r.HasBenchTime {
		cols = append(cols, BenchTime)
	}
	if r.HasDeviceMemory {
		cols = append(cols, DeviceMemory)
		if r.HasDeviceTime {
			cols = append(cols, DeviceTime, TimeRatio)
		}
		cols = append(cols, MemoryDelta)
	}
	return cols
}

// Has reports whether column c is present in r.
func (r *Row) Has(c Column) bool {
	switch c {
	case APIName, BenchMemory:
		return true
	case BenchTime:
		return r.HasBenchTime
	case DeviceMemory, MemoryDelta:
		return r.HasDeviceMemory
	case DeviceTime, TimeRatio:
		return r.HasDeviceMemory && r.HasDeviceTime
	}
	return false
}

// Value returns the cell text of column c and whether c is present.
func (r *Row) Value(c Column) (string, bool) {
	if !r.Has(c) {
		return "", false
	}
	switch c {
	case APIName:
		return r.API, true
	case BenchMemory:
		return r.BenchMemory, true
	case BenchTime:
		return r.BenchTime, true
	case DeviceMemory:
		return r.DeviceMemory, true
	case DeviceTime:
		return r.DeviceTime, true
	case TimeRatio:
		return FormatRatio(r.TimeRatio), true
	case MemoryDelta:
		return strconv.FormatInt(r.MemoryDelta, 10), true
	}
	return "", false
}

// FormatRatio formats a time ratio using the shortest representation
// that parses back to the same value.
func FormatRatio(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// A Table is the sequence of comparison rows, in the order the APIs
// appear in the benchmark memory log.
type Table struct {
	Rows []*Row
}

// Len returns the number of rows in t.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
