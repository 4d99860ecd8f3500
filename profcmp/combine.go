// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package profcmp joins the memory and time logs of a benchmark
// backend and a device backend into per-API comparison rows.
package profcmp

import (
	"strconv"
	"strings"

	"golang.org/x/profcmp/proflog"
)

// Report file names, relative to the output directory.
const (
	ResultBaseName = "prof_checking_result"
	ResultFileName = ResultBaseName + ".csv"
)

// Inputs holds the four parsed logs of a comparison. A nil log is
// treated as empty.
type Inputs struct {
	BenchMemory, BenchTime   *proflog.Log
	DeviceMemory, DeviceTime *proflog.Log
}

// Combine produces one row for each API in in.BenchMemory, in the
// order those APIs appear.
//
// Bench time is added when the API appears in the bench time log.
// Device memory and the memory delta are added when it appears in the
// device memory log, and device time and the time ratio when it
// additionally appears in the device time log. A ratio whose bench
// time is missing yields a *MissingFieldError. A value that is not a
// number yields a *ConversionError. Either error stops the
// comparison.
func Combine(in Inputs) (*Table, error) {
	t := &Table{Rows: make([]*Row, 0, in.BenchMemory.Len())}
	for _, api := range in.BenchMemory.Names() {
		benchMem, _ := in.BenchMemory.Lookup(api)
		row := &Row{API: api, BenchMemory: benchMem}
		row.BenchTime, row.HasBenchTime = in.BenchTime.Lookup(api)

		if devMem, ok := in.DeviceMemory.Lookup(api); ok {
			row.DeviceMemory, row.HasDeviceMemory = devMem, true
			if devTime, ok := in.DeviceTime.Lookup(api); ok {
				if !row.HasBenchTime {
					return nil, &MissingFieldError{API: api, Column: BenchTime}
				}
				ratio, err := timeRatio(api, row.BenchTime, devTime)
				if err != nil {
					return nil, err
				}
				row.DeviceTime, row.TimeRatio, row.HasDeviceTime = devTime, ratio, true
			}
			delta, err := memoryDelta(api, benchMem, devMem)
			if err != nil {
				return nil, err
			}
			row.MemoryDelta = delta
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// memoryDelta returns device - bench as integers. A difference that
// does not fit in an int64 is reported rather than wrapped.
func memoryDelta(api, bench, device string) (int64, error) {
	b, err := parseInt(api, BenchMemory, bench)
	if err != nil {
		return 0, err
	}
	d, err := parseInt(api, DeviceMemory, device)
	if err != nil {
		return 0, err
	}
	delta := d - b
	if (delta < d) != (b > 0) {
		return 0, &ConversionError{API: api, Column: MemoryDelta, Value: device, Err: strconv.ErrRange}
	}
	return delta, nil
}

// timeRatio returns device / bench as floats.
func timeRatio(api, bench, device string) (float64, error) {
	b, err := parseFloat(api, BenchTime, bench)
	if err != nil {
		return 0, err
	}
	d, err := parseFloat(api, DeviceTime, device)
	if err != nil {
		return 0, err
	}
	if b == 0 {
		return 0, &ConversionError{API: api, Column: BenchTime, Value: bench, Err: ErrDivideByZero}
	}
	return d / b, nil
}

func parseInt(api string, col Column, s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &ConversionError{API: api, Column: col, Value: s, Err: err}
	}
	return v, nil
}

func parseFloat(api string, col Column, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ConversionError{API: api, Column: col, Value: s, Err: err}
	}
	return v, nil
}
