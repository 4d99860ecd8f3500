// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profcmp

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/profcmp/proflog"
)

// mkLog builds a log from alternating names and values.
func mkLog(kv ...string) *proflog.Log {
	l := new(proflog.Log)
	for i := 0; i < len(kv); i += 2 {
		l.Set(kv[i], kv[i+1])
	}
	return l
}

func TestCombineFull(t *testing.T) {
	tab, err := Combine(Inputs{
		BenchMemory:  mkLog("opA", "100"),
		BenchTime:    mkLog("opA", "2.0"),
		DeviceMemory: mkLog("opA", "150"),
		DeviceTime:   mkLog("opA", "1.0"),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []*Row{{
		API: "opA", BenchMemory: "100",
		BenchTime: "2.0", HasBenchTime: true,
		DeviceMemory: "150", MemoryDelta: 50, HasDeviceMemory: true,
		DeviceTime: "1.0", TimeRatio: 0.5, HasDeviceTime: true,
	}}
	if diff := cmp.Diff(want, tab.Rows); diff != "" {
		t.Fatalf("rows differ (-want +got):\n%s", diff)
	}

	var cells []string
	for _, c := range tab.Rows[0].Columns() {
		v, _ := tab.Rows[0].Value(c)
		cells = append(cells, c.String()+"="+v)
	}
	wantCells := []string{
		"API Name=opA",
		"Bench Memory Used(B)=100",
		"Bench Time(μs)=2.0",
		"Device Memory Used(B)=150",
		"Device Time(μs)=1.0",
		"Device/Bench Time Ratio=0.5",
		"Device-Bench Memory=50",
	}
	if diff := cmp.Diff(wantCells, cells); diff != "" {
		t.Errorf("cells differ (-want +got):\n%s", diff)
	}
}

func TestCombineRowShapes(t *testing.T) {
	in := Inputs{
		BenchMemory:  mkLog("both", "10", "memOnly", "20", "benchOnly", "30", "noTime", "40"),
		BenchTime:    mkLog("both", "4", "memOnly", "5", "benchOnly", "6"),
		DeviceMemory: mkLog("both", "8", "memOnly", "25", "noTime", "41", "deviceOnly", "1"),
		DeviceTime:   mkLog("both", "2", "deviceOnly", "1"),
	}
	tab, err := Combine(in)
	if err != nil {
		t.Fatal(err)
	}
	got := map[string][]Column{}
	var order []string
	for _, row := range tab.Rows {
		order = append(order, row.API)
		got[row.API] = row.Columns()
	}
	if diff := cmp.Diff([]string{"both", "memOnly", "benchOnly", "noTime"}, order); diff != "" {
		t.Errorf("row order differs (-want +got):\n%s", diff)
	}
	want := map[string][]Column{
		"both":      {APIName, BenchMemory, BenchTime, DeviceMemory, DeviceTime, TimeRatio, MemoryDelta},
		"memOnly":   {APIName, BenchMemory, BenchTime, DeviceMemory, MemoryDelta},
		"benchOnly": {APIName, BenchMemory, BenchTime},
		"noTime":    {APIName, BenchMemory, DeviceMemory, MemoryDelta},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("columns differ (-want +got):\n%s", diff)
	}
	if d := tab.Rows[0].MemoryDelta; d != -2 {
		t.Errorf("both delta = %d, want -2", d)
	}
	if _, ok := tab.Rows[2].Value(MemoryDelta); ok {
		t.Errorf("benchOnly has a memory delta")
	}
}

func TestCombineEmpty(t *testing.T) {
	tab, err := Combine(Inputs{DeviceMemory: mkLog("a", "1")})
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 0 {
		t.Errorf("got %d rows, want 0", tab.Len())
	}
}

func TestMemoryDelta(t *testing.T) {
	for _, test := range []struct{ bench, device string }{
		{"0", "0"},
		{"100", "150"},
		{"150", "100"},
		{"-5", "7"},
		{" 1024 ", "512"},
		{"9223372036854775807", "9223372036854775807"},
		{"-1", "9223372036854775806"},
		{"-9223372036854775808", "-1"},
		{"1", "-9223372036854775807"},
	} {
		tab, err := Combine(Inputs{
			BenchMemory:  mkLog("op", test.bench),
			DeviceMemory: mkLog("op", test.device),
		})
		if err != nil {
			t.Errorf("%s vs %s: %v", test.bench, test.device, err)
			continue
		}
		b, _ := strconv.ParseInt(strings.TrimSpace(test.bench), 10, 64)
		d, _ := strconv.ParseInt(strings.TrimSpace(test.device), 10, 64)
		if got, want := tab.Rows[0].MemoryDelta, d-b; got != want {
			t.Errorf("%s vs %s: delta %d, want %d", test.bench, test.device, got, want)
		}
	}
}

func TestTimeRatio(t *testing.T) {
	for _, test := range []struct {
		bench, device string
		want          string
	}{
		{"2.0", "1.0", "0.5"},
		{"3", "1", "0.3333333333333333"},
		{"4", "4", "1"},
		{"1e-3", "2e-3", "2"},
		{"0.5", "1.25", "2.5"},
	} {
		tab, err := Combine(Inputs{
			BenchMemory:  mkLog("op", "1"),
			BenchTime:    mkLog("op", test.bench),
			DeviceMemory: mkLog("op", "1"),
			DeviceTime:   mkLog("op", test.device),
		})
		if err != nil {
			t.Errorf("%s vs %s: %v", test.bench, test.device, err)
			continue
		}
		if got, _ := tab.Rows[0].Value(TimeRatio); got != test.want {
			t.Errorf("%s vs %s: ratio %s, want %s", test.bench, test.device, got, test.want)
		}
	}
}

func TestCombineErrors(t *testing.T) {
	for _, test := range []struct {
		name   string
		in     Inputs
		col    Column
		numErr   bool
		zero     bool
		overflow bool
	}{
		{
			name: "ratio without bench time",
			in: Inputs{
				BenchMemory:  mkLog("op", "1"),
				DeviceMemory: mkLog("op", "1"),
				DeviceTime:   mkLog("op", "1.0"),
			},
			col: BenchTime,
		},
		{
			name: "bad bench memory",
			in: Inputs{
				BenchMemory:  mkLog("op", "lots"),
				DeviceMemory: mkLog("op", "1"),
			},
			col: BenchMemory, numErr: true,
		},
		{
			name: "float device memory",
			in: Inputs{
				BenchMemory:  mkLog("op", "1"),
				DeviceMemory: mkLog("op", "1.5"),
			},
			col: DeviceMemory, numErr: true,
		},
		{
			name: "bad device time",
			in: Inputs{
				BenchMemory:  mkLog("op", "1"),
				BenchTime:    mkLog("op", "1.0"),
				DeviceMemory: mkLog("op", "1"),
				DeviceTime:   mkLog("op", "fast"),
			},
			col: DeviceTime, numErr: true,
		},
		{
			name: "zero bench time",
			in: Inputs{
				BenchMemory:  mkLog("op", "1"),
				BenchTime:    mkLog("op", "0"),
				DeviceMemory: mkLog("op", "1"),
				DeviceTime:   mkLog("op", "1"),
			},
			col: BenchTime, zero: true,
		},
		{
			name: "delta above int64",
			in: Inputs{
				BenchMemory:  mkLog("op", "-9223372036854775808"),
				DeviceMemory: mkLog("op", "9223372036854775807"),
			},
			col: MemoryDelta, overflow: true,
		},
		{
			name: "delta below int64",
			in: Inputs{
				BenchMemory:  mkLog("op", "2"),
				DeviceMemory: mkLog("op", "-9223372036854775807"),
			},
			col: MemoryDelta, overflow: true,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			tab, err := Combine(test.in)
			if err == nil {
				t.Fatalf("want error, got %d rows", tab.Len())
			}
			var mfe *MissingFieldError
			var ce *ConversionError
			switch {
			case errors.As(err, &mfe):
				if test.numErr || test.zero || test.overflow {
					t.Fatalf("got %v, want a conversion error", err)
				}
				if mfe.Column != test.col || mfe.API != "op" {
					t.Errorf("got %+v, want column %v", mfe, test.col)
				}
			case errors.As(err, &ce):
				if !test.numErr && !test.zero && !test.overflow {
					t.Fatalf("got %v, want a missing field error", err)
				}
				if ce.Column != test.col {
					t.Errorf("column = %v, want %v", ce.Column, test.col)
				}
				var ne *strconv.NumError
				if test.numErr && !errors.As(err, &ne) {
					t.Errorf("%v does not wrap a *strconv.NumError", err)
				}
				if test.zero && !errors.Is(err, ErrDivideByZero) {
					t.Errorf("%v does not wrap ErrDivideByZero", err)
				}
				if test.overflow && !errors.Is(err, strconv.ErrRange) {
					t.Errorf("%v does not wrap strconv.ErrRange", err)
				}
			default:
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
		})
	}
}

func TestColumnString(t *testing.T) {
	if got := TimeRatio.String(); got != "Device/Bench Time Ratio" {
		t.Errorf("TimeRatio = %q", got)
	}
	if got := Column(99).String(); got != "Column(99)" {
		t.Errorf("Column(99) = %q", got)
	}
}
