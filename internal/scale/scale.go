// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale formats byte counts and durations with SI or binary
// prefixes for human consumption.
package scale

import (
	"fmt"
	"math"
	"strconv"
)

// A Class specifies what class of unit prefixes are in use.
type Class int

const (
	// Decimal scales by powers of 1000 using SI prefixes.
	Decimal Class = iota
	// Binary scales by powers of 1024 using IEC prefixes.
	Binary
)

// A Scaler represents a scaling factor for a number and its
// scientific representation.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // Unit prefix ("k", "M", "Ki", etc)
}

// Format formats val and appends the unit prefix according to the
// given scale.
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Prefix...)
	return string(buf)
}

type factor struct {
	factor float64
	prefix string
	// Thresholds for 100.0, 10.00, 1.000.
	t100, t10, t1 float64
}

var siFactors = mkFactors(1000, []string{"T", "G", "M", "k", "", "m", "µ", "n"}, 4)
var iecFactors = mkFactors(1024, []string{"Ti", "Gi", "Mi", "Ki", ""}, 4)

// mkFactors builds the factor table for prefixes, largest first.
// prefixes[unit] is the empty prefix. The thresholds are taken from
// the printed representation so they match how printing rounds.
func mkFactors(base float64, prefixes []string, unit int) []factor {
	var factors []factor
	for i, p := range prefixes {
		f := math.Pow(base, float64(unit-i))
		t100, _ := strconv.ParseFloat(fmt.Sprintf("%.17g", 99.995*f), 64)
		t10, _ := strconv.ParseFloat(fmt.Sprintf("%.17g", 9.9995*f), 64)
		t1, _ := strconv.ParseFloat(fmt.Sprintf("%.17g", .99995*f), 64)
		factors = append(factors, factor{f, p, t100, t10, t1})
	}
	return factors
}

// Common returns a Scaler that shows at least three significant
// digits for every value in vals.
func Common(vals []float64, cls Class) Scaler {
	// The common scale is determined by the non-zero value
	// closest to zero.
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, ""}
	}

	factors := siFactors
	if cls == Binary {
		factors = iecFactors
	}
	for _, factor := range factors {
		switch {
		case min >= factor.t100:
			return Scaler{1, factor.factor, factor.prefix}
		case min >= factor.t10:
			return Scaler{2, factor.factor, factor.prefix}
		case min >= factor.t1:
			return Scaler{3, factor.factor, factor.prefix}
		}
	}

	// Smaller than the smallest factor: add digits until three
	// are significant.
	factor := factors[len(factors)-1]
	prec := 3
	for val := min / factor.factor; val < .99995 && prec < 10; val *= 10 {
		prec++
	}
	return Scaler{prec, factor.factor, factor.prefix}
}

// Bytes formats a byte count, such as "1.500KiB".
func Bytes(n float64) string {
	return Common([]float64{n}, Binary).Format(n) + "B"
}

// Micros formats a duration given in microseconds, such as "1.500ms".
func Micros(us float64) string {
	sec := us / 1e6
	return Common([]float64{sec}, Decimal).Format(sec) + "s"
}
