// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profcmp

import (
	"errors"
	"fmt"
)

// ErrDivideByZero is wrapped by a *ConversionError when an API's
// benchmark time is zero and no ratio can be formed.
var ErrDivideByZero = errors.New("division by zero")

// A MissingFieldError reports a row that lacks a column it needs:
// either a ratio whose benchmark time is absent, or a row that does
// not carry every column of the report header.
type MissingFieldError struct {
	API    string
	Column Column
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing %q", e.API, e.Column)
}

// A ConversionError reports a log value that could not be used as a
// number.
type ConversionError struct {
	API    string
	Column Column
	Value  string
	Err    error // typically a *strconv.NumError or ErrDivideByZero
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", e.API, e.Column, e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
