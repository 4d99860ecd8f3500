// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out fixed-width text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so callers can chain them to build up
// many cells at once.
type Table struct {
	rows [][]textCell
	cols int
}

type textCell struct {
	value     string
	alignment align
}

// A CellOption changes how a cell is laid out.
type CellOption func(c *textCell)

var (
	Left   CellOption = func(c *textCell) { c.alignment = alignLeft }
	Center CellOption = func(c *textCell) { c.alignment = alignCenter }
	Right  CellOption = func(c *textCell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case alignCenter:
		l := n / 2
		return strings.Repeat(" ", l) + s + strings.Repeat(" ", n-l)
	case alignRight:
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := textCell{value: value}
	for _, o := range opts {
		o(&c)
	}
	last := len(t.rows) - 1
	t.rows[last] = append(t.rows[last], c)
	if n := len(t.rows[last]); n > t.cols {
		t.cols = n
	}
	return t
}

// Format lays out table t and writes it to w. Columns are separated
// by two spaces and trailing spaces are trimmed.
func (t *Table) Format(w io.Writer) error {
	ws := make([]int, t.cols)
	for _, row := range t.rows {
		for col, cell := range row {
			if n := utf8.RuneCountInString(cell.value); n > ws[col] {
				ws[col] = n
			}
		}
	}

	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		for col, cell := range row {
			if col > 0 {
				line.WriteString("  ")
			}
			line.WriteString(cell.alignment.pad(cell.value, ws[col]))
		}
		if _, err := fmt.Fprintf(w, "%s\n", strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
