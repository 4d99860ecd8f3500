// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders comparison tables as CSV, text, HTML and
// charts, and stores the rendered files.
package report

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/profcmp/internal/fs"
	"golang.org/x/profcmp/profcmp"
)

// ErrEmptyTable is returned when a table has no rows, so no header
// can be derived.
var ErrEmptyTable = errors.New("no benchmark memory records to report")

// An UnknownFieldError reports a row carrying a column that is not
// part of the report header.
type UnknownFieldError struct {
	API    string
	Column profcmp.Column
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: column %q not in header", e.API, e.Column)
}

// Header returns the columns of the first row of t.
func Header(t *profcmp.Table) ([]profcmp.Column, error) {
	if t.Len() == 0 {
		return nil, ErrEmptyTable
	}
	return t.Rows[0].Columns(), nil
}

// records returns the CSV records of t, header first. Every row must
// carry exactly the header's columns.
func records(t *profcmp.Table) ([][]string, error) {
	hdr, err := Header(t)
	if err != nil {
		return nil, err
	}
	inHeader := make(map[profcmp.Column]bool)
	rec := make([]string, 0, len(hdr))
	for _, c := range hdr {
		inHeader[c] = true
		rec = append(rec, c.String())
	}
	out := [][]string{rec}
	for _, row := range t.Rows {
		rec := make([]string, 0, len(hdr))
		for _, c := range hdr {
			v, ok := row.Value(c)
			if !ok {
				return nil, &profcmp.MissingFieldError{API: row.API, Column: c}
			}
			rec = append(rec, v)
		}
		for _, c := range row.Columns() {
			if !inHeader[c] {
				return nil, &UnknownFieldError{API: row.API, Column: c}
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// WriteCSV writes t to w as comma-separated values: a header row
// taken from the first row's columns, then one record per row.
// Records end in "\r\n". Nothing is written if any row does not
// match the header.
func WriteCSV(w io.Writer, t *profcmp.Table) error {
	recs, err := records(t)
	if err != nil {
		return err
	}
	o := csv.NewWriter(w)
	o.UseCRLF = true
	if err := o.WriteAll(recs); err != nil {
		return err
	}
	return o.Error()
}

// Save stores data as the file name in fsys.
func Save(ctx context.Context, fsys fs.FS, name string, data []byte, metadata map[string]string) error {
	w, err := fsys.NewWriter(ctx, name, metadata)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.CloseWithError(err)
		return err
	}
	return w.Close()
}
