// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proflog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
)

// A Reader reads a profiling log one record at a time.
//
// Its API is modeled on bufio.Scanner. To construct a new Reader,
// call NewReader.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int
	err      error // current I/O error

	// unterminated is set when the last token read had no newline.
	unterminated bool

	cur Record
}

// A Record is a single record read from a log. It is either an
// *Entry or a *SyntaxError.
type Record interface {
	// Pos returns the file name and 1-based line number of this
	// record.
	Pos() (fileName string, line int)
}

var _ Record = (*Entry)(nil)
var _ Record = (*SyntaxError)(nil)

// An Entry is one successfully parsed line of a log.
type Entry struct {
	Name  string
	Value string

	fileName string
	line     int
}

func (e *Entry) Pos() (fileName string, line int) {
	return e.fileName, e.line
}

// A SyntaxError reports a line that does not have the form
// "name:\tvalue". Syntax errors are not fatal: the line is skipped
// and reading continues.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

var noRecord = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// lineRE matches one log line with its terminator removed. The name
// is the shortest prefix followed by optional white space, a colon
// and a tab. White space includes the Unicode space separators as
// well as the ASCII controls \v, \x1c-\x1f and \x85.
var lineRE = regexp.MustCompile(`^(.*?)[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]*:\t(.*)$`)

// maxLine bounds the length of a single log line.
const maxLine = 1 << 20

// NewReader constructs a reader to parse a profiling log from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	rd := &Reader{fileName: fileName}
	rd.s = bufio.NewScanner(r)
	rd.s.Buffer(nil, maxLine)
	rd.s.Split(rd.scanLines)
	return rd
}

// scanLines is bufio.ScanLines, but it records whether the token it
// returns was terminated by a newline.
func (r *Reader) scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	advance, token, err = bufio.ScanLines(data, atEOF)
	if token != nil {
		r.unterminated = advance == 0 || data[advance-1] != '\n'
	}
	return advance, token, err
}

// Scan advances the reader to the next record and reports whether a
// record was read. The caller should use the Result method to get the
// record. If Scan reaches EOF or an I/O error occurs, it returns
// false, in which case the caller should use the Err method to check
// for errors.
//
// Every record line must end in a newline. A final line without one
// is reported as a *SyntaxError.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line+1, err)
		}
		r.cur = nil
		return false
	}
	r.line++
	m := lineRE.FindStringSubmatch(r.s.Text())
	if m == nil || r.unterminated {
		r.cur = &SyntaxError{r.fileName, r.line, "log line format invalid"}
		return true
	}
	r.cur = &Entry{Name: m[1], Value: m[2], fileName: r.fileName, line: r.line}
	return true
}

// Result returns the record that was just read by Scan. This is
// either an *Entry or a *SyntaxError.
func (r *Reader) Result() Record {
	if r.cur == nil {
		return noRecord
	}
	return r.cur
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}

// Parse reads all of r into a Log. Lines that cannot be parsed are
// skipped and returned as syntax errors. The error result is non-nil
// only if reading r failed.
func Parse(r io.Reader, fileName string) (*Log, []*SyntaxError, error) {
	var (
		l    = new(Log)
		errs []*SyntaxError
	)
	rd := NewReader(r, fileName)
	for rd.Scan() {
		switch rec := rd.Result().(type) {
		case *Entry:
			l.Set(rec.Name, rec.Value)
		case *SyntaxError:
			errs = append(errs, rec)
		}
	}
	if err := rd.Err(); err != nil {
		return nil, errs, err
	}
	return l, errs, nil
}

// ReadFile parses the log file at path. The file is closed before
// ReadFile returns.
func ReadFile(path string) (*Log, []*SyntaxError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Parse(f, path)
}
