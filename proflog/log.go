// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proflog reads the per-API profiling logs written by the
// operator analysis tools.
//
// A log holds one record per line:
//
//	<api name>:\t<value>
//
// where value is a memory size in bytes (memory_analyze.log) or an
// elapsed time in microseconds (profile_analyze.log). Values are kept
// as the raw strings found in the log; interpreting them is left to
// the caller.
package proflog

// Names of the log files found in each backend's result directory.
const (
	MemoryLogName  = "memory_analyze.log"
	ProfileLogName = "profile_analyze.log"
)

// A Log maps API names to values, remembering the order in which
// names were first seen.
//
// The zero Log is empty and ready to use.
type Log struct {
	names  []string
	values map[string]string
}

// Set sets the value of name. If name is already present, its value
// is replaced but it keeps its original position.
func (l *Log) Set(name, value string) {
	if l.values == nil {
		l.values = make(map[string]string)
	}
	if _, ok := l.values[name]; !ok {
		l.names = append(l.names, name)
	}
	l.values[name] = value
}

// Lookup returns the value of name and whether it is present.
// Lookup may be called on a nil *Log.
func (l *Log) Lookup(name string) (string, bool) {
	if l == nil {
		return "", false
	}
	v, ok := l.values[name]
	return v, ok
}

// Has reports whether name is present in l.
func (l *Log) Has(name string) bool {
	_, ok := l.Lookup(name)
	return ok
}

// Names returns the API names in l in order of first appearance.
// The caller must not modify the returned slice.
func (l *Log) Names() []string {
	if l == nil {
		return nil
	}
	return l.names
}

// Len returns the number of distinct API names in l.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.names)
}
