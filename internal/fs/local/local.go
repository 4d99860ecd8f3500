// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package local implements the fs.FS interface on a local directory.
package local

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/profcmp/internal/fs"
)

// impl is an fs.FS backed by a directory.
type impl struct {
	dir string
}

// NewFS returns an fs.FS rooted at dir. The directory is created on
// first use if it does not exist.
func NewFS(dir string) fs.FS {
	return &impl{dir}
}

// NewWriter creates name under the root directory. The contents are
// written to a temporary file in the same directory and renamed into
// place by Close, so an aborted write leaves no file behind. Metadata
// is ignored.
func (l *impl) NewWriter(ctx context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	path := filepath.Join(l.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, err
	}
	return &wrapper{f, path}, nil
}

type wrapper struct {
	*os.File
	path string
}

// CloseWithError closes and removes the temporary file.
func (w *wrapper) CloseWithError(error) error {
	err := w.File.Close()
	if rerr := os.Remove(w.File.Name()); err == nil {
		err = rerr
	}
	return err
}

// Close closes the temporary file and moves it to its final name,
// replacing any existing file.
func (w *wrapper) Close() error {
	if err := w.File.Close(); err != nil {
		os.Remove(w.File.Name())
		return err
	}
	if err := os.Chmod(w.File.Name(), 0644); err != nil {
		os.Remove(w.File.Name())
		return err
	}
	if err := os.Rename(w.File.Name(), w.path); err != nil {
		os.Remove(w.File.Name())
		return err
	}
	return nil
}
