// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fs provides destinations for report files.
package fs

import (
	"context"
	"io"
)

// An FS stores named report files.
type FS interface {
	// NewWriter returns a Writer for a file named name. The file is
	// not visible to readers until Close returns successfully.
	// metadata holds key-value pairs that may be attached to the
	// file by implementations that support it.
	NewWriter(ctx context.Context, name string, metadata map[string]string) (Writer, error)
}

// A Writer is a single file being written.
type Writer interface {
	io.Writer
	// CloseWithError aborts the write and discards anything
	// written so far.
	CloseWithError(error) error
	// Close commits the file.
	Close() error
}
