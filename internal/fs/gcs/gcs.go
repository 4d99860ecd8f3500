// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcs implements the fs.FS interface using Google Cloud Storage.
package gcs

import (
	"context"
	"fmt"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"golang.org/x/profcmp/internal/fs"
)

// impl is an fs.FS backed by a prefix of a GCS bucket.
type impl struct {
	bucket *storage.BucketHandle
	prefix string
}

// NewFS constructs an FS that writes objects named prefix/name to
// bucket. opts are passed to storage.NewClient.
func NewFS(ctx context.Context, bucketName, prefix string, opts ...option.ClientOption) (fs.FS, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &impl{client.Bucket(bucketName), prefix}, nil
}

// ParseURL splits a URL of the form gs://bucket/prefix into its bucket
// and object prefix. The prefix may be empty.
func ParseURL(u string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(u, "gs://")
	if !ok {
		return "", "", fmt.Errorf("%q: not a gs:// URL", u)
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%q: missing bucket name", u)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// NewWriter starts an upload of the object prefix/name. metadata is
// attached to the object.
func (g *impl) NewWriter(ctx context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	ctx, cancel := context.WithCancel(ctx)
	w := g.bucket.Object(path.Join(g.prefix, name)).NewWriter(ctx)
	w.Metadata = metadata
	w.ContentType = contentType(name)
	return &wrapper{w, cancel}, nil
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	case ".png":
		return "image/png"
	case ".txt":
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}

type wrapper struct {
	*storage.Writer
	cancel context.CancelFunc
}

// CloseWithError cancels the upload. The object is not created.
func (w *wrapper) CloseWithError(error) error {
	w.cancel()
	w.Writer.Close()
	return nil
}

func (w *wrapper) Close() error {
	defer w.cancel()
	return w.Writer.Close()
}
