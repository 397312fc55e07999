// Package blobstore writes transfer items to any bucket gocloud.dev can open
// by URL (s3://, gs://, file://, mem://).
package blobstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	"vimeomover/internal/models"
	"vimeomover/pkg/utils"
)

type Destination struct {
	url    string
	prefix string
	bucket *blob.Bucket
	owned  bool
}

// New returns a destination that opens bucketURL on Setup.
func New(bucketURL, prefix string) *Destination {
	return &Destination{url: bucketURL, prefix: strings.Trim(prefix, "/")}
}

// FromBucket wraps an already opened bucket. Close leaves it open.
func FromBucket(bucket *blob.Bucket, name, prefix string) *Destination {
	return &Destination{url: name, prefix: strings.Trim(prefix, "/"), bucket: bucket}
}

func (d *Destination) Name() string {
	if d.prefix == "" {
		return d.url
	}
	return strings.TrimSuffix(d.url, "/") + "/" + d.prefix
}

func (d *Destination) Setup(ctx context.Context) error {
	if d.bucket != nil {
		return nil
	}
	bkt, err := blob.OpenBucket(ctx, d.url)
	if err != nil {
		return fmt.Errorf("open bucket %s: %w", d.url, err)
	}
	d.bucket = bkt
	d.owned = true
	return nil
}

func (d *Destination) Key(fileName string) string {
	if d.prefix == "" {
		return fileName
	}
	return path.Join(d.prefix, fileName)
}

// Write copies r into the bucket. A failed copy aborts the writer so no
// partial object is committed.
func (d *Destination) Write(ctx context.Context, r io.Reader, item models.ResolvedItem) error {
	if d.bucket == nil {
		return fmt.Errorf("bucket %s is not open", d.url)
	}

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	key := d.Key(item.FileName)
	writer, err := d.bucket.NewWriter(wctx, key, &blob.WriterOptions{
		ContentType: utils.DetectContentType(item.FileName),
	})
	if err != nil {
		return fmt.Errorf("create writer: %w", err)
	}

	if _, err := io.Copy(writer, r); err != nil {
		cancel()
		writer.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	return nil
}

func (d *Destination) Close() error {
	if d.bucket == nil || !d.owned {
		return nil
	}
	err := d.bucket.Close()
	d.bucket = nil
	return err
}
