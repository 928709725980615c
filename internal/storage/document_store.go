// Package storage provides blob storage for profile photos and agency license
// documents using gocloud.dev/blob.
package storage

import (
	"context"
	"fmt"

	"gocloud.dev/blob"

	// Register blob bucket drivers
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// DocumentStore defines the interface for storing uploaded documents.
type DocumentStore interface {
	// Save writes the document under the given key and returns the stored key.
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes the document stored under the given key.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying bucket resources.
	Close() error
}

// bucketDocumentStore implements DocumentStore on top of a gocloud.dev blob bucket.
type bucketDocumentStore struct {
	bucket *blob.Bucket
}

// NewDocumentStore opens the blob bucket identified by bucketURL.
// Supports: s3://, gs://, azblob://, file://, mem://
func NewDocumentStore(ctx context.Context, bucketURL string) (DocumentStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open document bucket: %w", err)
	}
	return &bucketDocumentStore{bucket: bucket}, nil
}

// Save writes the document to the bucket with the provided content type.
func (s *bucketDocumentStore) Save(
	ctx context.Context,
	key string,
	data []byte,
	contentType string,
) (string, error) {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return "", fmt.Errorf("failed to write document %q: %w", key, err)
	}
	return key, nil
}

// Delete removes the document from the bucket.
func (s *bucketDocumentStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete document %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying bucket resources.
func (s *bucketDocumentStore) Close() error {
	return s.bucket.Close()
}
