package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/spec-kit/docubuddy/internal/config"
)

// GCSStore is a Google Cloud Storage backed BlobStore.
type GCSStore struct {
	client *gcs.Client
	cfg    config.StorageConfig
	logger *zap.Logger
}

// NewGCSStore dials the storage client.
func NewGCSStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*GCSStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("dial storage: %w", err)
	}
	return &GCSStore{client: client, cfg: cfg, logger: logger}, nil
}

// Upload writes the contents under key and returns the stored path.
func (s *GCSStore) Upload(ctx context.Context, key string, contents io.Reader) (string, error) {
	writer := s.client.Bucket(s.cfg.Bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(writer, contents); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s: %w", key, err)
	}
	return key, nil
}

// Remove deletes the given objects. Missing objects are not an error; other
// failures are collected so one bad key does not hide the rest.
func (s *GCSStore) Remove(ctx context.Context, keys []string) error {
	var errs []error
	bucket := s.client.Bucket(s.cfg.Bucket)
	for _, key := range keys {
		err := bucket.Object(key).Delete(ctx)
		if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
			errs = append(errs, fmt.Errorf("delete object %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// EnsureBucket creates the documents bucket when it does not exist yet.
func (s *GCSStore) EnsureBucket(ctx context.Context) error {
	bucket := s.client.Bucket(s.cfg.Bucket)
	_, err := bucket.Attrs(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gcs.ErrBucketNotExist) {
		return fmt.Errorf("check bucket %s: %w", s.cfg.Bucket, err)
	}
	if s.cfg.ProjectID == "" {
		s.logger.Warn("bucket missing and no project configured; uploads will fail until it exists",
			zap.String("bucket", s.cfg.Bucket))
		return nil
	}
	if err := bucket.Create(ctx, s.cfg.ProjectID, &gcs.BucketAttrs{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.cfg.Bucket, err)
	}
	s.logger.Info("created storage bucket", zap.String("bucket", s.cfg.Bucket))
	return nil
}

// Close releases the underlying client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
