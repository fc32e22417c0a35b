package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// BlobStore abstracts the object storage backing document uploads.
type BlobStore interface {
	Upload(ctx context.Context, key string, contents io.Reader) (string, error)
	Remove(ctx context.Context, keys []string) error
	EnsureBucket(ctx context.Context) error
}

// ObjectKey builds the storage key for one uploaded file. Collision
// resistance comes from the millisecond timestamp plus the original name;
// sub-millisecond concurrent uploads of identically named files can still
// collide, which matches the accepted granularity.
func ObjectKey(actorID, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%d_%s", actorID, now.UnixMilli(), filename)
}
