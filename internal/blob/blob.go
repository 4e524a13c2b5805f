// Package blob publishes processed video artifacts to durable object
// storage and resolves retrievable URLs for them.
package blob

import (
	"context"
	"fmt"
)

// UploadError wraps any failure from the durable store
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload processed video: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Store accepts a local file's bytes and returns a retrievable URL
type Store interface {
	Publish(ctx context.Context, localPath, objectName string) (string, error)
}
