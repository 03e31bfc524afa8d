// Package filestore provides an abstraction for binary object storage.
//
// It defines a FileStore interface that can be implemented by various storage
// backends (e.g., MinIO, S3, local filesystem). The interface is designed to
// be injected into components that persist and serve favicon binaries.
package filestore

import "context"

// FileStore defines the interface for object storage operations.
// Implementations must be safe for concurrent use.
type FileStore interface {
	// Upload stores a byte buffer under the given key with the declared
	// content type.
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// Get retrieves the object stored under the given key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object stored under the given key.
	Delete(ctx context.Context, key string) error
}
