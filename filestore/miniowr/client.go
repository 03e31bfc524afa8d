// Package miniowr provides a MinIO implementation of the filestore.FileStore interface.
package miniowr

import (
	"bytes"
	"context"
	"io"

	"github.com/avast/retry-go/v4"
	"github.com/code19m/errx"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/rise-and-shine/iconreg/filestore"
)

const (
	codeNoSuchKey = "NoSuchKey"

	uploadAttempts = 3
)

// Client implements the filestore.FileStore interface using MinIO.
type Client struct {
	client *minio.Client
	bucket string
}

var _ filestore.FileStore = (*Client)(nil)

// New creates a new MinIO filestore client.
func New(cfg Config) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &Client{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Upload stores a byte buffer under the given key with the declared content
// type. Transient failures are retried a few times before giving up.
func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	err := retry.Do(
		func() error {
			_, putErr := c.client.PutObject(
				ctx, c.bucket, key,
				bytes.NewReader(data), int64(len(data)),
				minio.PutObjectOptions{ContentType: contentType},
			)
			return putErr
		},
		retry.Attempts(uploadAttempts),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return errx.Wrap(err, errx.WithCode(filestore.CodeStorageError))
	}
	return nil
}

// Get retrieves the object stored under the given key.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errx.Wrap(err, errx.WithCode(filestore.CodeStorageError))
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, c.wrapMinioError(err)
	}

	return data, nil
}

// Delete removes the object stored under the given key.
func (c *Client) Delete(ctx context.Context, key string) error {
	err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return c.wrapMinioError(err)
	}
	return nil
}

// wrapMinioError converts MinIO errors to filestore error codes.
func (c *Client) wrapMinioError(err error) error {
	errResp := minio.ToErrorResponse(err)
	if errResp.Code == codeNoSuchKey {
		return errx.New(
			"object not found",
			errx.WithCode(filestore.CodeObjectNotFound),
			errx.WithType(errx.T_NotFound),
		)
	}
	return errx.Wrap(err, errx.WithCode(filestore.CodeStorageError))
}
