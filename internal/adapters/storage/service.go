// Package storage wraps S3-compatible object storage for generated documents.
package storage

import (
	"context"
	"io"
	"time"
)

// PresignedURL is a time-limited download link for a stored object.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StorageService defines the object storage operations the application uses.
type StorageService interface {
	// UploadFile stores the reader under folder with a unique suffix on the
	// file name and returns the full key.
	UploadFile(ctx context.Context, bucket, folder, fileName, contentType string, reader io.Reader, size int64) (string, error)

	// GenerateDownloadURL creates a presigned GET link for fileKey.
	GenerateDownloadURL(ctx context.Context, bucket, fileKey string) (*PresignedURL, error)

	// EnsureBucketExists creates the bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context, bucket string) error
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetExportLinkTTL() time.Duration
	IsMinIOEnabled() bool
}
