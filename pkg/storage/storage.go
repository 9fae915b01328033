// Package storage wraps the MinIO client used for media, thumbnails,
// previews, and avatar uploads.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/eduflow/eduflow-server/pkg/config"
)

// Bucket names for the different upload categories.
const (
	BucketMedia      = "media"
	BucketThumbnails = "thumbnails"
	BucketPreviews   = "previews"
	BucketAvatars    = "avatars"
)

// Buckets lists every bucket the application provisions at startup.
var Buckets = []string{BucketMedia, BucketThumbnails, BucketPreviews, BucketAvatars}

// IsValidBucket reports whether name is one of the provisioned buckets.
func IsValidBucket(name string) bool {
	for _, b := range Buckets {
		if b == name {
			return true
		}
	}
	return false
}

// Client provides object storage operations backed by MinIO.
type Client struct {
	minio     *minio.Client
	publicURL string
	logger    *slog.Logger
}

// New connects to the configured MinIO endpoint.
func New(cfg config.StorageConfig, logger *slog.Logger) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Client{
		minio:     mc,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    logger,
	}, nil
}

// EnsureBuckets creates any missing application buckets.
func (c *Client) EnsureBuckets(ctx context.Context) error {
	for _, bucket := range Buckets {
		exists, err := c.minio.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if exists {
			continue
		}
		if err := c.minio.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		c.logger.Info("created storage bucket", slog.String("bucket", bucket))
	}
	return nil
}

// ObjectName builds the stored object name for an upload: the uploader's
// id joined with the current epoch milliseconds, keeping the original
// file extension.
func ObjectName(userID string, originalName string, now time.Time) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%s-%d%s", userID, now.UnixMilli(), ext)
}

// OwnsObject reports whether the object name was produced for the
// given uploader. Stored names embed the uploader id as their prefix.
func OwnsObject(userID, objectName string) bool {
	return strings.HasPrefix(objectName, userID+"-")
}

// Upload stores an object and returns its public URL.
func (c *Client) Upload(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := c.minio.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	return c.URL(bucket, objectName), nil
}

// Delete removes an object from a bucket.
func (c *Client) Delete(ctx context.Context, bucket, objectName string) error {
	return c.minio.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{})
}

// URL returns the publicly reachable URL for a stored object.
func (c *Client) URL(bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicURL, bucket, objectName)
}
