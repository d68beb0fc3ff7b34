package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/config"
)

// MinIOClient archives uploaded meeting audio
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string // Public URL for links handed out to clients (e.g., https://minio.example.com)
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}

	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}
	return client, nil
}

// ensureBucket creates the bucket when missing. The bucket stays private.
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// ObjectName builds the archive key for an upload received at ref
func ObjectName(ref time.Time, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "audio"
	}
	return fmt.Sprintf("meetings/%s/%s-%s", ref.UTC().Format("2006/01/02"), uuid.NewString(), base)
}

// ArchiveAudio stores the raw audio bytes and returns the object name
func (m *MinIOClient) ArchiveAudio(ctx context.Context, filename, contentType string, data []byte, ref time.Time) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectName := ObjectName(ref, filename)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}
	return objectName, nil
}

// GetFileURL gets a presigned URL for accessing an archived object
func (m *MinIOClient) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	// Swap the internal endpoint for the public one when running behind a proxy
	if m.publicURL != "" {
		return m.publicURL + u.RequestURI(), nil
	}
	return u.String(), nil
}

// Ping reports whether the bucket is reachable
func (m *MinIOClient) Ping(ctx context.Context) error {
	_, err := m.client.BucketExists(ctx, m.bucket)
	return err
}
