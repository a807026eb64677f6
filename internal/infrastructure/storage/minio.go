package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vidtube/user-service/internal/api/metrics"
	"github.com/vidtube/user-service/internal/core/ports"
)

// Config captures the settings for the MinIO-backed media store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL is the externally reachable prefix for uploaded objects,
	// e.g. "https://media.example.com". Defaults to the endpoint scheme+host.
	PublicBaseURL string
}

// MinioUploader implements ports.MediaUploader against a MinIO (or any
// S3-compatible) backend.
type MinioUploader struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioUploader constructs a MinioUploader from config.
func NewMinioUploader(cfg Config) (*MinioUploader, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("media endpoint is required")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("media access key and secret key are required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("media bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}

	return &MinioUploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// EnsureBucket ensures the configured bucket exists.
func (m *MinioUploader) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
}

// Upload streams the file into the bucket under a random key and returns its
// public URL.
func (m *MinioUploader) Upload(ctx context.Context, file *ports.FileUpload) (string, error) {
	key := uuid.NewString() + strings.ToLower(path.Ext(file.Filename))

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.bucket, key, file.Content, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		metrics.MediaUploadsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("put object: %w", err)
	}

	metrics.MediaUploadsTotal.WithLabelValues("success").Inc()
	return fmt.Sprintf("%s/%s/%s", m.baseURL, m.bucket, key), nil
}
