package blob

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const videoContentType = "video/mp4"

// Config holds object storage connection configuration
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// MinioStore publishes artifacts to an S3-compatible object store
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
	logger  *slog.Logger
}

// NewMinioStore connects to the object store and ensures the bucket exists
func NewMinioStore(ctx context.Context, config *Config, logger *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	exists, err := client.BucketExists(ctx, config.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("Created blob bucket",
			slog.String("bucket", config.Bucket),
		)
	}

	baseURL := config.PublicBaseURL
	if baseURL == "" {
		scheme := "http"
		if config.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, config.Endpoint)
	}

	return &MinioStore{
		client:  client,
		bucket:  config.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Publish reads the whole file into memory, stores it as a video object,
// and returns the retrievable URL. Output files are small enough at this
// scale that a single-shot upload is fine.
func (s *MinioStore) Publish(ctx context.Context, localPath, objectName string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", &UploadError{Err: fmt.Errorf("failed to read output file: %w", err)}
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: videoContentType},
	)
	if err != nil {
		return "", &UploadError{Err: err}
	}

	url := fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName)

	s.logger.Info("Processed video published",
		slog.String("object", objectName),
		slog.Int("size_bytes", len(data)),
	)

	return url, nil
}
