// Package storage wraps the MinIO client for moving media files between the
// object store and local scratch space.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds object store connection settings
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Store is a bucket-scoped object store client
type Store struct {
	client *minio.Client
	bucket string
}

// New connects to the object store. The bucket must already exist.
func New(cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// Download fetches an object into a local file, creating parent directories
// as needed.
func (s *Store) Download(ctx context.Context, objectKey, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("creating local directory: %w", err)
	}

	object, err := s.client.GetObject(ctx, s.bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("getting object %s: %w", objectKey, err)
	}
	defer object.Close()

	localFile, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("creating local file: %w", err)
	}
	defer localFile.Close()

	if _, err := localFile.ReadFrom(object); err != nil {
		return fmt.Errorf("downloading object %s: %w", objectKey, err)
	}

	return nil
}

// Upload stores a local file under objectKey. The content type is derived
// from the key's extension when not given.
func (s *Store) Upload(ctx context.Context, localPath, objectKey, contentType string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening local file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stating local file: %w", err)
	}

	if contentType == "" {
		contentType = contentTypeFromExtension(objectKey)
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectKey, file, info.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("uploading object %s: %w", objectKey, err)
	}

	return nil
}

// HealthCheck verifies the bucket is reachable
func (s *Store) HealthCheck(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

func contentTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	case ".mkv":
		return "video/x-matroska"
	case ".mp3":
		return "audio/mpeg"
	case ".vtt":
		return "text/vtt"
	default:
		return "application/octet-stream"
	}
}
