package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig holds the connection settings of an S3-compatible bucket
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore keeps uploads in a bucket under "<category>/<stored-name>" keys.
// Returned paths are the same as LocalStore's, so stored rows do not depend on the driver.
type MinioStore struct {
	client *minio.Client
	bucket string
	names  *namer
}

// NewMinioStore connects to the bucket, creating it when missing
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	found, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !found {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &MinioStore{client: client, bucket: cfg.Bucket, names: newNamer()}, nil
}

func objectKey(category Category, storedName string) string {
	return string(category) + "/" + storedName
}

// Save uploads content and returns its public path
func (s *MinioStore) Save(ctx context.Context, category Category, originalName string, content io.Reader, size int64, contentType string) (string, error) {
	if err := checkCategory(category); err != nil {
		return "", err
	}

	storedName, err := s.names.name(originalName)
	if err != nil {
		return "", err
	}

	if contentType == "" {
		contentType = contentTypeFor(storedName)
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectKey(category, storedName), content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", storedName, err)
	}

	return PublicPath(category, storedName), nil
}

// Open streams a stored object
func (s *MinioStore) Open(ctx context.Context, category Category, name string) (*Object, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	if base := cleanName(name); base == "" || base != name {
		return nil, ErrNotFound
	}

	obj, err := s.client.GetObject(ctx, s.bucket, objectKey(category, name), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", name, err)
	}

	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	return &Object{ReadCloser: obj, Size: info.Size, ContentType: info.ContentType}, nil
}
