// Package miniostore is a backend.ObjectStore on an S3-compatible bucket via minio-go.
package miniostore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"storefront_backend/internal/platform/backend"
)

// ErrObjectExists is returned by Upload without upsert when the path is taken.
var ErrObjectExists = errors.New("object already exists")

// Config holds the S3 endpoint and bucket settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	// PublicBaseURL prefixes public object URLs; defaults to the endpoint.
	PublicBaseURL string
}

// LoadConfig reads the MINIO_* environment variables.
func LoadConfig() Config {
	return Config{
		Endpoint:      os.Getenv("MINIO_ENDPOINT"),
		AccessKey:     os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey:     os.Getenv("MINIO_SECRET_KEY"),
		UseSSL:        os.Getenv("MINIO_USE_SSL") == "true",
		Bucket:        os.Getenv("STORAGE_BUCKET"),
		PublicBaseURL: os.Getenv("MINIO_PUBLIC_URL"),
	}
}

// objectAPI is the subset of *minio.Client the store needs.
type objectAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// Store implements backend.ObjectStore on one bucket.
type Store struct {
	api     objectAPI
	bucket  string
	baseURL string
}

var _ backend.ObjectStore = (*Store)(nil)

// New connects to the endpoint and makes sure the bucket exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		slog.Info("created storage bucket", "bucket", cfg.Bucket)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = client.EndpointURL().String()
	}
	return newStore(client, cfg.Bucket, base), nil
}

func newStore(api objectAPI, bucket, baseURL string) *Store {
	return &Store{api: api, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *Store) Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string, upsert bool) error {
	if !upsert {
		_, err := s.api.StatObject(ctx, s.bucket, path, minio.StatObjectOptions{})
		if err == nil {
			return ErrObjectExists
		}
		if minio.ToErrorResponse(err).Code != "NoSuchKey" {
			return fmt.Errorf("stat object: %w", err)
		}
	}
	if size <= 0 {
		size = -1
	}
	_, err := s.api.PutObject(ctx, s.bucket, path, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

// Remove deletes each path; missing objects are not an error in S3.
func (s *Store) Remove(ctx context.Context, paths ...string) error {
	for _, p := range paths {
		if err := s.api.RemoveObject(ctx, s.bucket, p, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove object %s: %w", p, err)
		}
	}
	return nil
}

func (s *Store) PublicURL(path string) string {
	return s.baseURL + "/" + s.bucket + "/" + strings.TrimLeft(path, "/")
}
