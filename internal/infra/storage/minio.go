// Package storage archives exported files in a MinIO (S3 compatible) bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
)

// Store implements analysis.Archive.
type Store struct {
	client     *minio.Client
	bucketName string
	region     string
	// PresignTTL > 0 returns presigned GET urls instead of plain object urls.
	PresignTTL time.Duration
}

// New buat koneksi MinIO
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	// pastikan bucket ada
	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	return &Store{client: cli, bucketName: bucket, region: region}, nil
}

// Put uploads f under key and returns where it can be fetched.
func (s *Store) Put(ctx context.Context, key string, f *analysis.File) (string, error) {
	contentType := f.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(f.Data), int64(len(f.Data)), minio.PutObjectOptions{
		ContentType:        contentType,
		ContentDisposition: attachment(f.Filename),
	})
	if err != nil {
		return "", fmt.Errorf("minio put %s: %w", key, err)
	}

	if s.PresignTTL > 0 {
		u, err := s.client.PresignedGetObject(ctx, s.bucketName, key, s.PresignTTL, url.Values{})
		if err != nil {
			return "", fmt.Errorf("minio presign %s: %w", key, err)
		}
		return u.String(), nil
	}
	// URL publik (jika bucket public)
	return objectURL(s.client.EndpointURL(), s.bucketName, key), nil
}

// Ping checks the bucket is reachable.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucketName)
	return err
}

func objectURL(endpoint *url.URL, bucket, key string) string {
	scheme := endpoint.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint.Host, bucket, key)
}

func attachment(filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("attachment; filename=%q", filename)
}
