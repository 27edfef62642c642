package storage

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/fhuszti/imgbatch/internal/config"
	"github.com/fhuszti/imgbatch/internal/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioSink stores generated images as objects under {prefix}{key}.
type MinioSink struct {
	client     minioClient
	bucketName string
	prefix     string
}

// compile-time check: *MinioSink must satisfy port.OutputSink
var _ port.OutputSink = (*MinioSink)(nil)

// NewMinioSink connects to MinIO and makes sure the bucket exists.
func NewMinioSink(ctx context.Context, cfg config.MinioSettings) (*MinioSink, error) {
	log.Println("initialising minio client...")
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return withBucket(ctx, client, cfg.Bucket, cfg.Prefix)
}

func withBucket(ctx context.Context, client minioClient, bucket, prefix string) (*MinioSink, error) {
	ok, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, mapMinioErr(err)
	}
	if !ok {
		log.Printf("bucket %q does not exist, creating it...", bucket)
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, mapMinioErr(err)
		}
	}
	return &MinioSink{client: client, bucketName: bucket, prefix: prefix}, nil
}

func (s *MinioSink) objectName(key string) string {
	return s.prefix + key
}

// Save uploads reader; a negative size makes the client stream in parts.
func (s *MinioSink) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	name := s.objectName(key)
	log.Printf("saving file %q into bucket %q...", name, s.bucketName)

	putOpts := minio.PutObjectOptions{}
	if contentType != "" {
		putOpts.ContentType = contentType
	}
	if _, err := s.client.PutObject(ctx, s.bucketName, name, reader, size, putOpts); err != nil {
		return "", mapMinioErr(err)
	}
	return s.bucketName + "/" + name, nil
}

func (s *MinioSink) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucketName, s.objectName(key), minio.StatObjectOptions{})
	if errors.Is(mapMinioErr(err), ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, mapMinioErr(err)
	}
	return true, nil
}
