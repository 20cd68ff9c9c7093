// Package storage resolves product image references to URLs.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/phenrril/bfguitars/internal/config"
)

// LocalImages serves images out of the static directory under a base path.
type LocalImages struct {
	base string
}

func NewLocalImages(base string) *LocalImages {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &LocalImages{base: base}
}

func (l *LocalImages) Resolve(_ context.Context, ref string) (string, error) {
	s := strings.TrimSpace(ref)
	if s == "" || isAbsolute(s) {
		return s, nil
	}
	return l.base + strings.ReplaceAll(strings.TrimPrefix(s, "/"), " ", "%20"), nil
}

type presigner interface {
	PresignedGetObject(ctx context.Context, bucket, object string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// MinioImages hands out short-lived signed URLs for objects in a bucket.
type MinioImages struct {
	client presigner
	bucket string
	ttl    time.Duration
}

func NewMinioImages(cfg config.Images) (*MinioImages, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	ttl := cfg.URLTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MinioImages{client: client, bucket: cfg.Bucket, ttl: ttl}, nil
}

func (m *MinioImages) Resolve(ctx context.Context, ref string) (string, error) {
	s := strings.TrimSpace(ref)
	if s == "" || isAbsolute(s) {
		return s, nil
	}
	u, err := m.client.PresignedGetObject(ctx, m.bucket, strings.TrimPrefix(s, "/"), m.ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", s, err)
	}
	return u.String(), nil
}

func isAbsolute(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
