// Package assets mirrors static conference assets (sponsor logos, venue
// maps) from the conference bucket into a local directory so they render
// offline. Asset failures are never fatal; the app degrades to text.
package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/confsync/internal/logging"
)

// maxAge is how long a downloaded asset is considered fresh. Conference
// assets change rarely; a day keeps venue traffic minimal.
const maxAge = 24 * time.Hour

// Config describes the bucket and the local mirror directory.
type Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Dir       string
}

// Cache downloads objects on demand and keeps them under Dir.
type Cache struct {
	client *s3.Client
	bucket string
	dir    string
	log    logging.Logger
}

func New(ctx context.Context, cfg Config, log logging.Logger) (*Cache, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset dir: %w", err)
	}

	return &Cache{
		client: client,
		bucket: cfg.Bucket,
		dir:    cfg.Dir,
		log:    log.With("component", "assets"),
	}, nil
}

// EnsureLocal returns the local path for key, downloading the object first
// unless a fresh copy already exists. The download lands via a temp file
// and rename, so a cancelled transfer never leaves a truncated asset.
func (c *Cache) EnsureLocal(ctx context.Context, key string) (string, error) {
	localPath := filepath.Join(c.dir, filepath.FromSlash(key))

	if info, err := os.Stat(localPath); err == nil && time.Since(info.ModTime()) < maxAge {
		return localPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create asset subdir: %w", err)
	}

	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch asset %q: %w", key, err)
	}
	defer out.Body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(localPath), ".asset-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, out.Body); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write asset %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), localPath); err != nil {
		return "", fmt.Errorf("failed to place asset %q: %w", key, err)
	}

	c.log.Info(ctx, "asset downloaded", "key", key, "path", localPath)
	return localPath, nil
}
