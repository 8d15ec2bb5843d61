// Package storage uploads resident documents and maintenance photos to
// Cloudflare R2 through the S3 API.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"residencia-backend/internal/config"
)

type Client struct {
	s3     *s3.Client
	bucket string
}

// NewClient builds an R2 client, nil when uploads are not configured. A nil
// Client is valid and rejects uploads with ErrDisabled.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if !cfg.R2Enabled() {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2.AccessKey,
			cfg.R2.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.R2.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure R2 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2.Endpoint)
	})

	return &Client{s3: client, bucket: cfg.R2.Bucket}, nil
}

var ErrDisabled = fmt.Errorf("object storage not configured")

// Upload stores a file under a generated key and returns that key. The key
// embeds the original extension so downloads keep a usable filename.
func (c *Client) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	if c == nil {
		return "", ErrDisabled
	}

	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), path.Ext(filename))

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// Fetch reads an object back, used to serve stored documents.
func (c *Client) Fetch(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if c == nil {
		return nil, "", ErrDisabled
	}

	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", key, err)
	}
	contentType := ""
	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	return out.Body, contentType, nil
}

// Delete removes an object, ignoring missing keys.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil {
		return ErrDisabled
	}
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
