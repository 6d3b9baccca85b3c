package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/recetario/internal/server/config"
	"github.com/google/uuid"
)

// ObjectPutter is the part of *s3.Client the image service needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type ImageService struct {
	client    ObjectPutter
	bucket    string
	publicURL string
}

func NewImageService(client ObjectPutter, cfg *config.Config) *ImageService {
	return &ImageService{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: cfg.PublicURLPrefix(),
	}
}

// NewS3Client builds a client for the configured S3-compatible endpoint
// using static credentials and path-style addressing.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	}), nil
}

// NewImageKey returns a random object key that keeps the extension of
// filename.
func NewImageKey(filename string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}

// Upload stores an image and returns its public URL. Content types outside
// image/* are rejected with ErrNotAnImage.
func (s *ImageService) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	return s.put(ctx, NewImageKey(filename), contentType, size, body)
}

// UploadPDF stores a rendered document under pdf/ and returns its public URL.
func (s *ImageService) UploadPDF(ctx context.Context, name string, data []byte) (string, error) {
	return s.put(ctx, "pdf/"+name, "application/pdf", int64(len(data)), bytes.NewReader(data))
}

func (s *ImageService) put(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return s.publicURL + "/" + key, nil
}
