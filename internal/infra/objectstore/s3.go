// Package objectstore uploads batch artifacts to S3 or Supabase Storage.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"ushay-etl/internal/domain"
)

const uploadTimeout = 2 * time.Minute

// S3Store implements domain.ObjectStore on an S3 bucket.
type S3Store struct {
	uploader *manager.Uploader
	region   string
	bucket   string
}

// NewS3Store connects to S3. Static credentials are used when both keys are
// set; otherwise the default AWS credential chain applies.
func NewS3Store(ctx context.Context, cfg domain.Config) (*S3Store, error) {
	if cfg.GetAWSRegion() == "" {
		return nil, fmt.Errorf("AWS_REGION not set")
	}
	if cfg.GetS3Bucket() == "" {
		return nil, fmt.Errorf("S3 bucket name not set")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.GetAWSRegion())}
	if cfg.GetAWSAccessKey() != "" && cfg.GetAWSSecretKey() != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.GetAWSAccessKey(), cfg.GetAWSSecretKey(), ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Store{
		uploader: manager.NewUploader(s3.NewFromConfig(awsCfg)),
		region:   cfg.GetAWSRegion(),
		bucket:   cfg.GetS3Bucket(),
	}, nil
}

// Upload implements domain.ObjectStore and returns the object URL.
func (c *S3Store) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	ctxUpload, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	_, err := c.uploader.Upload(ctxUpload, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        data,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}

	return c.URL(key), nil
}

// URL is the virtual-hosted style address of key.
func (c *S3Store) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}
