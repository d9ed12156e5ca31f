package s3

import (
	"context"
	"fmt"
	"io"

	"some-planner/pkg/config"
	"some-planner/pkg/logger"
	"some-planner/pkg/storage"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Client stores media objects under storage.PathPrefix in one bucket.
type Client struct {
	s3Client *s3.S3
	uploader *s3manager.Uploader
	bucket   string
}

var _ storage.Storage = (*Client)(nil)

func NewClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// MinIO and other S3-compatible endpoints
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	svc := s3.New(sess)
	client := &Client{
		s3Client: svc,
		uploader: s3manager.NewUploaderWithClient(svc),
		bucket:   cfg.S3BucketName,
	}

	if _, err := svc.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(cfg.S3BucketName)}); err != nil {
		if _, err := svc.CreateBucket(&s3.CreateBucketInput{Bucket: aws.String(cfg.S3BucketName)}); err != nil {
			// the bucket may exist but be unreadable by HeadBucket; uploads will tell
			log.Warn("Could not create bucket %s: %v", cfg.S3BucketName, err)
		}
	}

	return client, nil
}

func (c *Client) key(name string) string {
	return storage.PathPrefix + name
}

func (c *Client) Save(ctx context.Context, name string, r io.Reader, contentType string) error {
	input := &s3manager.UploadInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.key(name)),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	// a failed multipart upload is aborted by the uploader, so nothing is left behind
	if _, err := c.uploader.UploadWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return nil
}

// Delete removes the object. S3 reports success for absent keys.
func (c *Client) Delete(ctx context.Context, name string) error {
	_, err := c.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.key(name)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}
