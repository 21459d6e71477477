package s3client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/datawarehouse/dw-s3-go/internal/logger"
)

// newPresigner builds an SDK presign client for the same endpoint and
// credentials. It uses static credentials and path-style addressing, which
// S3-compatible servers expect. No connection is opened here.
func newPresigner(cfg Config, baseURL string, log *slog.Logger) *s3.PresignClient {
	client := s3.New(s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		BaseEndpoint: aws.String(baseURL),
		UsePathStyle: true,
		Logger:       logger.NewSmithyLogger(log),
	})
	return s3.NewPresignClient(client)
}

// PresignGet returns a V4 presigned URL for downloading bucket/key, valid for
// expiry. Presigned URLs always use Signature V4, whatever the client's
// signing strategy.
func (c *Client) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if err := c.checkPresign(opPresignGet, bucket, expiry); err != nil {
		return "", err
	}
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("s3client: presign get %s/%s: %w", bucket, key, err)
	}
	return req.URL, nil
}

// PresignPut returns a V4 presigned URL for uploading bucket/key, valid for
// expiry.
func (c *Client) PresignPut(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if err := c.checkPresign(opPresignPut, bucket, expiry); err != nil {
		return "", err
	}
	req, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("s3client: presign put %s/%s: %w", bucket, key, err)
	}
	return req.URL, nil
}

func (c *Client) checkPresign(op, bucket string, expiry time.Duration) error {
	if c.closed.Load() {
		return &ClosedClientError{Op: op}
	}
	if bucket == "" {
		return &InvalidArgumentError{Arg: "bucket", Reason: "must not be empty"}
	}
	if expiry <= 0 {
		return &InvalidArgumentError{Arg: "expiry", Reason: "must be positive"}
	}
	return nil
}
