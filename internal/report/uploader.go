package report

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by Uploader.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader copies composed documents into the durable report bucket.
type Uploader struct {
	bucket   string
	s3Client S3API
}

// NewUploader creates an Uploader. An empty bucket disables uploads.
func NewUploader(s3Client S3API, bucket string) *Uploader {
	return &Uploader{bucket: bucket, s3Client: s3Client}
}

// Enabled reports whether durable storage is configured.
func (u *Uploader) Enabled() bool {
	return u != nil && u.bucket != "" && u.s3Client != nil
}

// Upload stores the local file under the given key and returns the storage
// reference.
func (u *Uploader) Upload(ctx context.Context, key, localPath string) (string, error) {
	if !u.Enabled() {
		return "", fmt.Errorf("report: uploader not configured")
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("report: read %s: %w", localPath, err)
	}

	_, err = u.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("report: s3 put %s: %w", key, err)
	}

	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}
