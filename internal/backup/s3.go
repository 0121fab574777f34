package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader mirrors archives to an S3 bucket through the standard AWS
// credential chain.
type S3Uploader struct {
	client *s3.Client
	bucket string
}

// NewS3Uploader builds an uploader for the given bucket. An empty region
// defers to the AWS config chain.
func NewS3Uploader(ctx context.Context, bucket, region string) (*S3Uploader, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("s3 bucket is empty")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if region = strings.TrimSpace(region); region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Uploader{client: s3.NewFromConfig(awsCfg), bucket: bucket}, nil
}

// Put uploads one archive body under the given key.
func (u *S3Uploader) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("put s3 object: %w", err)
	}
	return nil
}
