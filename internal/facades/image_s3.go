package facades

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sbilibin2017/recipe-api/internal/logger"
)

// S3API is the subset of *s3.Client used for image storage.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// NewS3Client builds an S3 client for an S3-compatible endpoint (MinIO in
// development) from static credentials. Path-style addressing is forced so
// bucket names need no DNS entries.
func NewS3Client(ctx context.Context, region, accessKey, secretKey, endpoint string) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	}), nil
}

// ImageS3Facade stores recipe images as objects in one bucket.
type ImageS3Facade struct {
	client    S3API
	bucket    string
	publicURL string
}

// NewImageS3Facade creates a facade. publicURL is the prefix clients use to
// fetch objects, typically "<endpoint>/<bucket>".
func NewImageS3Facade(client S3API, bucket, publicURL string) *ImageS3Facade {
	return &ImageS3Facade{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// Save uploads data under key and returns its public URL.
func (f *ImageS3Facade) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(f.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		logger.Log.Errorw("failed to upload image to s3", "bucket", f.bucket, "key", key, "error", err)
		return "", err
	}
	logger.Log.Infow("image stored", "backend", "s3", "bucket", f.bucket, "key", key, "size", len(data))
	return f.publicURL + "/" + key, nil
}

// Delete removes the object behind ref.
func (f *ImageS3Facade) Delete(ctx context.Context, ref string) error {
	key, ok := strings.CutPrefix(ref, f.publicURL+"/")
	if !ok {
		return fmt.Errorf("reference %q is outside %s", ref, f.publicURL)
	}
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.Log.Errorw("failed to delete image from s3", "bucket", f.bucket, "key", key, "error", err)
	}
	return err
}
