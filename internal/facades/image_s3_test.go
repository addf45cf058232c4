package facades

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake S3 client ---
type fakeS3 struct {
	putInput    *s3.PutObjectInput
	putBody     []byte
	deleteInput *s3.DeleteObjectInput
	err         error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.putInput = in
	f.putBody, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleteInput = in
	return &s3.DeleteObjectOutput{}, nil
}

func TestImageS3Facade_Save(t *testing.T) {
	client := &fakeS3{}
	f := NewImageS3Facade(client, "recipes", "http://minio:9000/recipes/")

	ref, err := f.Save(context.Background(), "uploads/recipe/1/a.jpg", "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/recipes/uploads/recipe/1/a.jpg", ref)
	assert.Equal(t, "recipes", aws.ToString(client.putInput.Bucket))
	assert.Equal(t, "uploads/recipe/1/a.jpg", aws.ToString(client.putInput.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(client.putInput.ContentType))
	assert.Equal(t, []byte("jpeg"), client.putBody)
}

func TestImageS3Facade_Delete(t *testing.T) {
	client := &fakeS3{}
	f := NewImageS3Facade(client, "recipes", "http://minio:9000/recipes")

	require.NoError(t, f.Delete(context.Background(), "http://minio:9000/recipes/uploads/recipe/1/a.jpg"))
	assert.Equal(t, "uploads/recipe/1/a.jpg", aws.ToString(client.deleteInput.Key))

	assert.Error(t, f.Delete(context.Background(), "/media/uploads/recipe/1/a.jpg"))
}

func TestImageS3Facade_Error(t *testing.T) {
	f := NewImageS3Facade(&fakeS3{err: errors.New("s3 down")}, "recipes", "http://minio:9000/recipes")

	_, err := f.Save(context.Background(), "k.png", "image/png", []byte("x"))
	assert.Error(t, err)
	assert.Error(t, f.Delete(context.Background(), "http://minio:9000/recipes/k.png"))
}

func TestNewS3Client(t *testing.T) {
	client, err := NewS3Client(context.Background(), "us-east-1", "admin", "secret", "http://127.0.0.1:9000")
	require.NoError(t, err)
	assert.NotNil(t, client)
}
