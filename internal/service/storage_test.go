package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/allerfree/backend/config"
	"github.com/pageza/allerfree/backend/internal/service"
	"github.com/pageza/allerfree/backend/internal/types"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	body    [][]byte
	deletes []*s3.DeleteObjectInput
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, _ := io.ReadAll(params.Body)
	f.puts = append(f.puts, params)
	f.body = append(f.body, data)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, params)
	return &s3.DeleteObjectOutput{}, nil
}

func testBuckets() config.StorageConfig {
	return config.StorageConfig{
		RecipeImagesBucket: "recipe-images",
		UserAvatarsBucket:  "user-avatars",
	}
}

func pngUpload(name string, size int) *types.Upload {
	data := append([]byte{}, pngHeader...)
	if size > len(data) {
		data = append(data, bytes.Repeat([]byte{0}, size-len(data))...)
	}
	return &types.Upload{Filename: name, Size: int64(len(data)), Data: data}
}

func TestUploadRecipeImage(t *testing.T) {
	fake := &fakeS3{}
	svc := service.NewStorageService(fake, testBuckets(), zap.NewNop())

	url, err := svc.UploadRecipeImage(context.Background(), "5f1c2b7e-recipe", pngUpload("Soup.PNG", 1024))
	require.NoError(t, err)

	require.Len(t, fake.puts, 1)
	put := fake.puts[0]
	assert.Equal(t, "recipe-images", aws.ToString(put.Bucket))
	assert.Regexp(t, `^5f1c2b7e-recipe-\d+\.png$`, aws.ToString(put.Key))
	assert.Equal(t, "image/png", aws.ToString(put.ContentType))
	assert.Equal(t, "max-age=3600", aws.ToString(put.CacheControl))
	assert.Len(t, fake.body[0], 1024)
	assert.Equal(t, "https://recipe-images.s3.amazonaws.com/"+aws.ToString(put.Key), url)
}

func TestUploadUserAvatarSanitisesKey(t *testing.T) {
	fake := &fakeS3{}
	buckets := testBuckets()
	buckets.PublicBaseURL = "http://localhost:9000"
	svc := service.NewStorageService(fake, buckets, zap.NewNop())

	url, err := svc.UploadUserAvatar(context.Background(), "google-oauth2|123", pngUpload("", 100))
	require.NoError(t, err)

	key := aws.ToString(fake.puts[0].Key)
	assert.Regexp(t, `^google-oauth2-123-\d+\.png$`, key)
	assert.Equal(t, "user-avatars", aws.ToString(fake.puts[0].Bucket))
	assert.Equal(t, "http://localhost:9000/user-avatars/"+key, url)
}

func TestUploadValidation(t *testing.T) {
	fake := &fakeS3{}
	svc := service.NewStorageService(fake, testBuckets(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.UploadRecipeImage(ctx, "r", pngUpload("big.png", service.MaxRecipeImageSize+1))
	assert.ErrorIs(t, err, service.ErrInvalidUpload)
	assert.Contains(t, err.Error(), "File size must be less than 5MB")

	_, err = svc.UploadUserAvatar(ctx, "u", pngUpload("big.png", service.MaxAvatarSize+1))
	assert.ErrorIs(t, err, service.ErrInvalidUpload)
	assert.Contains(t, err.Error(), "Avatar size must be less than 2MB")

	_, err = svc.UploadRecipeImage(ctx, "r", &types.Upload{Filename: "notes.txt", Data: []byte("just some text")})
	assert.ErrorIs(t, err, service.ErrInvalidUpload)
	assert.Contains(t, err.Error(), "File must be an image")

	_, err = svc.UploadRecipeImage(ctx, "r", &types.Upload{Filename: "empty.png"})
	assert.ErrorIs(t, err, service.ErrInvalidUpload)

	// a recipe image may be larger than an avatar
	_, err = svc.UploadRecipeImage(ctx, "r", pngUpload("mid.png", service.MaxAvatarSize+1))
	assert.NoError(t, err)

	assert.Len(t, fake.puts, 1)
}

func TestUploadBackendFailure(t *testing.T) {
	fake := &fakeS3{err: errors.New("bucket gone")}
	svc := service.NewStorageService(fake, testBuckets(), zap.NewNop())

	_, err := svc.UploadRecipeImage(context.Background(), "r", pngUpload("a.png", 64))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload image: bucket gone")
}

func TestDeleteUserAvatar(t *testing.T) {
	fake := &fakeS3{}
	svc := service.NewStorageService(fake, testBuckets(), zap.NewNop())
	ctx := context.Background()

	url, err := svc.UploadUserAvatar(ctx, "auth0|9", pngUpload("me.png", 64))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUserAvatar(ctx, url))
	require.Len(t, fake.deletes, 1)
	assert.Equal(t, "user-avatars", aws.ToString(fake.deletes[0].Bucket))
	assert.Equal(t, aws.ToString(fake.puts[0].Key), aws.ToString(fake.deletes[0].Key))

	// provider pictures and other buckets are not ours to delete
	require.NoError(t, svc.DeleteUserAvatar(ctx, "https://lh3.googleusercontent.com/a/pic"))
	require.NoError(t, svc.DeleteUserAvatar(ctx, "https://recipe-images.s3.amazonaws.com/soup.png"))
	require.NoError(t, svc.DeleteUserAvatar(ctx, ""))
	assert.Len(t, fake.deletes, 1)

	fake.err = errors.New("bucket gone")
	err = svc.DeleteUserAvatar(ctx, url)
	assert.ErrorContains(t, err, "failed to delete file: bucket gone")
}
