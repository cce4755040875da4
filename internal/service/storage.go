package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/pageza/allerfree/backend/config"
	"github.com/pageza/allerfree/backend/internal/types"
)

const (
	MaxRecipeImageSize = 5 << 20
	MaxAvatarSize      = 2 << 20

	uploadCacheControl = "max-age=3600"
)

// ObjectStore is the slice of the S3 API the storage service needs
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// StorageService validates images and stores them in public buckets
type StorageService struct {
	client  ObjectStore
	buckets config.StorageConfig
	logger  *zap.Logger
	now     func() time.Time
}

// Ensure StorageService implements IStorageService
var _ IStorageService = (*StorageService)(nil)

// NewStorageService creates a new StorageService instance
func NewStorageService(client ObjectStore, buckets config.StorageConfig, logger *zap.Logger) *StorageService {
	return &StorageService{
		client:  client,
		buckets: buckets,
		logger:  logger,
		now:     time.Now,
	}
}

// UploadRecipeImage stores a recipe image keyed by the recipe id
func (s *StorageService) UploadRecipeImage(ctx context.Context, recipeID string, upload *types.Upload) (string, error) {
	return s.upload(ctx, s.buckets.RecipeImagesBucket, recipeID, upload, MaxRecipeImageSize, "File size must be less than 5MB")
}

// UploadUserAvatar stores a profile picture keyed by the user id
func (s *StorageService) UploadUserAvatar(ctx context.Context, userID string, upload *types.Upload) (string, error) {
	return s.upload(ctx, s.buckets.UserAvatarsBucket, userID, upload, MaxAvatarSize, "Avatar size must be less than 2MB")
}

// DeleteUserAvatar removes an avatar stored by UploadUserAvatar. Any other
// URL, such as a provider profile picture, is left alone.
func (s *StorageService) DeleteUserAvatar(ctx context.Context, avatarURL string) error {
	bucket := s.buckets.UserAvatarsBucket
	key, ok := strings.CutPrefix(avatarURL, s.PublicURL(bucket, ""))
	if !ok || key == "" || strings.Contains(key, "/") {
		return nil
	}
	return s.DeleteFile(ctx, bucket, key)
}

// DeleteFile removes one object
func (s *StorageService) DeleteFile(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error("object delete failed", zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.Info("object deleted", zap.String("bucket", bucket), zap.String("key", key))
	return nil
}

// PublicURL returns the address clients fetch an object from
func (s *StorageService) PublicURL(bucket, key string) string {
	if s.buckets.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.buckets.PublicBaseURL, bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
}

func (s *StorageService) upload(ctx context.Context, bucket, owner string, upload *types.Upload, limit int64, tooLarge string) (string, error) {
	if upload == nil || len(upload.Data) == 0 {
		return "", fmt.Errorf("failed to upload image: %w", invalid(ErrInvalidUpload, "File is empty"))
	}

	size := upload.Size
	if n := int64(len(upload.Data)); n > size {
		size = n
	}
	if size > limit {
		return "", fmt.Errorf("failed to upload image: %w", invalid(ErrInvalidUpload, tooLarge))
	}

	mtype := mimetype.Detect(upload.Data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("failed to upload image: %w", invalid(ErrInvalidUpload, "File must be an image"))
	}

	key := objectKey(owner, s.now(), upload.Filename, mtype)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(upload.Data),
		ContentLength: aws.Int64(int64(len(upload.Data))),
		ContentType:   aws.String(mtype.String()),
		CacheControl:  aws.String(uploadCacheControl),
	})
	if err != nil {
		s.logger.Error("image upload failed", zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	s.logger.Info("image uploaded", zap.String("bucket", bucket), zap.String("key", key), zap.Int64("size", size))
	return s.PublicURL(bucket, key), nil
}

// objectKey is "<owner>-<unix millis><ext>". Characters outside [A-Za-z0-9_-]
// in the owner id (provider subjects contain "|") become '-'.
func objectKey(owner string, at time.Time, filename string, mtype *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = mtype.Extension()
	}

	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, owner)

	return fmt.Sprintf("%s-%d%s", clean, at.UnixMilli(), ext)
}
