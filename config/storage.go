package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the S3 client and the two public buckets
type S3Config struct {
	Client             *s3.Client
	RecipeImagesBucket string
	UserAvatarsBucket  string
	PublicBaseURL      string
}

// NewS3Config initializes the S3 client from the storage settings. A custom
// endpoint switches to path-style addressing for S3-compatible stores.
func NewS3Config(ctx context.Context, cfg StorageConfig) (*S3Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Config{
		Client:             client,
		RecipeImagesBucket: cfg.RecipeImagesBucket,
		UserAvatarsBucket:  cfg.UserAvatarsBucket,
		PublicBaseURL:      cfg.PublicBaseURL,
	}, nil
}
