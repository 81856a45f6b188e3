package blob_storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/tuanng/mediahost/internal/application/service"
	"github.com/tuanng/mediahost/internal/config"
	"github.com/tuanng/mediahost/pkg/logger"
)

// S3Store talks to any S3-compatible bucket (AWS, Cloudflare R2, MinIO).
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
	logger  logger.Logger
}

func NewS3Store(ctx context.Context, cfg config.Config, log logger.Logger) (service.BlobStore, error) {
	if cfg.Storage.Bucket == "" {
		return nil, fmt.Errorf("storage bucket has not been configured")
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.Storage.AccessKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})

	log.Info("Connected object storage bucket.")
	return &S3Store{
		client:  client,
		bucket:  cfg.Storage.Bucket,
		baseURL: strings.TrimRight(cfg.Storage.PublicBaseURL, "/"),
		logger:  log,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// DeletePrefix lists and batch-deletes everything under prefix, looping
// until no continuation token remains.
func (s *S3Store) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	deleted := 0
	var continuationToken *string

	for {
		list, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return deleted, fmt.Errorf("failed to list prefix %s: %w", prefix, err)
		}

		if len(list.Contents) > 0 {
			objects := make([]types.ObjectIdentifier, len(list.Contents))
			for i, obj := range list.Contents {
				objects[i] = types.ObjectIdentifier{Key: obj.Key}
			}
			_, err = s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
				Bucket: aws.String(s.bucket),
				Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
			})
			if err != nil {
				return deleted, fmt.Errorf("failed to batch delete under %s: %w", prefix, err)
			}
			deleted += len(objects)
		}

		if list.IsTruncated == nil || !*list.IsTruncated {
			return deleted, nil
		}
		continuationToken = list.NextContinuationToken
	}
}

func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
			return false, nil
		}
		return false, fmt.Errorf("failed to head object %s: %w", key, err)
	}
	return true, nil
}

func (s *S3Store) PublicURL(key string) string {
	return s.baseURL + "/" + key
}
