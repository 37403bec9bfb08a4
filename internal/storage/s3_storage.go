package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/utils"
	"go.uber.org/zap"
)

const imageKeyPrefix = "images/"

// S3ImageStore uploads data URI images to an S3-compatible bucket and
// returns their public URL. Values that are already URLs are kept as is.
type S3ImageStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
	logger  *zap.Logger
}

type S3ImageStoreOption func(*S3ImageStore)

func WithLogger(logger *zap.Logger) S3ImageStoreOption {
	return func(s *S3ImageStore) {
		s.logger = logger
	}
}

func NewS3ImageStore(ctx context.Context, cfg *config.StorageConfig, opts ...S3ImageStoreOption) (*S3ImageStore, error) {
	if cfg == nil || cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	store := &S3ImageStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// publicBaseURL is the prefix object keys are appended to.
func publicBaseURL(cfg *config.StorageConfig) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

func (s *S3ImageStore) Store(ctx context.Context, image string) (string, error) {
	image = strings.TrimSpace(image)
	if image == "" || utils.IsHTTPURL(image) {
		return image, nil
	}

	decoded, err := decodeImage(image)
	if err != nil {
		return "", err
	}

	key := imageKeyPrefix + uuid.NewString() + decoded.Extension()
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(decoded.Data),
		ContentType:   aws.String(decoded.MediaType),
		ContentLength: aws.Int64(int64(len(decoded.Data))),
	})
	if err != nil {
		s.logger.Error("Failed to upload image",
			zap.String("bucket", s.bucket),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	s.logger.Debug("Uploaded image",
		zap.String("key", key),
		zap.Int("size", len(decoded.Data)),
	)
	return s.baseURL + "/" + key, nil
}
