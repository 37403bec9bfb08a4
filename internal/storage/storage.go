// Package storage turns submitted project and task images into the value
// persisted on the record.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/utils"
	"go.uber.org/zap"
)

var (
	ErrInvalidImage     = errors.New("image must be a data URI or an http(s) URL")
	ErrUnsupportedImage = errors.New("image data URI must carry an image media type")
)

// ImageStore persists an image value and returns what should be stored on
// the record. Empty input yields empty output.
type ImageStore interface {
	Store(ctx context.Context, image string) (string, error)
}

// InlineImageStore keeps data URIs on the record as submitted.
type InlineImageStore struct{}

func NewInlineImageStore() *InlineImageStore {
	return &InlineImageStore{}
}

func (s *InlineImageStore) Store(_ context.Context, image string) (string, error) {
	image = strings.TrimSpace(image)
	if image == "" || utils.IsHTTPURL(image) {
		return image, nil
	}
	if _, err := decodeImage(image); err != nil {
		return "", err
	}
	return image, nil
}

func decodeImage(image string) (*utils.DataURI, error) {
	if !utils.IsDataURI(image) {
		return nil, ErrInvalidImage
	}
	decoded, err := utils.DecodeDataURI(image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if !strings.HasPrefix(decoded.MediaType, "image/") {
		return nil, ErrUnsupportedImage
	}
	return decoded, nil
}

// New picks the image store configured by cfg.Driver.
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (ImageStore, error) {
	switch cfg.Driver {
	case config.StorageS3:
		return NewS3ImageStore(ctx, cfg, WithLogger(logger))
	case config.StorageInline, "":
		return NewInlineImageStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
