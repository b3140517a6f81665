// Package storage implements image storage on a gocloud.dev blob bucket.
package storage

import (
	"context"
	"io"
	"strings"

	"shopfront/config"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers resolved from the configured bucket URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
)

// blobStorage is a concrete implementation of the ImageStorage interface.
type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// NewBlobStorage opens the configured bucket and returns it as an ImageStorage.
func NewBlobStorage(params Params) (service.ImageStorage, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket URL must be provided")
	}

	bucket, err := blob.OpenBucket(context.Background(), cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open blob bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload writes the image under key and returns its public URL.
func (s *blobStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(w, body); err != nil {
		w.Close()

		return "", errors.Wrap(err, "failed to write image data")
	}

	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize image upload")
	}

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes the image stored under key.
func (s *blobStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrap(err, "failed to delete image")
	}

	return nil
}
