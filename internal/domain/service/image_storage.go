package service

import (
	"context"
	"io"
)

// ImageStorage stores uploaded images in the blob bucket and returns their
// public URLs.
type ImageStorage interface {
	// Upload writes the image under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes the image stored under key.
	Delete(ctx context.Context, key string) error
}
