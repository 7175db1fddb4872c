package storage

import (
	"context"
	"io"
	"time"
)

// Uploader stores session recordings and returns a URL the presentation layer can use.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedURL string, err error)
	Delete(ctx context.Context, objectName string) error
}

type Signer interface {
	SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}
