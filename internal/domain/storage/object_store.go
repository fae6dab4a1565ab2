package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrNotFound is returned when an object key does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrSigningUnsupported is returned by drivers that cannot mint signed URLs.
	// Callers fall back to streaming the object themselves.
	ErrSigningUnsupported = errors.New("signed urls not supported")
)

// Object is an open handle on stored bytes. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// ObjectStore is blob storage for uploaded PDFs and cover images.
// Put must abort the write when ctx is cancelled.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Open(ctx context.Context, key string) (*Object, error)
	// SignedURL returns a time-bounded GET URL. downloadName, when the
	// backend supports it, becomes the attachment file name.
	SignedURL(ctx context.Context, key string, ttl time.Duration, downloadName string) (string, error)
	PublicURL(key string) string
}
