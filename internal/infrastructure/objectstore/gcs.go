package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	gcs "cloud.google.com/go/storage"

	"github.com/oksasatya/bookshare/internal/domain/storage"
	"github.com/oksasatya/bookshare/pkg/helpers"
)

// GCSStore stores objects in a Google Cloud Storage bucket.
type GCSStore struct {
	client      *gcs.Client
	bucket      string
	signerEmail string
}

// NewGCSStore wraps an existing client. signerEmail is optional; when empty the
// client library resolves the service account from the credentials.
func NewGCSStore(client *gcs.Client, bucket, signerEmail string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket, signerEmail: signerEmail}
}

func (s *GCSStore) object(key string) *gcs.ObjectHandle {
	return s.client.Bucket(s.bucket).Object(key)
}

// Put streams r into the bucket. Cancelling ctx, or a failing r, aborts the
// upload without creating the object.
func (s *GCSStore) Put(ctx context.Context, key string, r io.Reader, _ int64, contentType string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	wc := s.object(key).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		cancel()
		_ = wc.Close()
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", key, err)
	}
	return nil
}

func (s *GCSStore) Delete(ctx context.Context, key string) error {
	if err := s.object(key).Delete(ctx); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("gcs delete %s: %w", key, err)
	}
	return nil
}

func (s *GCSStore) Open(ctx context.Context, key string) (*storage.Object, error) {
	rc, err := s.object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("gcs open %s: %w", key, err)
	}
	return &storage.Object{Body: rc, Size: rc.Attrs.Size, ContentType: rc.Attrs.ContentType}, nil
}

// SignedURL mints a V4 signed GET URL. Credentials without a private key or
// signBlob permission cannot sign; that is reported as ErrSigningUnsupported.
func (s *GCSStore) SignedURL(_ context.Context, key string, ttl time.Duration, downloadName string) (string, error) {
	opts := &gcs.SignedURLOptions{
		Scheme:         gcs.SigningSchemeV4,
		Method:         "GET",
		Expires:        time.Now().Add(ttl),
		GoogleAccessID: s.signerEmail,
	}
	if downloadName != "" {
		opts.QueryParameters = url.Values{"response-content-disposition": {helpers.AttachmentDisposition(downloadName)}}
	}
	u, err := s.client.Bucket(s.bucket).SignedURL(key, opts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", storage.ErrSigningUnsupported, err)
	}
	return u, nil
}

func (s *GCSStore) PublicURL(key string) string {
	return helpers.PublicURL(s.bucket, key)
}

var _ storage.ObjectStore = (*GCSStore)(nil)
