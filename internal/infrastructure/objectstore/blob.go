package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"

	"github.com/oksasatya/bookshare/internal/domain/storage"
	"github.com/oksasatya/bookshare/pkg/helpers"
)

// BlobStore adapts a gocloud bucket. With file:// URLs it reproduces a local
// uploads directory; mem:// keeps everything in process.
type BlobStore struct {
	bucket    *blob.Bucket
	publicURL string
}

// OpenBlobStore opens bucketURL (e.g. "file:///var/lib/bookshare/uploads?create_dir=true"
// or "mem://"). publicURL is the HTTP base under which objects are served.
func OpenBlobStore(ctx context.Context, bucketURL, publicURL string) (*BlobStore, error) {
	b, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", bucketURL, err)
	}
	return NewBlobStore(b, publicURL), nil
}

func NewBlobStore(b *blob.Bucket, publicURL string) *BlobStore {
	return &BlobStore{bucket: b, publicURL: strings.TrimRight(publicURL, "/")}
}

// Put writes r under key. A failed copy cancels the writer before closing
// it so nothing partial is committed.
func (s *BlobStore) Put(ctx context.Context, key string, r io.Reader, _ int64, contentType string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("blob writer %s: %w", key, err)
	}
	if _, err := io.Copy(w, r); err != nil {
		cancel()
		_ = w.Close()
		return fmt.Errorf("blob write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("blob close %s: %w", key, err)
	}
	return nil
}

func (s *BlobStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return storage.ErrNotFound
		}
		return fmt.Errorf("blob delete %s: %w", key, err)
	}
	return nil
}

func (s *BlobStore) Open(ctx context.Context, key string) (*storage.Object, error) {
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("blob open %s: %w", key, err)
	}
	return &storage.Object{Body: r, Size: r.Size(), ContentType: r.ContentType()}, nil
}

func (s *BlobStore) SignedURL(ctx context.Context, key string, ttl time.Duration, _ string) (string, error) {
	u, err := s.bucket.SignedURL(ctx, key, &blob.SignedURLOptions{Expiry: ttl})
	if err != nil {
		if gcerrors.Code(err) == gcerrors.Unimplemented {
			return "", storage.ErrSigningUnsupported
		}
		return "", fmt.Errorf("blob sign %s: %w", key, err)
	}
	return u, nil
}

func (s *BlobStore) PublicURL(key string) string {
	return s.publicURL + "/" + helpers.EscapeObjectPath(key)
}

func (s *BlobStore) Close() error { return s.bucket.Close() }

var _ storage.ObjectStore = (*BlobStore)(nil)
