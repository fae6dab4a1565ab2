package application

import (
	"context"

	"github.com/oksasatya/bookshare/internal/domain/entity"
)

// BookIndex is an optional full-text index over the catalog.
// Failures are logged by callers and never fail the request.
type BookIndex interface {
	Index(ctx context.Context, b entity.Book) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]entity.Book, error)
}

// Notifier sends user-facing notifications (email) out of band.
type Notifier interface {
	Welcome(ctx context.Context, u *entity.User) error
	BookUploaded(ctx context.Context, u *entity.User, b *entity.Book) error
}
