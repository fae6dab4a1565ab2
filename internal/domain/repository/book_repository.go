package repository

import (
	"context"

	"github.com/oksasatya/bookshare/internal/domain/entity"
)

// BookRepository stores catalog records. Create assigns ID and UploadedAt
// when they are empty.
type BookRepository interface {
	Create(ctx context.Context, b *entity.Book) error
	GetByID(ctx context.Context, id string) (*entity.Book, error)
	FindByNameAndAuthor(ctx context.Context, bookName, authorName string) (*entity.Book, error)
	// ListNewestFirst returns every book ordered by UploadedAt descending.
	ListNewestFirst(ctx context.Context) ([]entity.Book, error)
	// Search matches q case-insensitively against name, author, genre and description.
	Search(ctx context.Context, q string, limit int) ([]entity.Book, error)
	Delete(ctx context.Context, id string) error
}
