package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/internal/domain/repository"
)

// BookRepository keeps catalog records in memory and tracks insertion order
// so equal timestamps resolve newest-inserted first.
type BookRepository struct {
	mu     sync.RWMutex
	books  map[string]entity.Book
	orders []string

	now func() time.Time
}

func NewBookRepository() *BookRepository {
	return &BookRepository{
		books: make(map[string]entity.Book),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the timestamp source for UploadedAt.
func (r *BookRepository) WithClock(now func() time.Time) *BookRepository {
	r.now = now
	return r
}

func (r *BookRepository) Create(_ context.Context, b *entity.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.UploadedAt.IsZero() {
		b.UploadedAt = r.now()
	}
	if _, exists := r.books[b.ID]; !exists {
		r.orders = append(r.orders, b.ID)
	}
	r.books[b.ID] = *b
	return nil
}

func (r *BookRepository) GetByID(_ context.Context, id string) (*entity.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *BookRepository) FindByNameAndAuthor(_ context.Context, bookName, authorName string) (*entity.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.orders {
		b := r.books[id]
		if b.BookName == bookName && b.AuthorName == authorName {
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *BookRepository) ListNewestFirst(_ context.Context) ([]entity.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.newestFirst(func(entity.Book) bool { return true }), nil
}

func (r *BookRepository) Search(_ context.Context, q string, limit int) ([]entity.Book, error) {
	needle := strings.ToLower(strings.TrimSpace(q))
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.newestFirst(func(b entity.Book) bool {
		for _, field := range []string{b.BookName, b.AuthorName, b.Genre, b.BookDescription} {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *BookRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.books, id)
	filtered := r.orders[:0]
	for _, item := range r.orders {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	r.orders = filtered
	return nil
}

// newestFirst must be called with r.mu held.
func (r *BookRepository) newestFirst(keep func(entity.Book) bool) []entity.Book {
	out := make([]entity.Book, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		if b := r.books[r.orders[i]]; keep(b) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out
}

var _ repository.BookRepository = (*BookRepository)(nil)
