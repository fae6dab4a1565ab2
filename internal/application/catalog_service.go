package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshare/internal/domain/repository"
	"github.com/oksasatya/bookshare/pkg/apperror"
)

const (
	defaultSearchSize = 20
	maxSearchSize     = 100
)

// CatalogService is the read side of the catalog.
type CatalogService struct {
	Books  repository.BookRepository
	Index  BookIndex
	URLs   URLResolver
	Logger *logrus.Logger
}

func NewCatalogService(books repository.BookRepository, index BookIndex, urls URLResolver, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Books: books, Index: index, URLs: urls, Logger: logger}
}

// List returns every book, newest upload first.
func (s *CatalogService) List(ctx context.Context) ([]BookRecord, error) {
	books, err := s.Books.ListNewestFirst(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to fetch book list", err)
	}
	return s.URLs.Records(books), nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*BookRecord, error) {
	b, err := s.Books.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("book not found")
	}
	if err != nil {
		return nil, apperror.Internal("failed to fetch book", err)
	}
	rec := s.URLs.Record(b)
	return &rec, nil
}

// Search prefers the full-text index and falls back to the catalog store
// when no index is configured or the index errors.
func (s *CatalogService) Search(ctx context.Context, q string, size int) ([]BookRecord, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.List(ctx)
	}
	if size <= 0 {
		size = defaultSearchSize
	}
	if size > maxSearchSize {
		size = maxSearchSize
	}

	if s.Index != nil {
		hits, err := s.Index.Search(ctx, q, size)
		if err == nil {
			return s.URLs.Records(hits), nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("q", q).Warn("search index unavailable, using catalog store")
		}
	}

	books, err := s.Books.Search(ctx, q, size)
	if err != nil {
		return nil, apperror.Internal("failed to search books", err)
	}
	return s.URLs.Records(books), nil
}
