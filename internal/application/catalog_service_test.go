package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/pkg/apperror"
)

func seedBooks(t *testing.T, f *fixture) {
	t.Helper()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	books := []entity.Book{
		{BookName: "Dune", AuthorName: "Herbert", Genre: "Sci-Fi", PDF: "pdfs/1-dune.pdf", CoverImage: "covers/1-dune.png", UploadedAt: base},
		{BookName: "Emma", AuthorName: "Austen", Genre: "Romance", PDF: "https://cdn.example.com/emma.pdf", CoverImage: "https://cdn.example.com/emma.jpg", UploadedAt: base.Add(time.Hour)},
		{BookName: "Draft", AuthorName: "Nobody", Genre: "Misc", UploadedAt: base.Add(2 * time.Hour)},
	}
	for i := range books {
		require.NoError(t, f.books.Create(context.Background(), &books[i]))
	}
}

func TestCatalogListNewestFirstWithURLs(t *testing.T) {
	f := newFixture(t)
	seedBooks(t, f)
	svc := NewCatalogService(f.books, nil, f.urls, f.logger)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Draft", "Emma", "Dune"}, []string{list[0].BookName, list[1].BookName, list[2].BookName})

	assert.Nil(t, list[0].PDFDownloadURL)
	assert.Equal(t, PlaceholderCoverURL, list[0].CoverImageURL)

	assert.Equal(t, "https://cdn.example.com/emma.jpg", list[1].CoverImageURL)
	require.NotNil(t, list[1].PDFDownloadURL)
	assert.Equal(t, testBaseURL+"/download-book/"+list[1].ID, *list[1].PDFDownloadURL)

	assert.Equal(t, testBaseURL+"/uploads/covers/1-dune.png", list[2].CoverImageURL)
}

func TestCatalogListEmpty(t *testing.T) {
	f := newFixture(t)
	list, err := NewCatalogService(f.books, nil, f.urls, f.logger).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCatalogGet(t *testing.T) {
	f := newFixture(t)
	seedBooks(t, f)
	svc := NewCatalogService(f.books, nil, f.urls, f.logger)
	list, err := svc.List(context.Background())
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), list[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Emma", got.BookName)

	_, err = svc.Get(context.Background(), "missing")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCatalogSearch(t *testing.T) {
	f := newFixture(t)
	seedBooks(t, f)
	ctx := context.Background()

	store := NewCatalogService(f.books, nil, f.urls, f.logger)
	hits, err := store.Search(ctx, "HERB", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Dune", hits[0].BookName)

	all, err := store.Search(ctx, "  ", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	idx := &fakeIndex{hits: []entity.Book{{ID: "es-1", BookName: "From Index", PDF: "pdfs/x.pdf"}}}
	indexed := NewCatalogService(f.books, idx, f.urls, f.logger)
	hits, err = indexed.Search(ctx, "anything", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "From Index", hits[0].BookName)

	idx.err = errors.New("es down")
	hits, err = indexed.Search(ctx, "austen", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Emma", hits[0].BookName)
}
