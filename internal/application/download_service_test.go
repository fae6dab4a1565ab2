package application

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/pkg/apperror"
)

func storedBook(t *testing.T, f *fixture, b entity.Book) *entity.Book {
	t.Helper()
	ctx := context.Background()
	if b.PDF != "" && !isAbsoluteURL(b.PDF) {
		require.NoError(t, f.store.ObjectStore.Put(ctx, b.PDF, bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"))
	}
	require.NoError(t, f.books.Create(ctx, &b))
	return &b
}

func TestDownloadStreamsWhenSigningUnsupported(t *testing.T) {
	f := newFixture(t)
	b := storedBook(t, f, entity.Book{BookName: "Dune", PDF: "pdfs/1-dune.pdf"})
	svc := NewDownloadService(f.books, f.store, DownloadConfig{})

	target, err := svc.Resolve(context.Background(), "u1", b.ID, "")
	require.NoError(t, err)
	require.NotNil(t, target.Object)
	defer func() { _ = target.Object.Body.Close() }()

	assert.Empty(t, target.RedirectURL)
	assert.Equal(t, "Dune.pdf", target.Filename)
	assert.Equal(t, "application/pdf", target.Object.ContentType)
	got, err := io.ReadAll(target.Object.Body)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, got)
}

func TestDownloadRedirectsToSignedURL(t *testing.T) {
	f := newFixture(t)
	f.store.signBase = "https://signed.example.com/"
	b := storedBook(t, f, entity.Book{BookName: "Dune", PDF: "pdfs/1-dune.pdf"})

	svc := NewDownloadService(f.books, f.store, DownloadConfig{})
	target, err := svc.Resolve(context.Background(), "u1", b.ID, `my "copy".pdf`)
	require.NoError(t, err)
	assert.Nil(t, target.Object)
	assert.Equal(t, "https://signed.example.com/pdfs/1-dune.pdf?ttl=15m0s", target.RedirectURL)
	assert.Equal(t, "my copy.pdf", target.Filename)

	svc.Cfg.Stream = true
	target, err = svc.Resolve(context.Background(), "u1", b.ID, "")
	require.NoError(t, err)
	require.NotNil(t, target.Object)
	_ = target.Object.Body.Close()
}

func TestDownloadAbsoluteURLRedirectsDirectly(t *testing.T) {
	f := newFixture(t)
	b := storedBook(t, f, entity.Book{BookName: "Emma", PDF: "https://cdn.example.com/emma.pdf"})
	target, err := NewDownloadService(f.books, f.store, DownloadConfig{Stream: true}).Resolve(context.Background(), "u1", b.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/emma.pdf", target.RedirectURL)
}

func TestDownloadFailures(t *testing.T) {
	f := newFixture(t)
	svc := NewDownloadService(f.books, f.store, DownloadConfig{})
	ctx := context.Background()
	noPDF := storedBook(t, f, entity.Book{BookName: "Draft"})
	lost := storedBook(t, f, entity.Book{BookName: "Lost"})
	lost.PDF = "pdfs/never-written.pdf"
	require.NoError(t, f.books.Create(ctx, lost))

	_, err := svc.Resolve(ctx, "", noPDF.ID, "")
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))

	_, err = svc.Resolve(ctx, "u1", " ", "")
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))

	_, err = svc.Resolve(ctx, "u1", "missing", "")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Empty(t, apperror.ReasonOf(err))

	_, err = svc.Resolve(ctx, "u1", noPDF.ID, "")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, apperror.ReasonNoFile, apperror.ReasonOf(err))

	_, err = svc.Resolve(ctx, "u1", lost.ID, "")
	assert.Equal(t, apperror.ReasonNoFile, apperror.ReasonOf(err))
}
