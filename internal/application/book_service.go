package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/internal/domain/repository"
	"github.com/oksasatya/bookshare/internal/domain/storage"
	"github.com/oksasatya/bookshare/pkg/apperror"
)

const (
	pdfFolder   = "pdfs"
	coverFolder = "covers"

	sniffLen       = 3072
	cleanupTimeout = 10 * time.Second
)

// FileUpload is one file part of an upload form.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type BookInput struct {
	BookName        string
	AuthorName      string
	Genre           string
	BookDescription string
}

type UploadFiles struct {
	PDF   *FileUpload
	Cover *FileUpload
}

type BookServiceConfig struct {
	RequireDescription bool
}

// BookService owns the write side of the catalog.
type BookService struct {
	Books    repository.BookRepository
	Store    storage.ObjectStore
	Index    BookIndex
	Notifier Notifier
	URLs     URLResolver
	Logger   *logrus.Logger
	Cfg      BookServiceConfig

	now func() time.Time
	// suffix keeps keys unique when two uploads share a millisecond and a file name.
	suffix func() string
}

func NewBookService(books repository.BookRepository, store storage.ObjectStore, index BookIndex, notifier Notifier, urls URLResolver, logger *logrus.Logger, cfg BookServiceConfig) *BookService {
	return &BookService{
		Books:    books,
		Store:    store,
		Index:    index,
		Notifier: notifier,
		URLs:     urls,
		Logger:   logger,
		Cfg:      cfg,
		now:      time.Now,
		suffix:   shortID,
	}
}

func (s *BookService) missingFields(in BookInput, files UploadFiles) []string {
	var missing []string
	if in.BookName == "" {
		missing = append(missing, "bookName")
	}
	if in.AuthorName == "" {
		missing = append(missing, "authorName")
	}
	if in.Genre == "" {
		missing = append(missing, "genre")
	}
	if s.Cfg.RequireDescription && in.BookDescription == "" {
		missing = append(missing, "bookDescription")
	}
	if files.PDF == nil {
		missing = append(missing, "pdfFile")
	}
	return missing
}

func trimInput(in BookInput) BookInput {
	return BookInput{
		BookName:        strings.TrimSpace(in.BookName),
		AuthorName:      strings.TrimSpace(in.AuthorName),
		Genre:           strings.TrimSpace(in.Genre),
		BookDescription: strings.TrimSpace(in.BookDescription),
	}
}

// Submit validates, stores the files, then records the book. Blobs written
// before a later failure are removed again.
func (s *BookService) Submit(ctx context.Context, uploader *entity.User, in BookInput, files UploadFiles) (*BookRecord, error) {
	if uploader == nil || uploader.ID == "" {
		return nil, apperror.Unauthenticated("authentication token required").WithReason(apperror.ReasonMissingToken)
	}
	in = trimInput(in)
	if missing := s.missingFields(in, files); len(missing) > 0 {
		return nil, apperror.BadRequest("missing required fields: " + strings.Join(missing, ", ")).
			WithReason(apperror.ReasonMissingFields).
			WithDetails(missing)
	}

	existing, err := s.Books.FindByNameAndAuthor(ctx, in.BookName, in.AuthorName)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal("failed to check for existing book", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("a book with this name and author already exists").WithReason(apperror.ReasonDuplicateBook)
	}

	var stored []string
	fail := func(err error) (*BookRecord, error) {
		s.cleanup(ctx, stored)
		return nil, err
	}

	pdfKey, err := s.put(ctx, pdfFolder, files.PDF)
	if err != nil {
		return fail(apperror.Internal("failed to store pdf file", err))
	}
	stored = append(stored, pdfKey)

	var coverKey string
	if files.Cover != nil {
		coverKey, err = s.put(ctx, coverFolder, files.Cover)
		if err != nil {
			return fail(apperror.Internal("failed to store cover image", err))
		}
		stored = append(stored, coverKey)
	}

	b := &entity.Book{
		BookName:         in.BookName,
		AuthorName:       in.AuthorName,
		Genre:            in.Genre,
		BookDescription:  in.BookDescription,
		CoverImage:       coverKey,
		PDF:              pdfKey,
		UploadedByUserID: uploader.ID,
		UploadedAt:       s.now().UTC(),
	}
	if err := s.Books.Create(ctx, b); err != nil {
		return fail(apperror.Internal("failed to save book record", err))
	}

	log := s.logger().WithField("book_id", b.ID).WithField("user_id", uploader.ID)
	log.Info("book uploaded")

	if s.Index != nil {
		if err := s.Index.Index(ctx, *b); err != nil {
			log.WithError(err).Warn("failed to index book")
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.BookUploaded(ctx, uploader, b); err != nil {
			log.WithError(err).Warn("failed to enqueue upload email")
		}
	}

	rec := s.URLs.Record(b)
	return &rec, nil
}

// Delete removes a book owned by userID. Blob and index cleanup is best-effort.
func (s *BookService) Delete(ctx context.Context, userID, bookID string) error {
	if userID == "" {
		return apperror.Unauthenticated("authentication token required").WithReason(apperror.ReasonMissingToken)
	}
	b, err := s.Books.GetByID(ctx, bookID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("book not found")
	}
	if err != nil {
		return apperror.Internal("failed to load book", err)
	}
	if b.UploadedByUserID != userID {
		return apperror.Forbidden("only the uploader can delete this book")
	}
	if err := s.Books.Delete(ctx, b.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("book not found")
		}
		return apperror.Internal("failed to delete book", err)
	}

	var keys []string
	for _, ref := range []string{b.PDF, b.CoverImage} {
		if ref != "" && !isAbsoluteURL(ref) {
			keys = append(keys, ref)
		}
	}
	s.cleanup(ctx, keys)
	if s.Index != nil {
		if err := s.Index.Remove(ctx, b.ID); err != nil {
			s.logger().WithError(err).WithField("book_id", b.ID).Warn("failed to remove book from index")
		}
	}
	s.logger().WithField("book_id", b.ID).WithField("user_id", userID).Info("book deleted")
	return nil
}

func (s *BookService) put(ctx context.Context, folder string, f *FileUpload) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = rc.Close() }()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	ct := f.ContentType
	if ct == "" || ct == "application/octet-stream" {
		ct = mimetype.Detect(head).String()
	}

	key := objectKey(folder, s.now(), s.suffix(), f.Filename)
	body := io.MultiReader(bytes.NewReader(head), rc)
	if err := s.Store.Put(ctx, key, body, f.Size, ct); err != nil {
		return "", err
	}
	return key, nil
}

// cleanup runs on a context detached from the request so a client that went
// away does not stop the removal.
func (s *BookService) cleanup(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	for _, key := range keys {
		if err := s.Store.Delete(cctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.logger().WithError(err).WithField("key", key).Error("failed to remove stored object")
		}
	}
}

func (s *BookService) logger() *logrus.Logger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

func shortID() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:8] }

func objectKey(folder string, at time.Time, suffix, filename string) string {
	return fmt.Sprintf("%s/%d-%s-%s", folder, at.UnixMilli(), suffix, sanitizeName(filename))
}

func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" {
		name = ""
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)
	if name == "" || name == ".." {
		return "file"
	}
	return name
}
