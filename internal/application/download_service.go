package application

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/internal/domain/repository"
	"github.com/oksasatya/bookshare/internal/domain/storage"
	"github.com/oksasatya/bookshare/pkg/apperror"
)

const DefaultDownloadTTL = 15 * time.Minute

type DownloadConfig struct {
	// Stream makes every download go through the API instead of a redirect.
	Stream bool
	TTL    time.Duration
}

// DownloadTarget tells the handler how to deliver the file. Exactly one of
// RedirectURL and Object is set; the caller closes Object.Body.
type DownloadTarget struct {
	RedirectURL string
	Object      *storage.Object
	Filename    string
}

type DownloadService struct {
	Books repository.BookRepository
	Store storage.ObjectStore
	Cfg   DownloadConfig
}

func NewDownloadService(books repository.BookRepository, store storage.ObjectStore, cfg DownloadConfig) *DownloadService {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultDownloadTTL
	}
	return &DownloadService{Books: books, Store: store, Cfg: cfg}
}

// Resolve locates the PDF for bookID. filename overrides the suggested
// attachment name.
func (s *DownloadService) Resolve(ctx context.Context, userID, bookID, filename string) (*DownloadTarget, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("authentication token required").WithReason(apperror.ReasonMissingToken)
	}
	if strings.TrimSpace(bookID) == "" {
		return nil, apperror.BadRequest("book id is required")
	}

	b, err := s.Books.GetByID(ctx, bookID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("book not found")
	}
	if err != nil {
		return nil, apperror.Internal("failed to fetch book", err)
	}
	if !b.HasPDF() {
		return nil, apperror.NotFound("pdf file not found for this book").WithReason(apperror.ReasonNoFile)
	}

	name := downloadName(b, filename)
	if isAbsoluteURL(b.PDF) {
		return &DownloadTarget{RedirectURL: b.PDF, Filename: name}, nil
	}

	if !s.Cfg.Stream {
		u, err := s.Store.SignedURL(ctx, b.PDF, s.Cfg.TTL, name)
		if err == nil {
			return &DownloadTarget{RedirectURL: u, Filename: name}, nil
		}
		if !errors.Is(err, storage.ErrSigningUnsupported) {
			return nil, apperror.Internal("failed to sign download url", err)
		}
	}

	obj, err := s.Store.Open(ctx, b.PDF)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperror.NotFound("pdf file not found for this book").WithReason(apperror.ReasonNoFile)
	}
	if err != nil {
		return nil, apperror.Internal("failed to open pdf file", err)
	}
	if obj.ContentType == "" {
		obj.ContentType = "application/pdf"
	}
	return &DownloadTarget{Object: obj, Filename: name}, nil
}

func downloadName(b *entity.Book, requested string) string {
	name := cleanHeaderValue(requested)
	if name == "" {
		name = cleanHeaderValue(b.BookName)
		if name == "" {
			return "download.pdf"
		}
		name += ".pdf"
	}
	return name
}

// cleanHeaderValue makes s safe inside a quoted Content-Disposition filename.
func cleanHeaderValue(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
