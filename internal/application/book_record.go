package application

import (
	"strings"
	"time"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/internal/domain/storage"
)

// PlaceholderCoverURL is served for books uploaded without a cover.
const PlaceholderCoverURL = "https://placehold.co/158x210/CCCCCC/000000?text=No+Cover"

// BookRecord is the client view of a book with fully qualified URLs.
type BookRecord struct {
	ID               string    `json:"id"`
	BookName         string    `json:"bookName"`
	AuthorName       string    `json:"authorName"`
	Genre            string    `json:"genre"`
	BookDescription  string    `json:"bookDescription"`
	CoverImageURL    string    `json:"coverImageUrl"`
	PDFDownloadURL   *string   `json:"pdfDownloadUrl"`
	UploadedByUserID string    `json:"uploadedByUserId"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

// URLResolver turns stored references into URLs a browser can follow.
type URLResolver struct {
	Store         storage.ObjectStore
	PublicBaseURL string
	Placeholder   string
}

func isAbsoluteURL(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

func (r URLResolver) coverURL(ref string) string {
	switch {
	case ref == "":
		if r.Placeholder != "" {
			return r.Placeholder
		}
		return PlaceholderCoverURL
	case isAbsoluteURL(ref):
		return ref
	default:
		return r.Store.PublicURL(ref)
	}
}

// downloadURL points at the authenticated download route, never at the blob.
func (r URLResolver) downloadURL(b *entity.Book) *string {
	if !b.HasPDF() {
		return nil
	}
	u := strings.TrimRight(r.PublicBaseURL, "/") + "/download-book/" + b.ID
	return &u
}

func (r URLResolver) Record(b *entity.Book) BookRecord {
	return BookRecord{
		ID:               b.ID,
		BookName:         b.BookName,
		AuthorName:       b.AuthorName,
		Genre:            b.Genre,
		BookDescription:  b.BookDescription,
		CoverImageURL:    r.coverURL(b.CoverImage),
		PDFDownloadURL:   r.downloadURL(b),
		UploadedByUserID: b.UploadedByUserID,
		UploadedAt:       b.UploadedAt,
	}
}

func (r URLResolver) Records(books []entity.Book) []BookRecord {
	out := make([]BookRecord, 0, len(books))
	for i := range books {
		out = append(out, r.Record(&books[i]))
	}
	return out
}
