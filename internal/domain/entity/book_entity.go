package entity

import "time"

// Book is a catalog entry for an uploaded e-book.
//
// CoverImage and PDF hold either an object key inside the object store
// or, for records imported from elsewhere, a fully qualified URL.
// CoverImage may be empty; PDF is always set for books created by upload.
type Book struct {
	ID               string
	BookName         string
	AuthorName       string
	Genre            string
	BookDescription  string
	CoverImage       string
	PDF              string
	UploadedByUserID string
	UploadedAt       time.Time
}

// HasCover reports whether a cover image was stored for the book.
func (b *Book) HasCover() bool { return b.CoverImage != "" }

// HasPDF reports whether the book has a downloadable file.
func (b *Book) HasPDF() bool { return b.PDF != "" }
