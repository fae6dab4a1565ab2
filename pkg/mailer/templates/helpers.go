package templates

import (
	"strings"
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04 MST") }
}

func WithBook(name, author, genre string) Option {
	return func(d *EmailData) {
		d.BookName = name
		d.AuthorName = author
		d.Genre = genre
	}
}

func WithDownloadURL(url string) Option { return func(d *EmailData) { d.DownloadURL = url } }

func WithSupportURL(url string) Option {
	return func(d *EmailData) {
		if s := strings.TrimSpace(url); s != "" {
			d.SupportURL = s
		}
	}
}

// NewData fills the fields shared by every template and applies opts.
func NewData(appName, appURL, name, email string, opts ...Option) EmailData {
	d := EmailData{AppName: appName, AppURL: appURL, Name: name, Email: email}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
