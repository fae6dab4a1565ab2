package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBookUploadedFromJobData(t *testing.T) {
	data := NewData("Bookshare", "https://bookshare.example", "Reader", "reader@example.com",
		WithBook("Dune", "Frank Herbert", "Sci-Fi"),
		WithDownloadURL("https://api.example/download-book/42"),
		WithTime(time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)),
	)

	subject, text, html, err := Render(BookUploaded, ToMap(data))
	require.NoError(t, err)
	assert.Equal(t, `Your upload "Dune" is live on Bookshare`, subject)
	assert.Contains(t, text, `"Dune" by Frank Herbert (Sci-Fi)`)
	assert.Contains(t, text, "01 May 2024, 12:30 UTC")
	assert.Contains(t, text, "https://api.example/download-book/42")
	assert.Contains(t, html, `<a href="https://api.example/download-book/42">`)
}

func TestRenderDefaultsMissingName(t *testing.T) {
	_, text, _, err := Render(BookUploaded, ToMap(EmailData{BookName: "Emma"}))
	require.NoError(t, err)
	assert.Contains(t, text, "Hi there,")
	assert.NotContains(t, text, "Download link")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("password_reset", nil)
	assert.Error(t, err)
}

func TestWithSupportURLIgnoresBlank(t *testing.T) {
	d := NewData("a", "b", "c", "d", WithSupportURL("https://help.example"), WithSupportURL("  "))
	assert.Equal(t, "https://help.example", d.SupportURL)
}
