package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/pkg/mailer"
)

type capturePublisher struct{ jobs []mailer.EmailJob }

func (c *capturePublisher) PublishJSON(_ context.Context, body any) error {
	c.jobs = append(c.jobs, body.(mailer.EmailJob))
	return nil
}

func TestEmailNotifierJobs(t *testing.T) {
	pub := &capturePublisher{}
	n := NewEmailNotifier(pub, EmailConfig{AppName: "Bookshare", AppURL: "http://app.test", PublicBaseURL: "http://api.test/"})
	u := &entity.User{ID: "u1", Email: "alice@example.com", DisplayName: "Alice", CreatedAt: time.Now()}
	b := &entity.Book{ID: "b1", BookName: "Dune", AuthorName: "Herbert", Genre: "Sci-Fi", UploadedAt: time.Now()}

	require.NoError(t, n.Welcome(context.Background(), u))
	require.NoError(t, n.BookUploaded(context.Background(), u, b))
	require.Len(t, pub.jobs, 2)

	assert.Equal(t, "welcome", pub.jobs[0].Template)
	assert.Equal(t, "alice@example.com", pub.jobs[0].To)
	assert.Equal(t, "Alice", pub.jobs[0].Data["Name"])

	up := pub.jobs[1]
	assert.Equal(t, "book_uploaded", up.Template)
	assert.Equal(t, "Dune", up.Data["BookName"])
	assert.Equal(t, "http://api.test/download-book/b1", up.Data["DownloadURL"])

	_, _, _, err := mailer.Render(up)
	assert.NoError(t, err)
}
