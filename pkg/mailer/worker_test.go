package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/bookshare/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	msgs []sent
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, sent{to, subject, text, html})
	return nil
}

func jobBody(t *testing.T, job EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestProcessorRendersTemplates(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	sender := &fakeSender{}
	p := NewProcessor(sender, logger)

	data := mailtpl.NewData("Bookshare", "http://app.test", "Alice", "alice@example.com",
		mailtpl.WithBook("Dune", "Frank Herbert", "Sci-Fi"),
		mailtpl.WithTime(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)),
		mailtpl.WithDownloadURL("http://api.test/download-book/b1"),
	)
	out := p.Handle(context.Background(), jobBody(t, EmailJob{To: "alice@example.com", Template: mailtpl.BookUploaded, Data: mailtpl.ToMap(data)}))
	require.Equal(t, Ack, out)
	require.Len(t, sender.msgs, 1)

	msg := sender.msgs[0]
	assert.Equal(t, `Your upload "Dune" is live on Bookshare`, msg.subject)
	assert.Contains(t, msg.text, `"Dune" by Frank Herbert (Sci-Fi)`)
	assert.Contains(t, msg.text, "01 May 2024, 09:30 UTC")
	assert.Contains(t, msg.html, `href="http://api.test/download-book/b1"`)
}

func TestProcessorWelcome(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	sender := &fakeSender{}
	p := NewProcessor(sender, logger)
	data := mailtpl.NewData("Bookshare", "http://app.test", "Alice", "alice@example.com")

	require.Equal(t, Ack, p.Handle(context.Background(), jobBody(t, EmailJob{To: "alice@example.com", Template: mailtpl.Welcome, Data: mailtpl.ToMap(data)})))
	assert.Equal(t, "Welcome to Bookshare, Alice", sender.msgs[0].subject)
	assert.NotContains(t, sender.msgs[0].text, "Questions?")
}

func TestProcessorOutcomes(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	ctx := context.Background()

	p := NewProcessor(&fakeSender{}, logger)
	assert.Equal(t, Drop, p.Handle(ctx, []byte("{not json")))
	assert.Equal(t, Drop, p.Handle(ctx, jobBody(t, EmailJob{Template: mailtpl.Welcome})))
	assert.Equal(t, Drop, p.Handle(ctx, jobBody(t, EmailJob{To: "a@example.com", Template: "nope"})))
	assert.Equal(t, Drop, p.Handle(ctx, jobBody(t, EmailJob{To: "a@example.com"})))
	assert.Equal(t, Ack, p.Handle(ctx, jobBody(t, EmailJob{To: "a@example.com", Subject: "hi", Text: "plain"})))

	failing := NewProcessor(&fakeSender{err: errors.New("mailgun 503")}, logger)
	assert.Equal(t, Requeue, failing.Handle(ctx, jobBody(t, EmailJob{To: "a@example.com", Subject: "hi", Text: "plain"})))
}
