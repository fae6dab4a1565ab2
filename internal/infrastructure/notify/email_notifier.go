package notify

import (
	"context"
	"strings"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/pkg/mailer"
	mailtpl "github.com/oksasatya/bookshare/pkg/mailer/templates"
)

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type EmailConfig struct {
	AppName       string
	AppURL        string
	PublicBaseURL string
	SupportURL    string
}

// EmailNotifier queues templated emails for cmd/email_worker.
type EmailNotifier struct {
	pub Publisher
	cfg EmailConfig
}

func NewEmailNotifier(pub Publisher, cfg EmailConfig) *EmailNotifier {
	return &EmailNotifier{pub: pub, cfg: cfg}
}

func (n *EmailNotifier) Welcome(ctx context.Context, u *entity.User) error {
	data := mailtpl.NewData(n.cfg.AppName, n.cfg.AppURL, u.DisplayName, u.Email,
		mailtpl.WithTime(u.CreatedAt),
		mailtpl.WithSupportURL(n.cfg.SupportURL),
	)
	return n.pub.PublishJSON(ctx, mailer.EmailJob{To: u.Email, Template: mailtpl.Welcome, Data: mailtpl.ToMap(data)})
}

func (n *EmailNotifier) BookUploaded(ctx context.Context, u *entity.User, b *entity.Book) error {
	data := mailtpl.NewData(n.cfg.AppName, n.cfg.AppURL, u.DisplayName, u.Email,
		mailtpl.WithBook(b.BookName, b.AuthorName, b.Genre),
		mailtpl.WithTime(b.UploadedAt),
		mailtpl.WithDownloadURL(strings.TrimRight(n.cfg.PublicBaseURL, "/")+"/download-book/"+b.ID),
		mailtpl.WithSupportURL(n.cfg.SupportURL),
	)
	return n.pub.PublishJSON(ctx, mailer.EmailJob{To: u.Email, Template: mailtpl.BookUploaded, Data: mailtpl.ToMap(data)})
}
