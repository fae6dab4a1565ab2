package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	mailtpl "github.com/oksasatya/bookshare/pkg/mailer/templates"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack     Outcome = iota
	Drop            // malformed, never retried
	Requeue         // transient send failure
)

var errNoRecipient = errors.New("email job has no recipient")

// Processor renders and sends queued EmailJobs.
type Processor struct {
	Sender  Sender
	Logger  *logrus.Logger
	Timeout time.Duration
}

func NewProcessor(sender Sender, logger *logrus.Logger) *Processor {
	return &Processor{Sender: sender, Logger: logger, Timeout: 15 * time.Second}
}

// Render resolves the subject and bodies of job.
func Render(job EmailJob) (subject, text, html string, err error) {
	if strings.TrimSpace(job.To) == "" {
		return "", "", "", errNoRecipient
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return "", "", "", errors.New("email job needs a template or subject and body")
		}
		return job.Subject, job.Text, job.HTML, nil
	}
	subject, text, html, err = mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return "", "", "", err
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return subject, text, html, nil
}

// Handle processes one raw queue message.
func (p *Processor) Handle(ctx context.Context, body []byte) Outcome {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		p.Logger.WithError(err).Warn("bad email job")
		return Drop
	}
	subject, text, html, err := Render(job)
	if err != nil {
		p.Logger.WithError(err).WithField("template", job.Template).Warn("render failed")
		return Drop
	}

	c, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	if err := p.Sender.Send(c, job.To, subject, text, html); err != nil {
		p.Logger.WithError(err).WithField("to", job.To).Error("send failed")
		return Requeue
	}
	p.Logger.WithField("to", job.To).WithField("template", job.Template).Info("email sent")
	return Ack
}
