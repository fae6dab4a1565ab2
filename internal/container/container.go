package container

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshare/config"
	"github.com/oksasatya/bookshare/internal/application"
	"github.com/oksasatya/bookshare/internal/domain/repository"
	"github.com/oksasatya/bookshare/internal/domain/storage"
)

// Container holds the components built once in main and shared by the
// router. Index and Notifier are nil when their backends are disabled.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Users    repository.UserRepository
	Books    repository.BookRepository
	Sessions repository.SessionStore
	Objects  storage.ObjectStore
	Index    application.BookIndex
	Notifier application.Notifier

	// ServeUploads exposes GET /uploads/*key for stores without their own public endpoint.
	ServeUploads bool
	// HealthChecks are probed by GET /healthz.
	HealthChecks map[string]func(ctx context.Context) error
}
