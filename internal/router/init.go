package router

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bookshare/internal/application"
	"github.com/oksasatya/bookshare/internal/container"
	handlers "github.com/oksasatya/bookshare/internal/interface/http"
	"github.com/oksasatya/bookshare/internal/interface/middleware"
	"github.com/oksasatya/bookshare/internal/router/modules"
)

// Services bundles the application layer built from a container.
type Services struct {
	Sessions  *application.SessionService
	Auth      *application.AuthService
	Books     *application.BookService
	Catalog   *application.CatalogService
	Downloads *application.DownloadService
}

func BuildServices(c *container.Container) Services {
	cfg := c.Config
	urls := application.URLResolver{
		Store:         c.Objects,
		PublicBaseURL: cfg.PublicBaseURL + cfg.APIPrefix,
		Placeholder:   cfg.PlaceholderCover,
	}
	sessions := application.NewSessionService(c.Sessions, c.Users, c.Logger)
	return Services{
		Sessions: sessions,
		Auth:     application.NewAuthService(c.Users, sessions, c.Notifier, c.Logger),
		Books: application.NewBookService(c.Books, c.Objects, c.Index, c.Notifier, urls, c.Logger,
			application.BookServiceConfig{RequireDescription: cfg.RequireDescription}),
		Catalog: application.NewCatalogService(c.Books, c.Index, urls, c.Logger),
		Downloads: application.NewDownloadService(c.Books, c.Objects,
			application.DownloadConfig{Stream: cfg.StreamDownloads(), TTL: cfg.DownloadURLTTL}),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, c *container.Container) {
	svc := BuildServices(c)
	auth := middleware.Auth(svc.Sessions, c.Logger)

	checks := make(map[string]handlers.Check, len(c.HealthChecks))
	for name, fn := range c.HealthChecks {
		checks[name] = fn
	}
	var files *handlers.FileHandler
	if c.ServeUploads {
		files = handlers.NewFileHandler(c.Objects, c.Logger)
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, c.Logger), auth))
	r.Add(modules.NewBookModule(handlers.NewBookHandler(svc.Books, svc.Catalog, svc.Downloads, c.Logger, handlers.UploadLimits{
		MaxBytes:  c.Config.UploadMaxBytes,
		MaxMemory: c.Config.UploadMaxMemory,
	}), auth))
	r.Add(modules.NewSystemModule(handlers.NewHealthHandler(checks), files))
}

// New builds the gin engine with global middleware and every module.
func New(c *container.Container) *gin.Engine {
	origins := c.Config.CORSOrigins()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	if c.Config.HTTPLogEnabled {
		r.Use(middleware.RequestLog(c.Logger))
	}
	r.Use(middleware.CORS(origins), middleware.Preflight(origins))

	reg := NewRegistry(r, c.Config.APIPrefix, c.Logger)
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}
