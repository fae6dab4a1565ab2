package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshare/config"
	"github.com/oksasatya/bookshare/internal/container"
	"github.com/oksasatya/bookshare/internal/domain/repository"
	"github.com/oksasatya/bookshare/internal/domain/storage"
	"github.com/oksasatya/bookshare/internal/infrastructure/memory"
	"github.com/oksasatya/bookshare/internal/infrastructure/notify"
	"github.com/oksasatya/bookshare/internal/infrastructure/objectstore"
	pginfra "github.com/oksasatya/bookshare/internal/infrastructure/postgres"
	"github.com/oksasatya/bookshare/internal/infrastructure/search"
	"github.com/oksasatya/bookshare/internal/infrastructure/session"
	"github.com/oksasatya/bookshare/pkg/helpers"
)

// buildContainer constructs every client once. The returned func closes
// them in reverse order.
func buildContainer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*container.Container, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*container.Container, func(), error) {
		closeAll()
		return nil, nil, err
	}

	c := &container.Container{
		Config:       cfg,
		Logger:       logger,
		HealthChecks: map[string]func(context.Context) error{},
	}

	switch cfg.CatalogDriver {
	case "postgres":
		pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
			DSN:         cfg.PostgresDSN(),
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return fail(fmt.Errorf("connect postgres: %w", err))
		}
		closers = append(closers, pool.Close)
		c.Users = pginfra.NewUserRepository(pool)
		c.Books = pginfra.NewBookRepository(pool)
		c.HealthChecks["postgres"] = pool.Ping
	case "memory":
		logger.Warn("CATALOG_DRIVER=memory; users and books are lost on restart")
		c.Users = memory.NewUserRepository()
		c.Books = memory.NewBookRepository()
	default:
		return fail(fmt.Errorf("unknown CATALOG_DRIVER %q", cfg.CatalogDriver))
	}

	sessions, closeSessions, err := buildSessions(ctx, cfg, c)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, closeSessions)
	c.Sessions = sessions

	objects, closeObjects, err := buildObjectStore(ctx, cfg, c)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, closeObjects)
	c.Objects = objects

	if cfg.SearchEnabled {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			return fail(fmt.Errorf("elasticsearch client: %w", err))
		}
		idx := search.NewBookIndex(es, cfg.ESBooksIndex)
		if err := idx.EnsureIndex(ctx); err != nil {
			// search falls back to the catalog store until the index exists
			logger.WithError(err).Warn("elasticsearch unavailable at startup")
		}
		c.Index = idx
	}

	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return fail(fmt.Errorf("rabbitmq: %w", err))
		}
		closers = append(closers, pub.Close)
		c.Notifier = notify.NewEmailNotifier(pub, notify.EmailConfig{
			AppName:       cfg.AppName,
			AppURL:        cfg.AppURL,
			PublicBaseURL: cfg.PublicBaseURL + cfg.APIPrefix,
			SupportURL:    cfg.SupportURL,
		})
	}

	return c, closeAll, nil
}

func buildSessions(ctx context.Context, cfg *config.Config, c *container.Container) (repository.SessionStore, func(), error) {
	switch cfg.SessionStore {
	case "memory":
		return session.NewMemoryStore(), func() {}, nil
	case "redis":
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := helpers.PingRedis(ctx, rdb, 3*time.Second); err != nil {
			_ = rdb.Close()
			return nil, nil, err
		}
		c.HealthChecks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		return session.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}
}

func buildObjectStore(ctx context.Context, cfg *config.Config, c *container.Container) (storage.ObjectStore, func(), error) {
	switch cfg.StorageDriver {
	case "gcs":
		if cfg.GCSBucket == "" {
			return nil, nil, fmt.Errorf("GCS_BUCKET is required for STORAGE_DRIVER=gcs")
		}
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, nil, fmt.Errorf("gcs client: %w", err)
		}
		return objectstore.NewGCSStore(client, cfg.GCSBucket, cfg.GCSSignerEmail), func() { _ = client.Close() }, nil
	case "minio":
		store, err := objectstore.NewMinioStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
			cfg.MinioBucket, cfg.MinioUseSSL, cfg.MinioPublicURL)
		if err != nil {
			return nil, nil, fmt.Errorf("minio: %w", err)
		}
		return store, func() {}, nil
	case "blob":
		store, err := objectstore.OpenBlobStore(ctx, cfg.BlobURL, cfg.BlobBaseURL())
		if err != nil {
			return nil, nil, err
		}
		c.ServeUploads = cfg.BlobPublicURL == ""
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
