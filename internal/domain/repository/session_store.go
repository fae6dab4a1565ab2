package repository

import (
	"context"

	"github.com/oksasatya/bookshare/internal/domain/entity"
)

// SessionStore persists token -> user bindings. Each operation touches a
// single key, so implementations only need single-key atomicity.
type SessionStore interface {
	Save(ctx context.Context, s entity.Session) error
	Get(ctx context.Context, token string) (*entity.Session, error)
	// Delete returns ErrNotFound when the token is unknown.
	Delete(ctx context.Context, token string) error
}
