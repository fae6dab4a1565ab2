package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/bookshare/internal/domain/entity"
)

var (
	// ErrNotFound is returned by every store when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a store-level uniqueness constraint rejects a write.
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the interface for user-related catalog operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
