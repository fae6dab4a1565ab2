package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bookshare/internal/domain/repository"
	"github.com/oksasatya/bookshare/internal/infrastructure/session"
	"github.com/oksasatya/bookshare/pkg/apperror"
)

func TestSessionCreateResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "reader@example.com")

	token, err := f.sessions.Create(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, token, 43)

	other, err := f.sessions.Create(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	got, err := f.sessions.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "reader@example.com", got.Email)
}

func TestSessionResolveFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.sessions.Resolve(ctx, "")
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
	assert.Equal(t, apperror.ReasonMissingToken, apperror.ReasonOf(err))

	_, err = f.sessions.Resolve(ctx, "nope")
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
	assert.Equal(t, apperror.ReasonInvalidToken, apperror.ReasonOf(err))
}

func TestSessionStaleUserIsDropped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	store := session.NewMemoryStore()
	svc := NewSessionService(store, f.users, f.logger)
	u := f.user(t, "gone@example.com")

	token, err := svc.Create(ctx, u.ID)
	require.NoError(t, err)
	f.users.Remove(u.ID)

	_, err = svc.Resolve(ctx, token)
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
	assert.Equal(t, apperror.ReasonStaleUser, apperror.ReasonOf(err))

	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionDestroy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "reader@example.com")
	token, err := f.sessions.Create(ctx, u.ID)
	require.NoError(t, err)

	require.NoError(t, f.sessions.Destroy(ctx, token))
	_, err = f.sessions.Resolve(ctx, token)
	assert.Equal(t, apperror.ReasonInvalidToken, apperror.ReasonOf(err))

	err = f.sessions.Destroy(ctx, token)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
