package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/internal/domain/repository"
)

func stores(t *testing.T) map[string]repository.SessionStore {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return map[string]repository.SessionStore{
		"memory": NewMemoryStore(),
		"redis":  NewRedisStore(rdb),
	}
}

func TestSessionStoreContract(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
			require.NoError(t, store.Save(ctx, entity.Session{Token: "tok-1", UserID: "user-1", CreatedAt: created}))

			got, err := store.Get(ctx, "tok-1")
			require.NoError(t, err)
			assert.Equal(t, "user-1", got.UserID)
			assert.Equal(t, "tok-1", got.Token)
			assert.True(t, created.Equal(got.CreatedAt))

			_, err = store.Get(ctx, "missing")
			assert.ErrorIs(t, err, repository.ErrNotFound)

			require.NoError(t, store.Delete(ctx, "tok-1"))
			assert.ErrorIs(t, store.Delete(ctx, "tok-1"), repository.ErrNotFound)
			_, err = store.Get(ctx, "tok-1")
			assert.ErrorIs(t, err, repository.ErrNotFound)
		})
	}
}

func TestRedisStoreHasNoExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()
	store := NewRedisStore(rdb)

	require.NoError(t, store.Save(context.Background(), entity.Session{Token: "tok", UserID: "u", CreatedAt: time.Now()}))
	assert.Equal(t, time.Duration(0), mr.TTL("session:tok"))
	mr.FastForward(365 * 24 * time.Hour)
	_, err := store.Get(context.Background(), "tok")
	assert.NoError(t, err)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok := fmt.Sprintf("tok-%d", i)
			_ = store.Save(ctx, entity.Session{Token: tok, UserID: "u"})
			_, _ = store.Get(ctx, tok)
			_ = store.Delete(ctx, tok)
		}(i)
	}
	wg.Wait()
}
