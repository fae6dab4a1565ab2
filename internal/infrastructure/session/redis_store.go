package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/internal/domain/repository"
)

// RedisStore persists sessions as hashes so several app instances can share them.
// Keys carry no TTL: a session lives until logout.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func sessionKey(token string) string { return "session:" + token }

func (s *RedisStore) Save(ctx context.Context, sess entity.Session) error {
	err := s.rdb.HSet(ctx, sessionKey(sess.Token), map[string]any{
		"user_id":    sess.UserID,
		"created_at": sess.CreatedAt.UTC().Format(time.RFC3339Nano),
	}).Err()
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*entity.Session, error) {
	data, err := s.rdb.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if len(data) == 0 || data["user_id"] == "" {
		return nil, repository.ErrNotFound
	}
	created, _ := time.Parse(time.RFC3339Nano, data["created_at"])
	return &entity.Session{Token: token, UserID: data["user_id"], CreatedAt: created}, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	n, err := s.rdb.Del(ctx, sessionKey(token)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.SessionStore = (*RedisStore)(nil)
