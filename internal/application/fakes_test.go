package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"gocloud.dev/blob/memblob"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/internal/domain/repository"
	"github.com/oksasatya/bookshare/internal/domain/storage"
	"github.com/oksasatya/bookshare/internal/infrastructure/memory"
	"github.com/oksasatya/bookshare/internal/infrastructure/objectstore"
	"github.com/oksasatya/bookshare/internal/infrastructure/session"
)

const testBaseURL = "http://api.test"

// recordingStore wraps a real store and records writes.
type recordingStore struct {
	storage.ObjectStore

	mu        sync.Mutex
	puts      []string
	deletes   []string
	deleteErr error
	signBase  string
}

func (s *recordingStore) Put(ctx context.Context, key string, r io.Reader, size int64, ct string) error {
	s.mu.Lock()
	s.puts = append(s.puts, key)
	s.mu.Unlock()
	return s.ObjectStore.Put(ctx, key, r, size, ct)
}

func (s *recordingStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	s.deletes = append(s.deletes, key)
	s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.ObjectStore.Delete(ctx, key)
}

func (s *recordingStore) SignedURL(ctx context.Context, key string, ttl time.Duration, name string) (string, error) {
	if s.signBase == "" {
		return s.ObjectStore.SignedURL(ctx, key, ttl, name)
	}
	return s.signBase + key + "?ttl=" + ttl.String(), nil
}

func (s *recordingStore) exists(t *testing.T, key string) bool {
	t.Helper()
	obj, err := s.ObjectStore.Open(context.Background(), key)
	if errors.Is(err, storage.ErrNotFound) {
		return false
	}
	if err != nil {
		t.Fatalf("open %s: %v", key, err)
	}
	_ = obj.Body.Close()
	return true
}

type failingBooks struct {
	repository.BookRepository
	createErr error
}

func (f failingBooks) Create(ctx context.Context, b *entity.Book) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.BookRepository.Create(ctx, b)
}

type countingSessions struct {
	repository.SessionStore
	saves int
}

func (c *countingSessions) Save(ctx context.Context, s entity.Session) error {
	c.saves++
	return c.SessionStore.Save(ctx, s)
}

type fakeIndex struct {
	indexed []string
	removed []string
	hits    []entity.Book
	err     error
}

func (f *fakeIndex) Index(_ context.Context, b entity.Book) error {
	f.indexed = append(f.indexed, b.ID)
	return f.err
}

func (f *fakeIndex) Remove(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return f.err
}

func (f *fakeIndex) Search(_ context.Context, _ string, _ int) ([]entity.Book, error) {
	return f.hits, f.err
}

type fakeNotifier struct {
	welcomed []string
	uploads  []string
}

func (f *fakeNotifier) Welcome(_ context.Context, u *entity.User) error {
	f.welcomed = append(f.welcomed, u.Email)
	return nil
}

func (f *fakeNotifier) BookUploaded(_ context.Context, u *entity.User, b *entity.Book) error {
	f.uploads = append(f.uploads, u.Email+":"+b.BookName)
	return nil
}

type fixture struct {
	users    *memory.UserRepository
	books    *memory.BookRepository
	store    *recordingStore
	sessions *SessionService
	logger   *logrus.Logger
	hook     *logtest.Hook
	urls     URLResolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	blobs := objectstore.NewBlobStore(memblob.OpenBucket(nil), testBaseURL+"/uploads")
	t.Cleanup(func() { _ = blobs.Close() })

	f := &fixture{
		users:  memory.NewUserRepository(),
		books:  memory.NewBookRepository(),
		store:  &recordingStore{ObjectStore: blobs},
		logger: logger,
		hook:   hook,
	}
	f.sessions = NewSessionService(session.NewMemoryStore(), f.users, logger)
	f.urls = URLResolver{Store: f.store, PublicBaseURL: testBaseURL}
	return f
}

func (f *fixture) user(t *testing.T, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", DisplayName: strings.Split(email, "@")[0]}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func fileOf(name, contentType string, data []byte) *FileUpload {
	return &FileUpload{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(string(data))), nil
		},
	}
}
