package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/internal/domain/repository"
	"github.com/oksasatya/bookshare/pkg/apperror"
	"github.com/oksasatya/bookshare/pkg/helpers"
)

// tokenBytes gives 256 bits of entropy per session token.
const tokenBytes = 32

// SessionService maps opaque bearer tokens to users.
type SessionService struct {
	Store  repository.SessionStore
	Users  repository.UserRepository
	Logger *logrus.Logger

	now func() time.Time
}

func NewSessionService(store repository.SessionStore, users repository.UserRepository, logger *logrus.Logger) *SessionService {
	return &SessionService{Store: store, Users: users, Logger: logger, now: time.Now}
}

// Create issues a new token for userID.
func (s *SessionService) Create(ctx context.Context, userID string) (string, error) {
	token, err := helpers.RandomToken(tokenBytes)
	if err != nil {
		return "", apperror.Internal("token generation failed", err)
	}
	sess := entity.Session{Token: token, UserID: userID, CreatedAt: s.now().UTC()}
	if err := s.Store.Save(ctx, sess); err != nil {
		return "", apperror.Internal("failed to create session", err)
	}
	return token, nil
}

// Resolve returns the user bound to token. A session whose user has vanished
// is deleted before Unauthenticated is returned.
func (s *SessionService) Resolve(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, apperror.Unauthenticated("authentication token required").WithReason(apperror.ReasonMissingToken)
	}
	sess, err := s.Store.Get(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Unauthenticated("invalid or expired token").WithReason(apperror.ReasonInvalidToken)
	}
	if err != nil {
		return nil, apperror.Internal("internal server error during authentication", err)
	}

	u, err := s.Users.GetByID(ctx, sess.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		if dErr := s.Store.Delete(ctx, token); dErr != nil && !errors.Is(dErr, repository.ErrNotFound) && s.Logger != nil {
			s.Logger.WithError(dErr).WithField("user_id", sess.UserID).Warn("failed to drop stale session")
		}
		return nil, apperror.Unauthenticated("user associated with token not found").WithReason(apperror.ReasonStaleUser)
	}
	if err != nil {
		return nil, apperror.Internal("internal server error during authentication", err)
	}
	return u, nil
}

// Destroy removes the session. An unknown token yields NotFound.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	err := s.Store.Delete(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("session not found")
	}
	if err != nil {
		return apperror.Internal("failed to delete session", err)
	}
	return nil
}
