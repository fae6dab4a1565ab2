package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/internal/domain/repository"
	"github.com/oksasatya/bookshare/pkg/apperror"
	"github.com/oksasatya/bookshare/pkg/helpers"
)

var errInvalidCredentials = apperror.Unauthenticated("invalid email or password")

// AuthService handles account creation and login.
type AuthService struct {
	Users    repository.UserRepository
	Sessions *SessionService
	Notifier Notifier
	Logger   *logrus.Logger
}

func NewAuthService(users repository.UserRepository, sessions *SessionService, notifier Notifier, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, Notifier: notifier, Logger: logger}
}

type SignupInput struct {
	Email       string
	Password    string
	DisplayName string
}

type LoginResult struct {
	Token       string `json:"token"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a user. Email uniqueness is checked before the write and
// again by the store.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.DisplayName)
	if email == "" || in.Password == "" || name == "" {
		return nil, apperror.BadRequest("all fields are required for signup")
	}

	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal("internal server error during signup", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("user with this email already exists").WithReason(apperror.ReasonDuplicateEmail)
	}

	hash, err := helpers.HashPassword(in.Password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return nil, apperror.BadRequest("password must be at most 72 bytes")
	}
	if err != nil {
		return nil, apperror.Internal("internal server error during signup", err)
	}
	u := &entity.User{Email: email, Password: hash, DisplayName: name}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("user with this email already exists").WithReason(apperror.ReasonDuplicateEmail)
		}
		return nil, apperror.Internal("internal server error during signup", err)
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user signed up")
	}

	if s.Notifier != nil {
		if nErr := s.Notifier.Welcome(ctx, u); nErr != nil && s.Logger != nil {
			s.Logger.WithError(nErr).WithField("user_id", u.ID).Warn("failed to enqueue welcome email")
		}
	}
	return u, nil
}

// Login verifies credentials and opens a session. No session is created on failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, apperror.Internal("internal server error during login", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, errInvalidCredentials
	}

	token, err := s.Sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user logged in")
	}
	return &LoginResult{Token: token, UserID: u.ID, DisplayName: u.DisplayName}, nil
}

// Logout ends the session bound to token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.Sessions.Destroy(ctx, token)
}
